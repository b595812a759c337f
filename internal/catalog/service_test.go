package catalog_test

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unilanding/cms-backend/internal"
	"github.com/unilanding/cms-backend/internal/catalog"
	catalogDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/catalog"
)

// Mock repository for testing
type mockModuleRepository struct {
	modules     map[string]*catalogDatamodel.SystemModule
	getError    error
	createError error
	nextID      int64
}

func newMockModuleRepository() *mockModuleRepository {
	return &mockModuleRepository{
		modules: make(map[string]*catalogDatamodel.SystemModule),
		nextID:  1,
	}
}

func (m *mockModuleRepository) GetAll() ([]*catalogDatamodel.SystemModule, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var all []*catalogDatamodel.SystemModule
	for _, module := range m.modules {
		all = append(all, module)
	}
	return all, nil
}

func (m *mockModuleRepository) GetByName(name string) (*catalogDatamodel.SystemModule, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.modules[name], nil
}

func (m *mockModuleRepository) Create(module *catalogDatamodel.SystemModule) error {
	if m.createError != nil {
		return m.createError
	}
	module.ID = m.nextID
	m.nextID++
	m.modules[module.Name] = module
	return nil
}

var _ = Describe("CatalogService", func() {
	var (
		service  *catalog.Service
		mockRepo *mockModuleRepository
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		mockRepo = newMockModuleRepository()
		service = catalog.NewService(mockRepo, testLogger)
	})

	Describe("EnsureModule", func() {
		It("trims the name before storing", func() {
			module, err := service.EnsureModule("  Blog  ", true)

			Expect(err).ToNot(HaveOccurred())
			Expect(module.Name).To(Equal("Blog"))
			Expect(mockRepo.modules).To(HaveKey("Blog"))
		})

		It("leaves an existing module untouched on re-run", func() {
			first, err := service.EnsureModule("Blog", true)
			Expect(err).ToNot(HaveOccurred())

			second, err := service.EnsureModule("Blog", true)
			Expect(err).ToNot(HaveOccurred())

			Expect(second.ID).To(Equal(first.ID))
			Expect(mockRepo.modules).To(HaveLen(1))
		})
	})

	Describe("FindByName", func() {
		It("returns not-found for an unknown name", func() {
			module, err := service.FindByName("Nonexistent")

			Expect(module).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeModuleNotFound))
		})

		It("matches the trimmed name", func() {
			_, err := service.EnsureModule("Blog", true)
			Expect(err).ToNot(HaveOccurred())

			module, err := service.FindByName(" Blog ")

			Expect(err).ToNot(HaveOccurred())
			Expect(module.Name).To(Equal("Blog"))
		})

		It("propagates repository failures as internal errors", func() {
			mockRepo.getError = errors.New("connection refused")

			_, err := service.FindByName("Blog")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
		})
	})

	Describe("ListActive", func() {
		It("filters out inactive modules", func() {
			_, err := service.EnsureModule("Blog", true)
			Expect(err).ToNot(HaveOccurred())
			_, err = service.EnsureModule("Legacy", false)
			Expect(err).ToNot(HaveOccurred())

			modules, err := service.ListActive()

			Expect(err).ToNot(HaveOccurred())
			Expect(modules).To(HaveLen(1))
			Expect(modules[0].Name).To(Equal("Blog"))
		})
	})
})
