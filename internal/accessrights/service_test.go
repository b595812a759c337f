package accessrights_test

import (
	"errors"
	"log/slog"
	"os"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unilanding/cms-backend/internal"
	"github.com/unilanding/cms-backend/internal/accessrights"
	"github.com/unilanding/cms-backend/internal/catalog"
	accessrightsDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/accessrights"
)

// Mock repository for testing
type mockGrantRepository struct {
	rows        map[int64][]*accessrightsDatamodel.AccessRight
	createError error
	getError    error
	saveError   error
	nextID      int64
}

func newMockGrantRepository() *mockGrantRepository {
	return &mockGrantRepository{
		rows:   make(map[int64][]*accessrightsDatamodel.AccessRight),
		nextID: 1,
	}
}

func (m *mockGrantRepository) CreateBatch(rows []*accessrightsDatamodel.AccessRight) error {
	if m.createError != nil {
		return m.createError
	}
	for _, row := range rows {
		row.ID = m.nextID
		m.nextID++
		m.rows[row.UserID] = append(m.rows[row.UserID], row)
	}
	return nil
}

func (m *mockGrantRepository) GetByUser(userID int64) ([]*accessrightsDatamodel.AccessRight, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.rows[userID], nil
}

func (m *mockGrantRepository) GetByUserAndModule(userID int64, moduleName string) ([]*accessrightsDatamodel.AccessRight, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var matched []*accessrightsDatamodel.AccessRight
	for _, row := range m.rows[userID] {
		if row.ModuleName == moduleName {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

func (m *mockGrantRepository) Save(rows []*accessrightsDatamodel.AccessRight) error {
	return m.saveError
}

// Mock module catalog for testing
type mockModuleCatalog struct {
	modules   []*catalog.Module
	listError error
}

func (m *mockModuleCatalog) ListActive() ([]*catalog.Module, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.modules, nil
}

func (m *mockModuleCatalog) FindByName(name string) (*catalog.Module, error) {
	for _, module := range m.modules {
		if module.Name == name {
			return module, nil
		}
	}
	return nil, internal.NewNotFoundError("Module "+name+" not found", internal.ErrCodeModuleNotFound)
}

// Mock user resolver: known users map their string keys onto ids.
type mockUserResolver struct {
	ids map[string]int64
}

func (m *mockUserResolver) ResolveUserID(idOrCode string) (int64, error) {
	return m.ids[idOrCode], nil
}

type mockActiveChecker struct {
	inactive map[string]bool
}

func (m *mockActiveChecker) CheckActive(idOrCode string) error {
	if m.inactive[idOrCode] {
		return internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}
	return nil
}

var _ = Describe("AccessRightService", func() {
	var (
		service  *accessrights.Service
		mockRepo *mockGrantRepository
		modules  *mockModuleCatalog
		resolver *mockUserResolver
		active   *mockActiveChecker
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		mockRepo = newMockGrantRepository()
		modules = &mockModuleCatalog{modules: []*catalog.Module{
			{ID: 1, Name: "Authentication", IsActive: true},
			{ID: 2, Name: "Blog", IsActive: true},
			{ID: 3, Name: "Puck", IsActive: true},
		}}
		resolver = &mockUserResolver{ids: map[string]int64{
			"7": 7, "12345678": 7, "9": 9,
		}}
		active = &mockActiveChecker{inactive: make(map[string]bool)}
		service = accessrights.NewService(mockRepo, modules, resolver, active, testLogger)
	})

	Describe("ProvisionAll", func() {
		It("creates one row per active module with the given flags", func() {
			grants, err := service.ProvisionAll(7, accessrights.DenyAll())

			Expect(err).ToNot(HaveOccurred())
			Expect(grants).To(HaveLen(3))
			for _, grant := range grants {
				Expect(grant.UserID).To(Equal(int64(7)))
				Expect(grant.CanCreate).To(BeFalse())
				Expect(grant.CanRead).To(BeFalse())
				Expect(grant.CanUpdate).To(BeFalse())
				Expect(grant.CanDelete).To(BeFalse())
			}
		})

		It("provisions an all-true matrix for seed accounts", func() {
			grants, err := service.ProvisionAll(9, accessrights.AllowAll())

			Expect(err).ToNot(HaveOccurred())
			Expect(grants).To(HaveLen(3))
			for _, grant := range grants {
				Expect(grant.CanCreate).To(BeTrue())
				Expect(grant.CanRead).To(BeTrue())
				Expect(grant.CanUpdate).To(BeTrue())
				Expect(grant.CanDelete).To(BeTrue())
			}
		})

		It("reports a batch insert failure as a data inconsistency", func() {
			mockRepo.createError = errors.New("unique constraint violated")

			grants, err := service.ProvisionAll(7, accessrights.DenyAll())

			Expect(grants).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInconsistency))
		})
	})

	Describe("GetOne", func() {
		BeforeEach(func() {
			_, err := service.ProvisionAll(7, accessrights.DenyAll())
			Expect(err).ToNot(HaveOccurred())
		})

		It("resolves the user by external code as well as by id", func() {
			byID, err := service.GetOne("7", "Blog")
			Expect(err).ToNot(HaveOccurred())

			byCode, err := service.GetOne("12345678", "Blog")
			Expect(err).ToNot(HaveOccurred())

			Expect(byCode.ID).To(Equal(byID.ID))
		})

		It("fails closed on an unknown module before touching grants", func() {
			grant, err := service.GetOne("7", "Nonexistent")

			Expect(grant).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeModuleNotFound))
		})

		It("returns a permissions-not-found error when no row exists", func() {
			grant, err := service.GetOne("9", "Blog")

			Expect(grant).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeGrantsNotFound))
		})

		It("rejects an unknown user", func() {
			grant, err := service.GetOne("unknown", "Blog")

			Expect(grant).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeUserNotFound))
		})
	})

	Describe("UpdateOne", func() {
		boolPtr := func(v bool) *bool { return &v }

		BeforeEach(func() {
			_, err := service.ProvisionAll(7, accessrights.DenyAll())
			Expect(err).ToNot(HaveOccurred())
		})

		It("merges only the supplied booleans", func() {
			grants, err := service.UpdateOne("7", "Blog", accessrights.UpdateAccessRightDTO{
				CanRead:   boolPtr(true),
				CanUpdate: boolPtr(true),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(grants).To(HaveLen(1))
			Expect(grants[0].CanRead).To(BeTrue())
			Expect(grants[0].CanUpdate).To(BeTrue())
			Expect(grants[0].CanCreate).To(BeFalse())
			Expect(grants[0].CanDelete).To(BeFalse())
		})

		It("rejects updates that target a disabled user", func() {
			active.inactive["7"] = true

			grants, err := service.UpdateOne("7", "Blog", accessrights.UpdateAccessRightDTO{
				CanRead: boolPtr(true),
			})

			Expect(grants).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeUserNotFound))
		})

		It("rejects an unknown module", func() {
			grants, err := service.UpdateOne("7", "Nope", accessrights.UpdateAccessRightDTO{
				CanRead: boolPtr(true),
			})

			Expect(grants).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeModuleNotFound))
		})
	})

	Describe("RevokeAll", func() {
		It("zeroes every boolean without deleting rows", func() {
			_, err := service.ProvisionAll(7, accessrights.AllowAll())
			Expect(err).ToNot(HaveOccurred())

			grants, err := service.RevokeAll("7")

			Expect(err).ToNot(HaveOccurred())
			Expect(grants).To(HaveLen(3))
			for _, grant := range grants {
				Expect(grant.CanCreate).To(BeFalse())
				Expect(grant.CanRead).To(BeFalse())
				Expect(grant.CanUpdate).To(BeFalse())
				Expect(grant.CanDelete).To(BeFalse())
			}
		})

		It("does not require the user to be active", func() {
			_, err := service.ProvisionAll(7, accessrights.AllowAll())
			Expect(err).ToNot(HaveOccurred())
			active.inactive["7"] = true

			_, err = service.RevokeAll("7")

			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("GrantsForUser", func() {
		It("returns an empty slice for a user without rows", func() {
			grants, err := service.GrantsForUser(42)

			Expect(err).ToNot(HaveOccurred())
			Expect(grants).To(BeEmpty())
		})

		It("returns the raw grant set", func() {
			_, err := service.ProvisionAll(7, accessrights.DenyAll())
			Expect(err).ToNot(HaveOccurred())

			grants, err := service.GrantsForUser(7)

			Expect(err).ToNot(HaveOccurred())
			Expect(grants).To(HaveLen(3))
		})
	})

	Describe("user key formats", func() {
		It("treats numeric ids and external codes identically", func() {
			_, err := service.ProvisionAll(7, accessrights.DenyAll())
			Expect(err).ToNot(HaveOccurred())

			all, err := service.GetAll(strconv.FormatInt(7, 10))
			Expect(err).ToNot(HaveOccurred())

			byCode, err := service.GetAll("12345678")
			Expect(err).ToNot(HaveOccurred())

			Expect(byCode).To(HaveLen(len(all)))
		})
	})
})
