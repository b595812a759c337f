package postgres_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/unilanding/cms-backend/internal/accessrights"
	"github.com/unilanding/cms-backend/internal/accessrights/postgres"
	accessrightsDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/accessrights"
)

var _ = Describe("AccessRightRepository", func() {
	var (
		db   *gorm.DB
		repo accessrights.RepositoryAPI
	)

	row := func(userID, moduleID int64, moduleName string, read bool) *accessrightsDatamodel.AccessRight {
		return &accessrightsDatamodel.AccessRight{
			UserID:     userID,
			ModuleID:   moduleID,
			ModuleName: moduleName,
			CanRead:    read,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(db.AutoMigrate(&accessrightsDatamodel.AccessRight{})).To(Succeed())

		repo = postgres.NewAccessRightRepository(db)
	})

	Describe("CreateBatch", func() {
		It("inserts the whole matrix in one call", func() {
			rows := []*accessrightsDatamodel.AccessRight{
				row(1, 10, "Blog", false),
				row(1, 11, "Puck", false),
				row(1, 12, "Images", false),
			}

			Expect(repo.CreateBatch(rows)).To(Succeed())

			stored, err := repo.GetByUser(1)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored).To(HaveLen(3))
		})

		It("fails the batch on a duplicate (user, module) pair", func() {
			Expect(repo.CreateBatch([]*accessrightsDatamodel.AccessRight{
				row(1, 10, "Blog", false),
			})).To(Succeed())

			err := repo.CreateBatch([]*accessrightsDatamodel.AccessRight{
				row(1, 10, "Blog", true),
			})

			Expect(err).To(HaveOccurred())
		})

		It("accepts an empty batch as a no-op", func() {
			Expect(repo.CreateBatch(nil)).To(Succeed())
		})
	})

	Describe("GetByUser", func() {
		It("returns rows ordered by module name", func() {
			Expect(repo.CreateBatch([]*accessrightsDatamodel.AccessRight{
				row(1, 12, "Puck", false),
				row(1, 10, "Authentication", false),
				row(1, 11, "Blog", false),
			})).To(Succeed())

			stored, err := repo.GetByUser(1)

			Expect(err).ToNot(HaveOccurred())
			Expect(stored).To(HaveLen(3))
			Expect(stored[0].ModuleName).To(Equal("Authentication"))
			Expect(stored[1].ModuleName).To(Equal("Blog"))
			Expect(stored[2].ModuleName).To(Equal("Puck"))
		})

		It("returns an empty slice for a user without rows", func() {
			stored, err := repo.GetByUser(99)

			Expect(err).ToNot(HaveOccurred())
			Expect(stored).To(BeEmpty())
		})
	})

	Describe("GetByUserAndModule", func() {
		It("scopes to one module of one user", func() {
			Expect(repo.CreateBatch([]*accessrightsDatamodel.AccessRight{
				row(1, 10, "Blog", true),
				row(1, 11, "Puck", false),
				row(2, 10, "Blog", true),
			})).To(Succeed())

			stored, err := repo.GetByUserAndModule(1, "Blog")

			Expect(err).ToNot(HaveOccurred())
			Expect(stored).To(HaveLen(1))
			Expect(stored[0].UserID).To(Equal(int64(1)))
			Expect(stored[0].ModuleName).To(Equal("Blog"))
		})
	})

	Describe("Save", func() {
		It("persists zeroed flags without deleting rows", func() {
			Expect(repo.CreateBatch([]*accessrightsDatamodel.AccessRight{
				row(1, 10, "Blog", true),
				row(1, 11, "Puck", true),
			})).To(Succeed())

			stored, err := repo.GetByUser(1)
			Expect(err).ToNot(HaveOccurred())
			for _, r := range stored {
				r.CanRead = false
			}

			Expect(repo.Save(stored)).To(Succeed())

			after, err := repo.GetByUser(1)
			Expect(err).ToNot(HaveOccurred())
			Expect(after).To(HaveLen(2))
			for _, r := range after {
				Expect(r.CanRead).To(BeFalse())
			}
		})
	})
})
