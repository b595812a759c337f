package auth_test

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unilanding/cms-backend/internal"
	"github.com/unilanding/cms-backend/internal/accessrights"
	"github.com/unilanding/cms-backend/internal/auth"
	userDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/user"
)

// Mock user repository for testing
type mockUserRepository struct {
	users       map[int64]*userDatamodel.User
	createError error
	getError    error
	updateError error
	nextID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*userDatamodel.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(user *userDatamodel.User) error {
	if m.createError != nil {
		return m.createError
	}
	for _, existing := range m.users {
		if existing.Email == user.Email || existing.ExternalCode == user.ExternalCode {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.users[id], nil
}

func (m *mockUserRepository) GetByIDOrCode(idOrCode string) (*userDatamodel.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	if id, err := strconv.ParseInt(idOrCode, 10, 64); err == nil {
		if user, ok := m.users[id]; ok {
			return user, nil
		}
	}
	for _, user := range m.users {
		if user.ExternalCode == idOrCode {
			return user, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) Update(user *userDatamodel.User) error {
	if m.updateError != nil {
		return m.updateError
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

// Mock permission provisioner recording provisioning and revocation calls.
type mockProvisioner struct {
	provisioned    map[int64]accessrights.Flags
	revoked        []string
	provisionError error
	revokeError    error
}

func newMockProvisioner() *mockProvisioner {
	return &mockProvisioner{provisioned: make(map[int64]accessrights.Flags)}
}

func (m *mockProvisioner) ProvisionAll(userID int64, flags accessrights.Flags) ([]accessrights.Grant, error) {
	if m.provisionError != nil {
		return nil, m.provisionError
	}
	m.provisioned[userID] = flags
	return []accessrights.Grant{{UserID: userID}}, nil
}

func (m *mockProvisioner) RevokeAll(idOrCode string) ([]accessrights.Grant, error) {
	if m.revokeError != nil {
		return nil, m.revokeError
	}
	m.revoked = append(m.revoked, idOrCode)
	return nil, nil
}

var _ = Describe("AuthService", func() {
	var (
		service     *auth.Service
		mockRepo    *mockUserRepository
		provisioner *mockProvisioner
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	tokenGen := auth.NewJWTTokenGenerator(
		"0123456789abcdef0123456789abcdef",
		"fedcba9876543210fedcba9876543210",
		15*time.Minute,
		7*24*time.Hour,
	)

	validRegister := auth.RegisterDTO{
		Email:        "Ada.Lovelace@Example.edu",
		Password:     "Analytical1",
		FullName:     "Ada Lovelace",
		ExternalCode: "12345678",
	}

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		provisioner = newMockProvisioner()
		service = auth.NewService(mockRepo, tokenGen, provisioner, testLogger, 10)
	})

	Describe("Register", func() {
		It("creates an active account, normalizes the email and issues tokens", func() {
			registered, err := service.Register(validRegister)

			Expect(err).ToNot(HaveOccurred())
			Expect(registered.User.Email).To(Equal("ada.lovelace@example.edu"))
			Expect(registered.User.IsActive).To(BeTrue())
			Expect(registered.Tokens.AccessToken).ToNot(BeEmpty())
			Expect(registered.Tokens.RefreshToken).ToNot(BeEmpty())
		})

		It("provisions an all-false matrix", func() {
			registered, err := service.Register(validRegister)

			Expect(err).ToNot(HaveOccurred())
			Expect(provisioner.provisioned).To(HaveKeyWithValue(
				registered.User.ID, accessrights.DenyAll()))
		})

		It("rejects a duplicate email or code with a conflict", func() {
			_, err := service.Register(validRegister)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Register(validRegister)
			Expect(err).To(Equal(auth.ErrDuplicateUser))
		})

		It("reports provisioning failure as a data inconsistency", func() {
			provisioner.provisionError = errors.New("insert failed")

			registered, err := service.Register(validRegister)

			Expect(registered).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInconsistency))
		})

		It("rejects a weak password", func() {
			dto := validRegister
			dto.Password = "alllowercase"

			_, err := service.Register(dto)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("password"))
		})

		It("rejects an external code that is not 8 or 9 digits", func() {
			dto := validRegister
			dto.ExternalCode = "1234"

			_, err := service.Register(dto)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("external_code"))
		})
	})

	Describe("RegisterSeed", func() {
		It("provisions an all-true matrix", func() {
			registered, err := service.RegisterSeed(validRegister)

			Expect(err).ToNot(HaveOccurred())
			Expect(provisioner.provisioned).To(HaveKeyWithValue(
				registered.User.ID, accessrights.AllowAll()))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			_, err := service.Register(validRegister)
			Expect(err).ToNot(HaveOccurred())
		})

		It("authenticates with the normalized email", func() {
			registered, err := service.Login(auth.LoginDTO{
				Email:    "ADA.LOVELACE@example.edu",
				Password: "Analytical1",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(registered.Tokens.AccessToken).ToNot(BeEmpty())
		})

		It("rejects a wrong password without leaking which field failed", func() {
			_, err := service.Login(auth.LoginDTO{
				Email:    "ada.lovelace@example.edu",
				Password: "Wrong1password",
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("rejects a disabled account the same way as a missing one", func() {
			_, err := service.Disable("1")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Login(auth.LoginDTO{
				Email:    "ada.lovelace@example.edu",
				Password: "Analytical1",
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})
	})

	Describe("Disable", func() {
		BeforeEach(func() {
			_, err := service.Register(validRegister)
			Expect(err).ToNot(HaveOccurred())
		})

		It("flips the active flag and revokes every grant", func() {
			user, err := service.Disable("1")

			Expect(err).ToNot(HaveOccurred())
			Expect(user.IsActive).To(BeFalse())
			Expect(provisioner.revoked).To(ConsistOf("1"))
		})

		It("resolves the account by external code", func() {
			user, err := service.Disable("12345678")

			Expect(err).ToNot(HaveOccurred())
			Expect(user.IsActive).To(BeFalse())
		})

		It("conflicts when the account is already disabled", func() {
			_, err := service.Disable("1")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Disable("1")

			Expect(err).To(Equal(auth.ErrUserAlreadyDisabled))
			Expect(provisioner.revoked).To(HaveLen(1))
		})

		It("reports a failed revocation as a data inconsistency", func() {
			provisioner.revokeError = errors.New("update failed")

			_, err := service.Disable("1")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInconsistency))
		})
	})

	Describe("Enable", func() {
		BeforeEach(func() {
			_, err := service.Register(validRegister)
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Disable("1")
			Expect(err).ToNot(HaveOccurred())
		})

		It("reactivates the account without touching grants", func() {
			revocations := len(provisioner.revoked)

			user, err := service.Enable("1")

			Expect(err).ToNot(HaveOccurred())
			Expect(user.IsActive).To(BeTrue())
			Expect(provisioner.revoked).To(HaveLen(revocations))
			Expect(provisioner.provisioned).To(HaveLen(1))
		})

		It("conflicts when the account is already active", func() {
			_, err := service.Enable("1")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Enable("1")

			Expect(err).To(Equal(auth.ErrUserAlreadyActive))
		})
	})

	Describe("ActiveUser and CheckActive", func() {
		BeforeEach(func() {
			_, err := service.Register(validRegister)
			Expect(err).ToNot(HaveOccurred())
		})

		It("treats a disabled account as missing", func() {
			_, err := service.Disable("1")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ActiveUser("1")
			Expect(err).To(Equal(auth.ErrUserNotFound))

			Expect(service.CheckActive("1")).To(Equal(auth.ErrUserNotFound))
		})

		It("accepts either key format", func() {
			byID, err := service.ActiveUser("1")
			Expect(err).ToNot(HaveOccurred())

			byCode, err := service.ActiveUser("12345678")
			Expect(err).ToNot(HaveOccurred())

			Expect(byCode.ID).To(Equal(byID.ID))
		})
	})

	Describe("CheckStatus", func() {
		It("re-issues tokens for an active account", func() {
			registered, err := service.Register(validRegister)
			Expect(err).ToNot(HaveOccurred())

			refreshed, err := service.CheckStatus(registered.User.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(refreshed.User.ID).To(Equal(registered.User.ID))
			Expect(refreshed.Tokens.AccessToken).ToNot(BeEmpty())
		})

		It("fails for disabled accounts", func() {
			registered, err := service.Register(validRegister)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Disable("1")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CheckStatus(registered.User.ID)
			Expect(err).To(Equal(auth.ErrUserNotFound))
		})
	})

	Describe("GetAuthUser", func() {
		It("fails for disabled accounts so stale tokens stop working", func() {
			registered, err := service.Register(validRegister)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Disable("1")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.GetAuthUser(registered.User.ID)
			Expect(err).To(Equal(auth.ErrUserNotFound))
		})
	})

	Describe("token round trip", func() {
		It("validates an access token it just issued", func() {
			registered, err := service.Register(validRegister)
			Expect(err).ToNot(HaveOccurred())

			claims, err := service.ValidateAccessToken(registered.Tokens.AccessToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Email).To(Equal("ada.lovelace@example.edu"))
			Expect(claims.UserID).To(Equal(strconv.FormatInt(registered.User.ID, 10)))
		})

		It("rejects garbage tokens", func() {
			_, err := service.ValidateAccessToken("not.a.token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})
})
