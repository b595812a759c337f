package seed

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/unilanding/cms-backend/internal"
	"github.com/unilanding/cms-backend/internal/auth"
	"github.com/unilanding/cms-backend/internal/catalog"
)

// DefaultModules is the fixed catalog the bootstrap installs. Grant rows are
// only ever provisioned against modules in this set (or ones added later
// through the catalog).
var DefaultModules = []string{
	"Authentication",
	"Permission",
	"Images",
	"Blog",
	"Puck",
	"Templates",
}

var ErrSeedForbidden = internal.NewForbiddenError("Invalid seed secret", internal.ErrCodeSeedForbidden)

// ModuleEnsurer is the catalog slice the seeder needs.
type ModuleEnsurer interface {
	EnsureModule(name string, active bool) (*catalog.Module, error)
}

// AdminRegistrar creates the superadmin account with an all-true matrix.
type AdminRegistrar interface {
	RegisterSeed(dto auth.RegisterDTO) (*auth.RegisteredUser, error)
}

// Admin holds the bootstrap account credentials, sourced from config.
type Admin struct {
	Email    string
	Password string
	FullName string
	Code     string
}

type Service struct {
	secret  string
	admin   Admin
	catalog ModuleEnsurer
	users   AdminRegistrar
	logger  *slog.Logger
}

func NewService(secret string, admin Admin, catalog ModuleEnsurer, users AdminRegistrar, logger *slog.Logger) *Service {
	return &Service{
		secret:  secret,
		admin:   admin,
		catalog: catalog,
		users:   users,
		logger:  logger,
	}
}

// Result reports what the bootstrap did. Re-runs are expected; the fields
// distinguish fresh installs from no-ops.
type Result struct {
	Modules      []string `json:"modules"`
	AdminCreated bool     `json:"admin_created"`
	AdminEmail   string   `json:"admin_email"`
}

// Run installs the module catalog and the superadmin account. The secret is
// a shared deployment credential, not a user token; without a match nothing
// happens. Re-running is safe: modules are upserted and an existing admin is
// left alone.
func (s *Service) Run(secret string) (*Result, error) {
	if s.secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(s.secret)) != 1 {
		return nil, ErrSeedForbidden
	}

	result := &Result{AdminEmail: strings.ToLower(s.admin.Email)}

	for _, name := range DefaultModules {
		module, err := s.catalog.EnsureModule(name, true)
		if err != nil {
			return nil, err
		}
		result.Modules = append(result.Modules, module.Name)
	}

	_, err := s.users.RegisterSeed(auth.RegisterDTO{
		Email:        s.admin.Email,
		Password:     s.admin.Password,
		FullName:     s.admin.FullName,
		ExternalCode: s.admin.Code,
	})
	switch {
	case err == nil:
		result.AdminCreated = true
		s.logger.Info("seed admin created", "email", result.AdminEmail)
	case err == auth.ErrDuplicateUser:
		s.logger.Info("seed admin already exists", "email", result.AdminEmail)
	default:
		return nil, err
	}

	return result, nil
}
