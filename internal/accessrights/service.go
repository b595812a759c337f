package accessrights

import (
	"fmt"
	"log/slog"

	"github.com/unilanding/cms-backend/internal"
	"github.com/unilanding/cms-backend/internal/catalog"
	accessrightsDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/accessrights"
)

type RepositoryAPI interface {
	CreateBatch(rows []*accessrightsDatamodel.AccessRight) error
	GetByUser(userID int64) ([]*accessrightsDatamodel.AccessRight, error)
	GetByUserAndModule(userID int64, moduleName string) ([]*accessrightsDatamodel.AccessRight, error)
	Save(rows []*accessrightsDatamodel.AccessRight) error
}

// ModuleCatalog is the slice of the catalog service this package needs.
type ModuleCatalog interface {
	ListActive() ([]*catalog.Module, error)
	FindByName(name string) (*catalog.Module, error)
}

// UserResolver maps a primary id or external code onto the user's primary
// id. The auth repository implements it; keeping resolution behind one
// interface guarantees both packages resolve dual keys identically.
type UserResolver interface {
	ResolveUserID(idOrCode string) (int64, error)
}

// ActiveChecker rejects lookups that target a missing or disabled user. The
// auth service implements it; this narrow interface is what breaks the
// dependency cycle between the auth and access-rights packages.
type ActiveChecker interface {
	CheckActive(idOrCode string) error
}

// ActiveCheckerFunc adapts a closure into an ActiveChecker. The wiring code
// uses it to late-bind the auth service, which is constructed after this one.
type ActiveCheckerFunc func(idOrCode string) error

func (f ActiveCheckerFunc) CheckActive(idOrCode string) error { return f(idOrCode) }

type Service struct {
	repo    RepositoryAPI
	modules ModuleCatalog
	users   UserResolver
	active  ActiveChecker
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, modules ModuleCatalog, users UserResolver, active ActiveChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		modules: modules,
		users:   users,
		active:  active,
		logger:  logger,
	}
}

// ProvisionAll creates one grant row per active module for the given user,
// all initialized from flags, in a single batch insert. Calling it twice for
// the same user trips the (user_id, module_id) uniqueness constraint rather
// than silently duplicating the matrix.
func (s *Service) ProvisionAll(userID int64, flags Flags) ([]Grant, error) {
	modules, err := s.modules.ListActive()
	if err != nil {
		return nil, err
	}

	rows := make([]*accessrightsDatamodel.AccessRight, 0, len(modules))
	for _, m := range modules {
		rows = append(rows, &accessrightsDatamodel.AccessRight{
			UserID:     userID,
			ModuleID:   m.ID,
			ModuleName: m.Name,
			CanCreate:  flags.CanCreate,
			CanRead:    flags.CanRead,
			CanUpdate:  flags.CanUpdate,
			CanDelete:  flags.CanDelete,
		})
	}

	if err := s.repo.CreateBatch(rows); err != nil {
		s.logger.Error("failed to provision grant rows", "user_id", userID, "modules", len(rows), "error", err)
		return nil, internal.NewInconsistencyError("failed to provision permissions", err)
	}

	s.logger.Info("provisioned grant rows", "user_id", userID, "modules", len(rows))
	return FromDataModels(rows), nil
}

func (s *Service) resolveUser(idOrCode string) (int64, error) {
	userID, err := s.users.ResolveUserID(idOrCode)
	if err != nil {
		return 0, internal.NewInternalError("failed to resolve user", err)
	}
	if userID == 0 {
		return 0, internal.NewNotFoundError("User not found", internal.ErrCodeUserNotFound)
	}
	return userID, nil
}

// GetOne returns the single grant row for (user, module). The module lookup
// runs before any grant lookup so an unknown module name fails closed.
func (s *Service) GetOne(idOrCode, moduleName string) (*Grant, error) {
	userID, err := s.resolveUser(idOrCode)
	if err != nil {
		return nil, err
	}

	module, err := s.modules.FindByName(moduleName)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.GetByUserAndModule(userID, module.Name)
	if err != nil {
		return nil, internal.NewInternalError("failed to query permissions", err)
	}
	if len(rows) == 0 {
		return nil, internal.NewNotFoundError("Permissions not found", internal.ErrCodeGrantsNotFound)
	}

	return FromDataModel(rows[0]), nil
}

// GetAll returns every grant row for a user. Zero rows is an error state:
// provisioning guarantees full coverage, so an empty set means the matrix
// was never created.
func (s *Service) GetAll(idOrCode string) ([]Grant, error) {
	userID, err := s.resolveUser(idOrCode)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.GetByUser(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to query permissions", err)
	}
	if len(rows) == 0 {
		return nil, internal.NewNotFoundError("Permissions not found", internal.ErrCodeGrantsNotFound)
	}

	return FromDataModels(rows), nil
}

// UpdateOne merges the supplied boolean subset into the user's grant rows
// for one module. Only active users' grants are editable through this path.
func (s *Service) UpdateOne(idOrCode, moduleName string, dto UpdateAccessRightDTO) ([]Grant, error) {
	userID, err := s.resolveUser(idOrCode)
	if err != nil {
		return nil, err
	}

	if err := s.active.CheckActive(idOrCode); err != nil {
		return nil, err
	}

	module, err := s.modules.FindByName(moduleName)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.GetByUserAndModule(userID, module.Name)
	if err != nil {
		return nil, internal.NewInternalError("failed to query permissions", err)
	}
	if len(rows) == 0 {
		return nil, internal.NewNotFoundError(
			fmt.Sprintf("Permissions not found for user %d in module %s", userID, module.Name),
			internal.ErrCodeGrantsNotFound)
	}

	for _, row := range rows {
		dto.ApplyTo(row)
	}

	if err := s.repo.Save(rows); err != nil {
		s.logger.Error("failed to save grant rows", "user_id", userID, "module", module.Name, "error", err)
		return nil, internal.NewInternalError("failed to update permissions", err)
	}

	s.logger.Info("grant rows updated", "user_id", userID, "module", module.Name)
	return FromDataModels(rows), nil
}

// RevokeAll zeroes every boolean on every grant row for the user. Rows are
// never deleted, and the user is allowed to be inactive: disabling an
// account runs through here after the active flag is already flipped.
func (s *Service) RevokeAll(idOrCode string) ([]Grant, error) {
	userID, err := s.resolveUser(idOrCode)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.GetByUser(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to query permissions", err)
	}
	if len(rows) == 0 {
		return nil, internal.NewNotFoundError("Permissions not found", internal.ErrCodeGrantsNotFound)
	}

	for _, row := range rows {
		row.CanCreate = false
		row.CanRead = false
		row.CanUpdate = false
		row.CanDelete = false
	}

	if err := s.repo.Save(rows); err != nil {
		s.logger.Error("failed to revoke grant rows", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to revoke permissions", err)
	}

	s.logger.Info("grant rows revoked", "user_id", userID, "rows", len(rows))
	return FromDataModels(rows), nil
}

// GrantsForUser is the raw fetch the authorization gate uses on every
// request. An empty result is returned as-is; the gate treats missing rows
// as missing grants, not as an error.
func (s *Service) GrantsForUser(userID int64) ([]Grant, error) {
	rows, err := s.repo.GetByUser(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to query permissions", err)
	}
	return FromDataModels(rows), nil
}
