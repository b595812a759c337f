package catalog

import (
	"fmt"
	"log/slog"

	"github.com/unilanding/cms-backend/internal"
	catalogDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/catalog"
)

type RepositoryAPI interface {
	GetAll() ([]*catalogDatamodel.SystemModule, error)
	GetByName(name string) (*catalogDatamodel.SystemModule, error)
	Create(module *catalogDatamodel.SystemModule) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// FindByName resolves a module by its stored name. An unknown name is a
// client error: whatever operation targeted that module cannot proceed.
func (s *Service) FindByName(name string) (*Module, error) {
	dataModule, err := s.repo.GetByName(NormalizeName(name))
	if err != nil {
		s.logger.Error("failed to query module", "name", name, "error", err)
		return nil, internal.NewInternalError("failed to query module", err)
	}
	if dataModule == nil {
		return nil, internal.NewNotFoundError(
			fmt.Sprintf("Module %s not found", name), internal.ErrCodeModuleNotFound)
	}
	return FromDataModel(dataModule), nil
}

func (s *Service) ListActive() ([]*Module, error) {
	dataModules, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list modules", "error", err)
		return nil, internal.NewInternalError("failed to list modules", err)
	}

	var modules []*Module
	for _, dataModule := range dataModules {
		m := FromDataModel(dataModule)
		if m.IsActiveModule() {
			modules = append(modules, m)
		}
	}
	return modules, nil
}

// EnsureModule inserts the module if it is not present yet. Re-running the
// seed leaves existing rows untouched.
func (s *Service) EnsureModule(name string, active bool) (*Module, error) {
	normalized := NormalizeName(name)

	existing, err := s.repo.GetByName(normalized)
	if err != nil {
		return nil, internal.NewInternalError("failed to query module", err)
	}
	if existing != nil {
		return FromDataModel(existing), nil
	}

	dataModule := ToDataModel(NewModule(normalized, active))
	if err := s.repo.Create(dataModule); err != nil {
		s.logger.Error("failed to create module", "name", normalized, "error", err)
		return nil, internal.NewInternalError("failed to create module", err)
	}

	s.logger.Info("module created", "name", normalized, "id", dataModule.ID)
	return FromDataModel(dataModule), nil
}
