package pagebuilder

import (
	"fmt"
	"log/slog"

	"github.com/unilanding/cms-backend/internal"
	pagebuilderDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/pagebuilder"
)

type RepositoryAPI interface {
	GetBySlug(slug string) (*pagebuilderDatamodel.PuckComponent, error)
	List(limit, offset int) ([]*pagebuilderDatamodel.PuckComponent, int64, error)
	Create(row *pagebuilderDatamodel.PuckComponent) error
	Update(row *pagebuilderDatamodel.PuckComponent) error
	DeleteBySlug(slug string) (int64, error)
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create adds a new building block. Unlike blog documents, a slug collision
// here is a conflict: two editor components must never share a slug, so
// re-posting does not silently overwrite.
func (s *Service) Create(dto CreateComponentDTO) (*Component, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	slug := dto.Slug
	if slug == "" {
		slug = Slugify(dto.Title)
	}
	if slug == "" {
		return nil, ValidationError{Msg: "title does not produce a usable slug"}
	}

	existing, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, internal.NewInternalError("failed to query component", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError(
			fmt.Sprintf("Component with slug %s already exists", slug), internal.ErrCodeDuplicateSlug)
	}

	row := &pagebuilderDatamodel.PuckComponent{
		Slug:    slug,
		Title:   dto.Title,
		Content: toJSONColumn(dto.Content),
		Root:    toJSONColumn(dto.Root),
		Zones:   toJSONColumn(dto.Zones),
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create component", "slug", slug, "error", err)
		return nil, internal.NewInternalError("failed to create component", err)
	}

	s.logger.Info("component created", "slug", slug, "id", row.ID)
	return FromDataModel(row), nil
}

func (s *Service) GetBySlug(slug string) (*Component, error) {
	row, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, internal.NewInternalError("failed to query component", err)
	}
	if row == nil {
		return nil, notFound(slug)
	}
	return FromDataModel(row), nil
}

func (s *Service) List(limit, offset int) (*ComponentsResponse, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	rows, total, err := s.repo.List(limit, offset)
	if err != nil {
		return nil, internal.NewInternalError("failed to list components", err)
	}

	return &ComponentsResponse{
		Components: FromDataModels(rows),
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// Update merges the non-empty DTO fields into an existing component. The
// slug is immutable; renaming means delete and re-create.
func (s *Service) Update(slug string, dto UpdateComponentDTO) (*Component, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, internal.NewInternalError("failed to query component", err)
	}
	if row == nil {
		return nil, notFound(slug)
	}

	if dto.Title != "" {
		row.Title = dto.Title
	}
	if len(dto.Content) > 0 {
		row.Content = toJSONColumn(dto.Content)
	}
	if len(dto.Root) > 0 {
		row.Root = toJSONColumn(dto.Root)
	}
	if len(dto.Zones) > 0 {
		row.Zones = toJSONColumn(dto.Zones)
	}

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update component", "slug", slug, "error", err)
		return nil, internal.NewInternalError("failed to update component", err)
	}

	return FromDataModel(row), nil
}

func (s *Service) Delete(slug string) error {
	deleted, err := s.repo.DeleteBySlug(slug)
	if err != nil {
		s.logger.Error("failed to delete component", "slug", slug, "error", err)
		return internal.NewInternalError("failed to delete component", err)
	}
	if deleted == 0 {
		return notFound(slug)
	}

	s.logger.Info("component deleted", "slug", slug)
	return nil
}

func notFound(slug string) error {
	return internal.NewNotFoundError(
		fmt.Sprintf("Component %s not found", slug), internal.ErrCodeComponentNotFound)
}
