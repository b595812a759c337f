package blog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/unilanding/cms-backend/internal"
	blogDatamodel "github.com/unilanding/cms-backend/internal/core/datamodel/blog"
)

type RepositoryAPI interface {
	GetBySlug(slug string) (*blogDatamodel.BlogComponent, error)
	List(limit, offset int) ([]*blogDatamodel.BlogComponent, int64, error)
	Create(row *blogDatamodel.BlogComponent) error
	Update(row *blogDatamodel.BlogComponent) error
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

// Upsert creates the document or replaces the content of an existing one
// with the same slug. The editor re-publishes whole documents, so POST is
// idempotent by slug.
func (s *Service) Upsert(dto UpsertComponentDTO) (*Component, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(dto.Slug)

	existing, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, internal.NewInternalError("failed to query blog component", err)
	}

	if existing != nil {
		existing.Content = toJSONColumn(dto.Content)
		if err := s.repo.Update(existing); err != nil {
			s.logger.Error("failed to update blog component", "slug", slug, "error", err)
			return nil, internal.NewInternalError("failed to update blog component", err)
		}
		return FromDataModel(existing), nil
	}

	row := &blogDatamodel.BlogComponent{
		Slug:    slug,
		Content: toJSONColumn(dto.Content),
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create blog component", "slug", slug, "error", err)
		return nil, internal.NewInternalError("failed to create blog component", err)
	}

	s.logger.Info("blog component created", "slug", slug, "id", row.ID)
	return FromDataModel(row), nil
}

func (s *Service) GetBySlug(slug string) (*Component, error) {
	row, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, internal.NewInternalError("failed to query blog component", err)
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
		return nil, internal.NewInternalError("failed to list blog components", err)
	}

	return &ComponentsResponse{
		Components: FromDataModels(rows),
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

func (s *Service) Update(slug string, dto UpdateComponentDTO) (*Component, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, internal.NewInternalError("failed to query blog component", err)
	}
	if row == nil {
		return nil, notFound(slug)
	}

	row.Content = toJSONColumn(dto.Content)
	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update blog component", "slug", slug, "error", err)
		return nil, internal.NewInternalError("failed to update blog component", err)
	}

	return FromDataModel(row), nil
}

func (s *Service) Delete(slug string) error {
	deleted, err := s.repo.DeleteBySlug(slug)
	if err != nil {
		s.logger.Error("failed to delete blog component", "slug", slug, "error", err)
		return internal.NewInternalError("failed to delete blog component", err)
	}
	if deleted == 0 {
		return notFound(slug)
	}

	s.logger.Info("blog component deleted", "slug", slug)
	return nil
}

func notFound(slug string) error {
	return internal.NewNotFoundError(
		fmt.Sprintf("Blog component %s not found", slug), internal.ErrCodeComponentNotFound)
}
