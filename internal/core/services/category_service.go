package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/association_manager_app/internal/core/ports/services"
	"github.com/SscSPs/association_manager_app/internal/dto"
)

const defaultCategoryColor = "#6b7280"

type categoryService struct {
	BaseService
	repo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates the service for the global category registry.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade, audit portssvc.AuditRecorderSvc) portssvc.CategorySvcFacade {
	return &categoryService{BaseService: BaseService{Audit: audit}, repo: repo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) ListCategories(ctx context.Context, entryType *domain.EntryType) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx, entryType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, categoryID int64) (*domain.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category", slog.Int64("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, actor domain.Actor) (*domain.Category, error) {
	category := domain.Category{
		Name:    strings.TrimSpace(req.Name),
		Color:   strings.TrimSpace(req.Color),
		Type:    domain.EntryType(req.Type),
		Version: 1,
	}
	if category.Name == "" {
		return nil, apperrors.NewValidationFailedError("name is required")
	}
	if !category.Type.IsValid() {
		return nil, apperrors.NewValidationFailedError("type must be IN or OUT")
	}
	if category.Color == "" {
		category.Color = defaultCategoryColor
	}

	id, err := s.repo.SaveCategory(ctx, category)
	if err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("name", category.Name))
		return nil, err
	}
	category.CategoryID = id

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditCreate,
		EntityType:  domain.EntityCategory,
		EntityID:    strconv.FormatInt(id, 10),
		Description: "Category created: " + category.Name,
		New:         category,
	})
	s.LogInfo(ctx, "Category created", slog.Int64("category_id", id))
	return &category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID int64, req dto.UpdateCategoryRequest, actor domain.Actor) (*domain.Category, error) {
	current, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != current.Version {
		return nil, apperrors.NewConflictError("category was modified concurrently, reload and retry")
	}

	updated := *current
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
		if updated.Name == "" {
			return nil, apperrors.NewValidationFailedError("name cannot be empty")
		}
	}
	if req.Color != nil {
		updated.Color = strings.TrimSpace(*req.Color)
	}
	if req.Type != nil {
		updated.Type = domain.EntryType(*req.Type)
		if !updated.Type.IsValid() {
			return nil, apperrors.NewValidationFailedError("type must be IN or OUT")
		}
	}

	if err := s.repo.UpdateCategory(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.Int64("category_id", categoryID))
		return nil, err
	}
	updated.Version = current.Version + 1

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditUpdate,
		EntityType:  domain.EntityCategory,
		EntityID:    strconv.FormatInt(categoryID, 10),
		Description: "Category updated: " + updated.Name,
		Old:         current,
		New:         updated,
	})
	return &updated, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID int64, actor domain.Actor) error {
	current, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return err
	}

	count, err := s.repo.CountEntriesByCategory(ctx, categoryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count category usage", slog.Int64("category_id", categoryID))
		return err
	}
	if count > 0 {
		return apperrors.NewConflictError("category is used by " + strconv.FormatInt(count, 10) + " ledger entries and cannot be deleted")
	}

	if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.Int64("category_id", categoryID))
		return err
	}

	s.recordAudit(ctx, domain.AuditRecord{
		Actor:       actor,
		Action:      domain.AuditDelete,
		EntityType:  domain.EntityCategory,
		EntityID:    strconv.FormatInt(categoryID, 10),
		Description: "Category deleted: " + current.Name,
		Old:         current,
	})
	return nil
}
