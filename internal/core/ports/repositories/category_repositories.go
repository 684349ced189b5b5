package repositories

import (
	"context"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// CategoryReader defines read operations for the category registry.
// Categories are global: none of these methods take a tenant scope.
type CategoryReader interface {
	FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)
	ListCategories(ctx context.Context, entryType *domain.EntryType) ([]domain.Category, error)

	// CountEntriesByCategory counts ledger entries of every tenant referencing the category.
	CountEntriesByCategory(ctx context.Context, categoryID int64) (int64, error)
}

// CategoryWriter defines write operations for the category registry.
type CategoryWriter interface {
	SaveCategory(ctx context.Context, category domain.Category) (int64, error)

	// UpdateCategory writes name, color and type if the stored version still
	// matches category.Version. A stale version yields a conflict.
	UpdateCategory(ctx context.Context, category domain.Category) error

	DeleteCategory(ctx context.Context, categoryID int64) error
}

// CategoryRepositoryFacade combines all category repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
