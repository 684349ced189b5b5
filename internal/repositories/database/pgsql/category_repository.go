package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/SscSPs/association_manager_app/internal/apperrors"
	"github.com/SscSPs/association_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/association_manager_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for the category registry.
func newPgxCategoryRepository(pool PgxPool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categorySelectQuery = `SELECT c.id, c.name, c.color, c.type, c.version FROM categories c`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	var entryType string
	if err := row.Scan(&c.CategoryID, &c.Name, &c.Color, &entryType, &c.Version); err != nil {
		return nil, err
	}
	c.Type = domain.EntryType(entryType)
	return &c, nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	c, err := scanCategory(r.Pool.QueryRow(ctx, categorySelectQuery+` WHERE c.id = $1`, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("category " + strconv.FormatInt(categoryID, 10) + " not found")
		}
		return nil, queryError("category", err)
	}
	return c, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, entryType *domain.EntryType) ([]domain.Category, error) {
	query := categorySelectQuery
	var args []any
	if entryType != nil {
		query += ` WHERE c.type = $1`
		args = append(args, string(*entryType))
	}
	query += ` ORDER BY c.type, c.name`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, queryError("categories", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, queryError("categories", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("categories", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) CountEntriesByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, queryError("category usage", err)
	}
	return count, nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (int64, error) {
	var id int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO categories (name, color, type, version)
		VALUES ($1, $2, $3, 1)
		RETURNING id`,
		category.Name, category.Color, string(category.Type),
	).Scan(&id)
	if err != nil {
		return 0, translateWriteError(err, "category")
	}
	return id, nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	result, err := r.Pool.Exec(ctx, `
		UPDATE categories
		SET name = $1, color = $2, type = $3, version = version + 1
		WHERE id = $4 AND version = $5`,
		category.Name, category.Color, string(category.Type), category.CategoryID, category.Version,
	)
	if err != nil {
		return translateWriteError(err, "category")
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewConflictError("category was modified concurrently, reload and retry")
	}
	return nil
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return translateWriteError(err, "category")
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("category " + strconv.FormatInt(categoryID, 10) + " not found")
	}
	return nil
}
