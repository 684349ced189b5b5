package dto

import "github.com/SscSPs/association_manager_app/internal/core/domain"

// CreateCategoryRequest defines the body for creating a category.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Color string `json:"color" binding:"omitempty,max=20"`
	Type  string `json:"type" binding:"required,entrytype"`
}

// UpdateCategoryRequest defines the fields allowed when updating a category.
// Version, when supplied, must match the stored version.
type UpdateCategoryRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	Color   *string `json:"color" binding:"omitempty,max=20"`
	Type    *string `json:"type" binding:"omitempty,entrytype"`
	Version *int    `json:"version"`
}

// ListCategoriesParams filters the category listing.
type ListCategoriesParams struct {
	Type string `form:"type" binding:"omitempty,entrytype"`
}

// CategoryResponse is the API view of a category.
type CategoryResponse struct {
	ID      int64            `json:"id"`
	Name    string           `json:"name"`
	Color   string           `json:"color"`
	Type    domain.EntryType `json:"type"`
	Version int              `json:"version"`
}

// ToCategoryResponse converts a domain category.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:      c.CategoryID,
		Name:    c.Name,
		Color:   c.Color,
		Type:    c.Type,
		Version: c.Version,
	}
}

// ToCategoryListResponse converts a slice of categories.
func ToCategoryListResponse(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out
}
