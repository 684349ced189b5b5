package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/association_manager_app/internal/core/domain"
)

// ListLogsParams filters the financial log. Dates accept YYYY-MM-DD or RFC3339;
// EndDate is inclusive of the whole day when given as a bare date.
type ListLogsParams struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	UserID    *int64 `form:"userId" binding:"omitempty,gt=0"`
	Limit     int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// FinancialLogResponse is the API view of an audit record.
type FinancialLogResponse struct {
	ID          int64              `json:"id"`
	UserID      *int64             `json:"userId,omitempty"`
	UserName    string             `json:"userName"`
	Action      domain.AuditAction `json:"action"`
	EntityType  string             `json:"entityType"`
	EntityID    string             `json:"entityId"`
	OldValue    json.RawMessage    `json:"oldValue,omitempty" swaggertype:"object"`
	NewValue    json.RawMessage    `json:"newValue,omitempty" swaggertype:"object"`
	Description string             `json:"description"`
	Timestamp   time.Time          `json:"timestamp"`
	TenantID    *int64             `json:"tenantId,omitempty"`
}

// ListLogsResponse is a page of audit records.
type ListLogsResponse struct {
	Logs      []FinancialLogResponse `json:"logs"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToFinancialLogResponse converts an audit record.
func ToFinancialLogResponse(l *domain.FinancialLog) FinancialLogResponse {
	return FinancialLogResponse{
		ID:          l.LogID,
		UserID:      l.UserID,
		UserName:    l.UserName,
		Action:      l.Action,
		EntityType:  l.EntityType,
		EntityID:    l.EntityID,
		OldValue:    l.OldValue,
		NewValue:    l.NewValue,
		Description: l.Description,
		Timestamp:   l.Timestamp,
		TenantID:    l.TenantID,
	}
}

// ToFinancialLogListResponse converts a slice of audit records.
func ToFinancialLogListResponse(logs []domain.FinancialLog) []FinancialLogResponse {
	out := make([]FinancialLogResponse, len(logs))
	for i := range logs {
		out[i] = ToFinancialLogResponse(&logs[i])
	}
	return out
}
