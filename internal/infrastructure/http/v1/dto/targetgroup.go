// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"audiens/internal/domain/filter"
	"audiens/internal/domain/targetgroup"
)

// CreateTargetGroupResponse is the contract response shape: isSuccess plus
// either the created id or a business error message shown to the user
// verbatim.
type CreateTargetGroupResponse struct {
	IsSuccess    bool   `json:"isSuccess"`
	ID           string `json:"id,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// TargetGroupSummary is one list entry.
type TargetGroupSummary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	GroupCount     int       `json:"groupCount"`
	ConditionCount int       `json:"conditionCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FromTargetGroup creates a summary from the domain entity.
func FromTargetGroup(tg targetgroup.TargetGroup) TargetGroupSummary {
	conditions := 0
	for _, g := range tg.Payload.FilterGroups {
		conditions += len(g.Conditions)
	}
	return TargetGroupSummary{
		ID:             tg.ID.String(),
		Name:           tg.Name,
		GroupCount:     len(tg.Payload.FilterGroups),
		ConditionCount: conditions,
		CreatedAt:      tg.CreatedAt,
	}
}

// TargetGroupResponse is the full entity including the stored payload.
type TargetGroupResponse struct {
	TargetGroupSummary
	Payload filter.WirePayload `json:"payload"`
}

// FromTargetGroupFull creates a full response from the domain entity.
func FromTargetGroupFull(tg targetgroup.TargetGroup) TargetGroupResponse {
	return TargetGroupResponse{
		TargetGroupSummary: FromTargetGroup(tg),
		Payload:            tg.Payload,
	}
}

// AttributeResponse describes one catalog attribute for the builder UI:
// its kind, legal operators, and whether equal/notequal get a picker.
type AttributeResponse struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	Operators []string `json:"operators"`
	HasValues bool     `json:"hasValues"`
}

// ReferenceValueResponse is one picker entry.
type ReferenceValueResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
