// Package targetgroup provides the target group entity and its business
// logic: creating groups from serialized filter expressions, listing,
// deletion, and membership preview.
package targetgroup

import (
	"context"
	"time"

	"audiens/internal/core/id"
	"audiens/internal/domain/filter"
)

// TargetGroup is a persisted audience rule: a name plus the wire payload the
// builder submitted.
type TargetGroup struct {
	ID        id.ID              `json:"id"`
	Name      string             `json:"name"`
	Payload   filter.WirePayload `json:"payload"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Repository defines target group persistence.
type Repository interface {
	Insert(ctx context.Context, tg *TargetGroup) error
	List(ctx context.Context) ([]TargetGroup, error)
	GetByID(ctx context.Context, groupID id.ID) (*TargetGroup, error)
	// FindByName returns nil without error when no group has the name.
	FindByName(ctx context.Context, name string) (*TargetGroup, error)
	Delete(ctx context.Context, groupID id.ID) error
}

// AuditLog records target group changes. Best-effort: a failed audit write
// never fails the operation it describes.
type AuditLog interface {
	Record(ctx context.Context, action string, groupID id.ID, payload any) error
}
