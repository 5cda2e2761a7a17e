package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditAction names a privileged operation worth an immutable record
type AuditAction string

const (
	AuditVendorImpersonated AuditAction = "vendor.impersonated"
	AuditVendorDeleted      AuditAction = "vendor.deleted"
	AuditVendorsWiped       AuditAction = "vendors.wiped"
)

// AuditLog is an append-only record of a privileged admin action
type AuditLog struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	ActorID   primitive.ObjectID     `json:"actorId" bson:"actorId"`
	Action    AuditAction            `json:"action" bson:"action"`
	TargetID  *primitive.ObjectID    `json:"targetId,omitempty" bson:"targetId,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt time.Time              `json:"createdAt" bson:"createdAt"`
}
