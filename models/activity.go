// models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityEntry is one line of the process-wide activity log. Writes to it
// are best-effort and never fail the primary request.
type ActivityEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action      string             `bson:"action" json:"action"`
	Module      string             `bson:"module" json:"module"`
	Description string             `bson:"description" json:"description"`
	DocumentID  string             `bson:"documentId,omitempty" json:"documentId,omitempty"`
	Changes     []string           `bson:"changes,omitempty" json:"changes,omitempty"`
	User        string             `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
