package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit is a scheduled or completed audit engagement. Its status becomes
// Completed only when none of its findings remain open or in progress.
type Audit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Standard      string             `bson:"standard,omitempty" json:"standard,omitempty"`
	Department    string             `bson:"department,omitempty" json:"department,omitempty"`
	Date          *time.Time         `bson:"date,omitempty" json:"date,omitempty"`
	Auditor       string             `bson:"auditor,omitempty" json:"auditor,omitempty"`
	Status        string             `bson:"status" json:"status"`
	CompletedDate *time.Time         `bson:"completedDate,omitempty" json:"completedDate,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Audit status values.
const (
	AuditStatusScheduled = "Scheduled"
	AuditStatusCompleted = "Completed"
)
