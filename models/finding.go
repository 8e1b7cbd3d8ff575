package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Finding is a single audit observation. Findings reference their audit by
// id; the audit document does not enumerate them inline.
type Finding struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuditID           primitive.ObjectID `bson:"auditId,omitempty" json:"auditId,omitempty"`
	FindingType       string             `bson:"findingType,omitempty" json:"findingType,omitempty"`
	Severity          string             `bson:"severity,omitempty" json:"severity,omitempty"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Clause            string             `bson:"clause,omitempty" json:"clause,omitempty"`
	Status            string             `bson:"status" json:"status"`
	DueDate           *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	ResponsiblePerson string             `bson:"responsiblePerson,omitempty" json:"responsiblePerson,omitempty"`
	Department        string             `bson:"department,omitempty" json:"department,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Finding status values.
const (
	FindingStatusOpen       = "Open"
	FindingStatusInProgress = "In Progress"
	FindingStatusClosed     = "Closed"
)
