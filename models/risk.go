package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RiskSnapshot is one assessment of a risk. Level, Score, Likelihood and
// Impact are derived from the two scores and never set independently.
type RiskSnapshot struct {
	LikelihoodScore int    `bson:"likelihoodScore" json:"likelihoodScore"`
	ImpactScore     int    `bson:"impactScore" json:"impactScore"`
	Level           string `bson:"level" json:"level"`
	Score           int    `bson:"score" json:"score"`
	Likelihood      string `bson:"likelihood" json:"likelihood"`
	Impact          string `bson:"impact" json:"impact"`
}

// HistoryEntry is one line of a risk's append-only audit trail.
type HistoryEntry struct {
	Date    time.Time `bson:"date" json:"date"`
	Action  string    `bson:"action" json:"action"`
	User    string    `bson:"user" json:"user"`
	Details []string  `bson:"details,omitempty" json:"details,omitempty"`
}

type Risk struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Asset             string             `bson:"asset,omitempty" json:"asset,omitempty"`
	Threat            string             `bson:"threat,omitempty" json:"threat,omitempty"`
	Vulnerability     string             `bson:"vulnerability,omitempty" json:"vulnerability,omitempty"`
	ImpactDescription string             `bson:"impactDescription,omitempty" json:"impactDescription,omitempty"`
	Category          string             `bson:"category,omitempty" json:"category,omitempty"`
	RiskOwner         string             `bson:"riskOwner" json:"riskOwner"`
	PIC               string             `bson:"pic,omitempty" json:"pic,omitempty"`
	Monitoring        string             `bson:"monitoring,omitempty" json:"monitoring,omitempty"`
	TargetDate        *time.Time         `bson:"targetDate,omitempty" json:"targetDate,omitempty"`
	Controls          []string           `bson:"controls,omitempty" json:"controls,omitempty"`
	MitigationActions []string           `bson:"mitigationActions,omitempty" json:"mitigationActions,omitempty"`
	Opportunities     []string           `bson:"opportunities,omitempty" json:"opportunities,omitempty"`
	RelatedStandards  []string           `bson:"relatedStandards,omitempty" json:"relatedStandards,omitempty"`

	InherentRisk RiskSnapshot `bson:"inherentRisk" json:"inherentRisk"`
	ResidualRisk RiskSnapshot `bson:"residualRisk" json:"residualRisk"`

	// Convenience mirrors of the residual snapshot, kept in sync by the
	// write path.
	Level      string `bson:"level" json:"level"`
	Likelihood string `bson:"likelihood" json:"likelihood"`
	Impact     string `bson:"impact" json:"impact"`

	Status     string         `bson:"status" json:"status"`
	Deleted    bool           `bson:"deleted" json:"deleted"`
	ArchivedAt *time.Time     `bson:"archivedAt,omitempty" json:"archivedAt,omitempty"`
	History    []HistoryEntry `bson:"history" json:"history"`

	// Revision guards against lost updates: every write checks the stored
	// value and increments it.
	Revision int64 `bson:"revision" json:"revision"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Risk status values.
const (
	RiskStatusOpen       = "Open"
	RiskStatusInProgress = "In Progress"
	RiskStatusMitigated  = "Mitigated"
	RiskStatusClosed     = "Closed"
	RiskStatusArchived   = "Archived"
)
