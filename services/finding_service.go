// services/finding_service.go
package services

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dhazzero/ISO-Integrated-System-sub000/domain"
	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
)

// FindingStore is the persistence surface for findings.
type FindingStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Finding, error)
	Replace(ctx context.Context, finding *models.Finding) error
	// CountOpenByAudit counts sibling findings of an audit that are still
	// Open or In Progress.
	CountOpenByAudit(ctx context.Context, auditID primitive.ObjectID) (int64, error)
}

// AuditStore is the slice of audit persistence the link service needs.
type AuditStore interface {
	// Complete promotes an audit to Completed with the given timestamp.
	// The write is conditional on the audit not already being Completed,
	// so a retry converges.
	Complete(ctx context.Context, id primitive.ObjectID, completedAt time.Time) error
}

// FindingInput is a partial update payload; empty fields leave the stored
// value untouched.
type FindingInput struct {
	AuditID           string `json:"auditId"`
	FindingType       string `json:"findingType"`
	Severity          string `json:"severity"`
	Description       string `json:"description"`
	Clause            string `json:"clause"`
	Status            string `json:"status"`
	DueDate           string `json:"dueDate"`
	ResponsiblePerson string `json:"responsiblePerson"`
	Department        string `json:"department"`
	UpdatedBy         string `json:"updatedBy"`
}

// FindingService persists finding updates and applies the cross-entity
// rule: when the last open or in-progress finding of an audit is closed,
// the audit is promoted to Completed.
type FindingService struct {
	findings FindingStore
	audits   AuditStore
	now      func() time.Time
}

func NewFindingService(findings FindingStore, audits AuditStore) *FindingService {
	return &FindingService{
		findings: findings,
		audits:   audits,
		now:      time.Now,
	}
}

// Update applies the input to the stored finding, persists it, and then
// re-evaluates the parent audit when the finding just transitioned to
// Closed. The promotion is best-effort: a missing parent audit is logged
// and skipped, never surfaced as a request failure.
func (s *FindingService) Update(ctx context.Context, id primitive.ObjectID, input FindingInput) (*models.Finding, error) {
	finding, err := s.findings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyFindingInput(finding, input); err != nil {
		return nil, err
	}
	finding.UpdatedAt = s.now().UTC()

	if err := s.findings.Replace(ctx, finding); err != nil {
		return nil, err
	}

	if finding.Status == models.FindingStatusClosed && !finding.AuditID.IsZero() {
		s.maybeCompleteAudit(ctx, finding.AuditID)
	}

	return finding, nil
}

// maybeCompleteAudit promotes the parent audit when no sibling finding
// remains open. It only runs when a finding closes; adding a new open
// finding to an already-Completed audit does not revert its status.
func (s *FindingService) maybeCompleteAudit(ctx context.Context, auditID primitive.ObjectID) {
	open, err := s.findings.CountOpenByAudit(ctx, auditID)
	if err != nil {
		log.Printf("open finding count for audit %s failed (promotion skipped): %v", auditID.Hex(), err)
		return
	}
	if open > 0 {
		return
	}

	if err := s.audits.Complete(ctx, auditID, s.now().UTC()); err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			log.Printf("audit %s not found, promotion skipped", auditID.Hex())
			return
		}
		log.Printf("audit %s promotion failed: %v", auditID.Hex(), err)
	}
}

func applyFindingInput(finding *models.Finding, input FindingInput) error {
	if input.AuditID != "" {
		auditID, err := primitive.ObjectIDFromHex(input.AuditID)
		if err != nil {
			return domain.NewValidationError("auditId", "format id tidak valid")
		}
		finding.AuditID = auditID
	}
	if input.FindingType != "" {
		finding.FindingType = input.FindingType
	}
	if input.Severity != "" {
		finding.Severity = input.Severity
	}
	if input.Description != "" {
		finding.Description = input.Description
	}
	if input.Clause != "" {
		finding.Clause = input.Clause
	}
	if input.Status != "" {
		finding.Status = input.Status
	}
	if input.ResponsiblePerson != "" {
		finding.ResponsiblePerson = input.ResponsiblePerson
	}
	if input.Department != "" {
		finding.Department = input.Department
	}
	if input.DueDate != "" {
		t, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			return domain.NewValidationError("dueDate", "format tanggal tidak valid, gunakan YYYY-MM-DD")
		}
		finding.DueDate = &t
	}
	return nil
}
