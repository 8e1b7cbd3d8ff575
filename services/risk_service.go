// services/risk_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dhazzero/ISO-Integrated-System-sub000/domain"
	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
)

// RiskStore is the persistence surface the lifecycle service needs.
// Replace is revision-guarded: it only succeeds when the stored document
// still carries expectedRevision.
type RiskStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Risk, error)
	Insert(ctx context.Context, risk *models.Risk) error
	Replace(ctx context.Context, risk *models.Risk, expectedRevision int64) error
	List(ctx context.Context, filter RiskFilter) ([]models.Risk, error)
}

// RiskFilter narrows List. Archived records are excluded unless
// IncludeArchived is set.
type RiskFilter struct {
	Status          string
	IncludeArchived bool
}

// ActivityLogger mirrors lifecycle events to the process-wide activity
// log. Implementations are best-effort; the service swallows their errors.
type ActivityLogger interface {
	Record(ctx context.Context, entry models.ActivityEntry) error
}

// RiskInput is the full request payload for create and update. Create and
// update take the same superset; required-field tags are enforced on both.
type RiskInput struct {
	Name              string   `json:"name" validate:"required"`
	Asset             string   `json:"asset"`
	Threat            string   `json:"threat"`
	Vulnerability     string   `json:"vulnerability"`
	ImpactDescription string   `json:"impactDescription"`
	Category          string   `json:"category"`
	RiskOwner         string   `json:"riskOwner" validate:"required"`
	PIC               string   `json:"pic"`
	Monitoring        string   `json:"monitoring"`
	Status            string   `json:"status"`
	TargetDate        string   `json:"targetDate"`
	Controls          []string `json:"controls"`
	MitigationActions []string `json:"mitigationActions"`
	Opportunities     []string `json:"opportunities"`
	RelatedStandards  []string `json:"relatedStandards"`

	InherentLikelihoodScore *int `json:"inherentLikelihoodScore" validate:"required"`
	InherentImpactScore     *int `json:"inherentImpactScore" validate:"required"`
	ResidualLikelihoodScore *int `json:"residualLikelihoodScore"`
	ResidualImpactScore     *int `json:"residualImpactScore"`

	UpdatedBy string `json:"updatedBy"`
}

// History actions written by the lifecycle service.
const (
	historyActionCreated  = "Risiko Dibuat"
	historyActionUpdated  = "Risiko Diperbarui"
	historyActionArchived = "Risiko Diarsipkan"
)

const activityModuleRisk = "Risiko"

var validate = validator.New()

// RiskService orchestrates the risk lifecycle: snapshot derivation,
// change detection, history accumulation and soft deletion.
type RiskService struct {
	store    RiskStore
	activity ActivityLogger
	now      func() time.Time
}

func NewRiskService(store RiskStore, activity ActivityLogger) *RiskService {
	return &RiskService{
		store:    store,
		activity: activity,
		now:      time.Now,
	}
}

// Create validates the input, derives both snapshots, seeds the history
// trail and persists the new record.
func (s *RiskService) Create(ctx context.Context, input RiskInput) (*models.Risk, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	targetDate, err := parseTargetDate(input.TargetDate)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	risk := &models.Risk{
		ID:        primitive.NewObjectID(),
		Status:    input.Status,
		Deleted:   false,
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
		History: []models.HistoryEntry{{
			Date:   now,
			Action: historyActionCreated,
			User:   actingUser(input),
		}},
	}
	if risk.Status == "" {
		risk.Status = models.RiskStatusOpen
	}
	applyInput(risk, input, targetDate)

	if err := s.store.Insert(ctx, risk); err != nil {
		return nil, err
	}

	s.logActivity(ctx, models.ActivityEntry{
		Action:      "Dibuat",
		Module:      activityModuleRisk,
		Description: fmt.Sprintf("Risiko %q dibuat", risk.Name),
		DocumentID:  risk.ID.Hex(),
		User:        actingUser(input),
	})

	return risk, nil
}

// Update loads the stored record, assembles a full candidate next state,
// diffs the two and appends one history entry only when at least one
// tracked field changed. The write is revision-guarded.
func (s *RiskService) Update(ctx context.Context, id primitive.ObjectID, input RiskInput) (*models.Risk, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	targetDate, err := parseTargetDate(input.TargetDate)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Deleted {
		// Archived is terminal: no re-scoring, no status transitions.
		return nil, domain.NewValidationError("", "risiko yang diarsipkan tidak dapat diubah")
	}

	candidate := *existing
	candidate.History = append([]models.HistoryEntry(nil), existing.History...)
	if input.Status != "" {
		candidate.Status = input.Status
	}
	applyInput(&candidate, input, targetDate)

	changes := domain.Changes(existing, &candidate)
	if len(changes) > 0 {
		candidate.History = append(candidate.History, models.HistoryEntry{
			Date:    s.now().UTC(),
			Action:  historyActionUpdated,
			User:    actingUser(input),
			Details: changes,
		})
	}

	candidate.UpdatedAt = s.now().UTC()
	candidate.Revision = existing.Revision + 1

	if err := s.store.Replace(ctx, &candidate, existing.Revision); err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		s.logActivity(ctx, models.ActivityEntry{
			Action:      "Diperbarui",
			Module:      activityModuleRisk,
			Description: fmt.Sprintf("Risiko %q diperbarui", candidate.Name),
			DocumentID:  candidate.ID.Hex(),
			Changes:     changes,
			User:        actingUser(input),
		})
	}

	return &candidate, nil
}

// Archive soft-deletes: the record keeps its history and stays readable by
// id, it is only excluded from default listings. The row is never removed.
func (s *RiskService) Archive(ctx context.Context, id primitive.ObjectID, user string) (*models.Risk, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Deleted {
		// Archived is terminal.
		return existing, nil
	}

	now := s.now().UTC()
	archived := *existing
	archived.History = append(append([]models.HistoryEntry(nil), existing.History...), models.HistoryEntry{
		Date:   now,
		Action: historyActionArchived,
		User:   orSystem(user),
	})
	archived.Deleted = true
	archived.Status = models.RiskStatusArchived
	archived.ArchivedAt = &now
	archived.UpdatedAt = now
	archived.Revision = existing.Revision + 1

	if err := s.store.Replace(ctx, &archived, existing.Revision); err != nil {
		return nil, err
	}

	s.logActivity(ctx, models.ActivityEntry{
		Action:      "Diarsipkan",
		Module:      activityModuleRisk,
		Description: fmt.Sprintf("Risiko %q diarsipkan", archived.Name),
		DocumentID:  archived.ID.Hex(),
		User:        orSystem(user),
	})

	return &archived, nil
}

// Get returns a record by id, archived or not.
func (s *RiskService) Get(ctx context.Context, id primitive.ObjectID) (*models.Risk, error) {
	return s.store.FindByID(ctx, id)
}

// List returns records matching the filter.
func (s *RiskService) List(ctx context.Context, filter RiskFilter) ([]models.Risk, error) {
	return s.store.List(ctx, filter)
}

// logActivity is fire-and-forget: a failed mirror write is logged and
// never propagated to the caller.
func (s *RiskService) logActivity(ctx context.Context, entry models.ActivityEntry) {
	if s.activity == nil {
		return
	}
	entry.CreatedAt = s.now().UTC()
	if err := s.activity.Record(ctx, entry); err != nil {
		log.Printf("activity log write failed (ignored): %v", err)
	}
}

// applyInput copies the request fields and derived snapshot state onto the
// record. The residual mirrors are set here and nowhere else.
func applyInput(risk *models.Risk, input RiskInput, targetDate *time.Time) {
	risk.Name = input.Name
	risk.Asset = input.Asset
	risk.Threat = input.Threat
	risk.Vulnerability = input.Vulnerability
	risk.ImpactDescription = input.ImpactDescription
	risk.Category = input.Category
	risk.RiskOwner = input.RiskOwner
	risk.PIC = input.PIC
	risk.Monitoring = input.Monitoring
	risk.TargetDate = targetDate
	risk.Controls = input.Controls
	risk.MitigationActions = input.MitigationActions
	risk.Opportunities = input.Opportunities
	risk.RelatedStandards = input.RelatedStandards

	inherent, residual := domain.BuildSnapshots(
		scoreValue(input.InherentLikelihoodScore),
		scoreValue(input.InherentImpactScore),
		scoreValue(input.ResidualLikelihoodScore),
		scoreValue(input.ResidualImpactScore),
	)
	risk.InherentRisk = inherent
	risk.ResidualRisk = residual
	risk.Level = residual.Level
	risk.Likelihood = residual.Likelihood
	risk.Impact = residual.Impact
}

func validateInput(input RiskInput) error {
	if err := validate.Struct(input); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			field := jsonFieldName(errs[0].Field())
			return domain.NewValidationError(field, "wajib diisi")
		}
		return domain.NewValidationError("", err.Error())
	}
	return nil
}

// jsonFieldName maps the validated struct field back to its wire name.
func jsonFieldName(field string) string {
	switch field {
	case "Name":
		return "name"
	case "RiskOwner":
		return "riskOwner"
	case "InherentLikelihoodScore":
		return "inherentLikelihoodScore"
	case "InherentImpactScore":
		return "inherentImpactScore"
	default:
		return field
	}
}

func parseTargetDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, domain.NewValidationError("targetDate", "format tanggal tidak valid, gunakan YYYY-MM-DD")
	}
	return &t, nil
}

func scoreValue(v *int) int {
	if v == nil {
		return 0 // clamps to 1 in the matrix
	}
	return *v
}

func actingUser(input RiskInput) string {
	return orSystem(input.UpdatedBy)
}

func orSystem(user string) string {
	if user == "" {
		return "system"
	}
	return user
}
