// domain/diff.go
package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
)

// Changes compares a stored risk with a candidate next state across the
// tracked fields and returns one human-readable line per difference. An
// empty result means the update is a no-op and no history entry should be
// written.
func Changes(before, after *models.Risk) []string {
	var details []string

	scalars := []struct {
		field    string
		old, new string
	}{
		{"name", before.Name, after.Name},
		{"status", before.Status, after.Status},
		{"riskOwner", before.RiskOwner, after.RiskOwner},
		{"pic", before.PIC, after.PIC},
		{"category", before.Category, after.Category},
		{"monitoring", before.Monitoring, after.Monitoring},
		{"threat", before.Threat, after.Threat},
		{"vulnerability", before.Vulnerability, after.Vulnerability},
		{"impactDescription", before.ImpactDescription, after.ImpactDescription},
	}
	for _, s := range scalars {
		if s.old != s.new {
			details = append(details, changedLine(s.field, s.old, s.new))
		}
	}

	// Dates are compared on the calendar day, not the raw value, so a
	// timezone or format shift alone never registers as a change.
	if oldDay, newDay := dayString(before.TargetDate), dayString(after.TargetDate); oldDay != newDay {
		details = append(details, changedLine("targetDate", oldDay, newDay))
	}

	// Variable-length lists get a single generic line instead of an
	// element-by-element enumeration.
	composites := []struct {
		label    string
		old, new []string
	}{
		{"Aktivitas Kontrol", before.Controls, after.Controls},
		{"Rencana Mitigasi", before.MitigationActions, after.MitigationActions},
		{"Peluang", before.Opportunities, after.Opportunities},
		{"Standar Terkait", before.RelatedStandards, after.RelatedStandards},
	}
	for _, c := range composites {
		if !slices.Equal(c.old, c.new) {
			details = append(details, fmt.Sprintf("%s diperbarui.", c.label))
		}
	}

	if before.InherentRisk.Level != after.InherentRisk.Level {
		details = append(details, fmt.Sprintf("Level risiko inheren berubah menjadi %q.", after.InherentRisk.Level))
	}
	if before.ResidualRisk.Level != after.ResidualRisk.Level {
		details = append(details, fmt.Sprintf("Level risiko residual berubah menjadi %q.", after.ResidualRisk.Level))
	}

	return details
}

func changedLine(field, old, new string) string {
	return fmt.Sprintf("'%s' diubah dari %q menjadi %q.", field, orKosong(old), orKosong(new))
}

func orKosong(v string) string {
	if v == "" {
		return "kosong"
	}
	return v
}

func dayString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
