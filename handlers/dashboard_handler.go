// handlers/dashboard_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
	"github.com/dhazzero/ISO-Integrated-System-sub000/services"
	"github.com/dhazzero/ISO-Integrated-System-sub000/utils"
)

// GetDashboardSummary returns the headline counts: active risks per level
// and per status, audits per status, findings per status.
func GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	risks, err := riskService.List(ctx, services.RiskFilter{})
	if err != nil {
		log.Printf("dashboard risk query error: %v", err)
		respondError(w, err)
		return
	}

	risksByLevel := map[string]int{}
	risksByStatus := map[string]int{}
	for _, risk := range risks {
		risksByLevel[risk.Level]++
		risksByStatus[risk.Status]++
	}

	auditsByStatus := map[string]int64{}
	for _, status := range []string{models.AuditStatusScheduled, models.AuditStatusCompleted} {
		count, err := auditCollection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			log.Printf("audit count error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
			return
		}
		auditsByStatus[status] = count
	}

	findingsByStatus := map[string]int64{}
	for _, status := range []string{models.FindingStatusOpen, models.FindingStatusInProgress, models.FindingStatusClosed} {
		count, err := findingCollection.CountDocuments(ctx, bson.M{"status": status})
		if err != nil {
			log.Printf("finding count error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
			return
		}
		findingsByStatus[status] = count
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"totalRisks":       len(risks),
		"risksByLevel":     risksByLevel,
		"risksByStatus":    risksByStatus,
		"auditsByStatus":   auditsByStatus,
		"findingsByStatus": findingsByStatus,
	})
}
