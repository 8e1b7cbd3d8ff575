// handlers/risk_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/dhazzero/ISO-Integrated-System-sub000/services"
	"github.com/dhazzero/ISO-Integrated-System-sub000/utils"
)

func ListRisks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := services.RiskFilter{
		Status:          r.URL.Query().Get("status"),
		IncludeArchived: r.URL.Query().Get("includeArchived") == "true",
	}

	risks, err := riskService.List(ctx, filter)
	if err != nil {
		log.Printf("list risks error: %v", err)
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, risks)
}

func CreateRisk(w http.ResponseWriter, r *http.Request) {
	var input services.RiskInput
	if err := utils.ParseJSON(r, &input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	risk, err := riskService.Create(ctx, input)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, risk)
}

func GetRisk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	risk, err := riskService.Get(ctx, id)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, risk)
}

func UpdateRisk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	var input services.RiskInput
	if err := utils.ParseJSON(r, &input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	risk, err := riskService.Update(ctx, id, input)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, risk)
}

// DeleteRisk archives: the record is soft-deleted and excluded from the
// default listing, never physically removed.
func DeleteRisk(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	risk, err := riskService.Archive(ctx, id, r.URL.Query().Get("updatedBy"))
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Risiko berhasil diarsipkan",
		"id":      risk.ID.Hex(),
	})
}

// GetRiskMatrix returns residual-level cell counts for the 5x5 heatmap.
func GetRiskMatrix(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	risks, err := riskService.List(ctx, services.RiskFilter{})
	if err != nil {
		log.Printf("risk matrix query error: %v", err)
		respondError(w, err)
		return
	}

	var cells [5][5]int
	for _, risk := range risks {
		l := risk.ResidualRisk.LikelihoodScore
		i := risk.ResidualRisk.ImpactScore
		if l < 1 || l > 5 || i < 1 || i > 5 {
			continue
		}
		cells[l-1][i-1]++
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"matrix": cells,
		"total":  len(risks),
	})
}
