// handlers/finding_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
	"github.com/dhazzero/ISO-Integrated-System-sub000/services"
	"github.com/dhazzero/ISO-Integrated-System-sub000/utils"
)

func ListFindings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if auditIDStr := r.URL.Query().Get("auditId"); auditIDStr != "" {
		auditID, err := primitive.ObjectIDFromHex(auditIDStr)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Format auditId tidak valid", err)
			return
		}
		filter["auditId"] = auditID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := findingCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("findings Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
		return
	}
	defer cursor.Close(ctx)

	var findings []models.Finding
	if err = cursor.All(ctx, &findings); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
		return
	}
	if findings == nil {
		findings = []models.Finding{}
	}

	utils.RespondWithJSON(w, http.StatusOK, findings)
}

type CreateFindingRequest struct {
	AuditID           string `json:"auditId"`
	FindingType       string `json:"findingType"`
	Severity          string `json:"severity"`
	Description       string `json:"description"`
	Clause            string `json:"clause"`
	Status            string `json:"status"`
	DueDate           string `json:"dueDate"`
	ResponsiblePerson string `json:"responsiblePerson"`
	Department        string `json:"department"`
}

func CreateFinding(w http.ResponseWriter, r *http.Request) {
	var req CreateFindingRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}

	if req.Description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Deskripsi temuan wajib diisi", nil)
		return
	}

	var auditID primitive.ObjectID
	if req.AuditID != "" {
		var err error
		auditID, err = primitive.ObjectIDFromHex(req.AuditID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Format auditId tidak valid", err)
			return
		}
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		t, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Format dueDate tidak valid, gunakan YYYY-MM-DD", err)
			return
		}
		dueDate = &t
	}

	now := time.Now().UTC()
	finding := models.Finding{
		ID:                primitive.NewObjectID(),
		AuditID:           auditID,
		FindingType:       req.FindingType,
		Severity:          req.Severity,
		Description:       req.Description,
		Clause:            req.Clause,
		Status:            req.Status,
		DueDate:           dueDate,
		ResponsiblePerson: req.ResponsiblePerson,
		Department:        req.Department,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if finding.Status == "" {
		finding.Status = models.FindingStatusOpen
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := findingCollection.InsertOne(ctx, finding); err != nil {
		log.Printf("insert finding error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Gagal menyimpan temuan", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, finding)
}

func GetFinding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var finding models.Finding
	err := findingCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&finding)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Temuan tidak ditemukan", err)
			return
		}
		log.Printf("find finding error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, finding)
}

// UpdateFinding goes through the finding service: closing the last open
// finding of an audit promotes that audit to Completed as a side effect.
func UpdateFinding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	var input services.FindingInput
	if err := utils.ParseJSON(r, &input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	finding, err := findingService.Update(ctx, id, input)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, finding)
}

func DeleteFinding(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := findingCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Printf("delete finding error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Gagal menghapus temuan", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Temuan tidak ditemukan", nil)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Temuan berhasil dihapus",
		"id":      id.Hex(),
	})
}

func pathObjectID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	idStr := mux.Vars(r)[name]
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Format id tidak valid", err)
		return primitive.NilObjectID, false
	}
	return id, true
}
