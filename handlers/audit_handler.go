// handlers/audit_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
	"github.com/dhazzero/ISO-Integrated-System-sub000/utils"
)

func ListAudits(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := auditCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("audits Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
		return
	}
	defer cursor.Close(ctx)

	var audits []models.Audit
	if err = cursor.All(ctx, &audits); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
		return
	}
	if audits == nil {
		audits = []models.Audit{}
	}

	utils.RespondWithJSON(w, http.StatusOK, audits)
}

type CreateAuditRequest struct {
	Name       string `json:"name"`
	Standard   string `json:"standard"`
	Department string `json:"department"`
	Date       string `json:"date"`
	Auditor    string `json:"auditor"`
	Status     string `json:"status"`
}

func CreateAudit(w http.ResponseWriter, r *http.Request) {
	var req CreateAuditRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}

	if req.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Nama audit wajib diisi", nil)
		return
	}

	var date *time.Time
	if req.Date != "" {
		t, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Format tanggal tidak valid, gunakan YYYY-MM-DD", err)
			return
		}
		date = &t
	}

	now := time.Now().UTC()
	audit := models.Audit{
		ID:         primitive.NewObjectID(),
		Name:       req.Name,
		Standard:   req.Standard,
		Department: req.Department,
		Date:       date,
		Auditor:    req.Auditor,
		Status:     req.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if audit.Status == "" {
		audit.Status = models.AuditStatusScheduled
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := auditCollection.InsertOne(ctx, audit); err != nil {
		log.Printf("insert audit error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Gagal menyimpan audit", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, audit)
}

func GetAudit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var audit models.Audit
	err := auditCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&audit)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Audit tidak ditemukan", err)
			return
		}
		log.Printf("find audit error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, audit)
}

func UpdateAudit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	var req CreateAuditRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Standard != "" {
		update["standard"] = req.Standard
	}
	if req.Department != "" {
		update["department"] = req.Department
	}
	if req.Auditor != "" {
		update["auditor"] = req.Auditor
	}
	if req.Status != "" {
		update["status"] = req.Status
	}
	if req.Date != "" {
		t, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Format tanggal tidak valid, gunakan YYYY-MM-DD", err)
			return
		}
		update["date"] = t
	}
	update["updatedAt"] = time.Now().UTC()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := auditCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		log.Printf("update audit error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Gagal memperbarui audit", err)
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Audit tidak ditemukan", nil)
		return
	}

	var audit models.Audit
	if err := auditCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&audit); err != nil {
		log.Printf("find updated audit error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, audit)
}

func DeleteAudit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := auditCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Printf("delete audit error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Gagal menghapus audit", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Audit tidak ditemukan", nil)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Audit berhasil dihapus",
		"id":      id.Hex(),
	})
}

// ListAuditFindings lists the findings referencing an audit.
func ListAuditFindings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := findingCollection.Find(ctx, bson.M{"auditId": id}, opts)
	if err != nil {
		log.Printf("audit findings Find error: %v", err)
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
