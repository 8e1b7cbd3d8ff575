// handlers/reference_handler.go
//
// Reference-data CRUD: standards, departments and approvers. Pure
// pass-through, no domain logic.
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

func listReference(w http.ResponseWriter, r *http.Request, col *mongo.Collection, out interface{}) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("%s Find error: %v", col.Name(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
		return
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, out); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, out)
}

func deleteReference(w http.ResponseWriter, r *http.Request, col *mongo.Collection, label string) {
	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Printf("delete %s error: %v", col.Name(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Gagal menghapus data", err)
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, label+" tidak ditemukan", nil)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": label + " berhasil dihapus",
		"id":      id.Hex(),
	})
}

func insertReference(w http.ResponseWriter, r *http.Request, col *mongo.Collection, doc interface{}) bool {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := col.InsertOne(ctx, doc); err != nil {
		log.Printf("insert %s error: %v", col.Name(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Gagal menyimpan data", err)
		return false
	}
	return true
}

// ---- standards ----

func ListStandards(w http.ResponseWriter, r *http.Request) {
	standards := []models.Standard{}
	listReference(w, r, standardCollection, &standards)
}

func CreateStandard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}
	if req.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Nama standar wajib diisi", nil)
		return
	}

	standard := models.Standard{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if insertReference(w, r, standardCollection, standard) {
		utils.RespondWithJSON(w, http.StatusCreated, standard)
	}
}

func DeleteStandard(w http.ResponseWriter, r *http.Request) {
	deleteReference(w, r, standardCollection, "Standar")
}

// ---- departments ----

func ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments := []models.Department{}
	listReference(w, r, departmentCollection, &departments)
}

func CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Head string `json:"head"`
	}
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}
	if req.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Nama departemen wajib diisi", nil)
		return
	}

	department := models.Department{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Head:      req.Head,
		CreatedAt: time.Now().UTC(),
	}
	if insertReference(w, r, departmentCollection, department) {
		utils.RespondWithJSON(w, http.StatusCreated, department)
	}
}

func DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	deleteReference(w, r, departmentCollection, "Departemen")
}

// ---- approvers ----

func ListApprovers(w http.ResponseWriter, r *http.Request) {
	approvers := []models.Approver{}
	listReference(w, r, approverCollection, &approvers)
}

func CreateApprover(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Payload tidak valid", err)
		return
	}
	if req.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Nama approver wajib diisi", nil)
		return
	}

	approver := models.Approver{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		CreatedAt: time.Now().UTC(),
	}
	if insertReference(w, r, approverCollection, approver) {
		utils.RespondWithJSON(w, http.StatusCreated, approver)
	}
}

func DeleteApprover(w http.ResponseWriter, r *http.Request) {
	deleteReference(w, r, approverCollection, "Approver")
}
