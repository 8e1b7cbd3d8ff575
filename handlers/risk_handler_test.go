package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dhazzero/ISO-Integrated-System-sub000/domain"
	"github.com/dhazzero/ISO-Integrated-System-sub000/models"
	"github.com/dhazzero/ISO-Integrated-System-sub000/services"
)

type memoryRiskStore struct {
	risks map[primitive.ObjectID]models.Risk
}

func (s *memoryRiskStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Risk, error) {
	risk, ok := s.risks[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "risk", ID: id.Hex()}
	}
	out := risk
	out.History = append([]models.HistoryEntry(nil), risk.History...)
	return &out, nil
}

func (s *memoryRiskStore) Insert(_ context.Context, risk *models.Risk) error {
	s.risks[risk.ID] = *risk
	return nil
}

func (s *memoryRiskStore) Replace(_ context.Context, risk *models.Risk, expectedRevision int64) error {
	stored, ok := s.risks[risk.ID]
	if !ok {
		return &domain.NotFoundError{Resource: "risk", ID: risk.ID.Hex()}
	}
	if stored.Revision != expectedRevision {
		return &domain.ConflictError{Resource: "risk", ID: risk.ID.Hex()}
	}
	s.risks[risk.ID] = *risk
	return nil
}

func (s *memoryRiskStore) List(_ context.Context, filter services.RiskFilter) ([]models.Risk, error) {
	out := []models.Risk{}
	for _, risk := range s.risks {
		if !filter.IncludeArchived && risk.Deleted {
			continue
		}
		if filter.Status != "" && risk.Status != filter.Status {
			continue
		}
		out = append(out, risk)
	}
	return out, nil
}

type noopActivityLog struct{}

func (noopActivityLog) Record(context.Context, models.ActivityEntry) error { return nil }

func newRiskTestRouter() *mux.Router {
	store := &memoryRiskStore{risks: make(map[primitive.ObjectID]models.Risk)}
	riskService = services.NewRiskService(store, noopActivityLog{})

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/risks/matrix", GetRiskMatrix).Methods("GET")
	api.HandleFunc("/risks", ListRisks).Methods("GET")
	api.HandleFunc("/risks", CreateRisk).Methods("POST")
	api.HandleFunc("/risks/{id}", GetRisk).Methods("GET")
	api.HandleFunc("/risks/{id}", UpdateRisk).Methods("PUT")
	api.HandleFunc("/risks/{id}", DeleteRisk).Methods("DELETE")
	return r
}

func riskPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":                    "Kebocoran data pelanggan",
		"riskOwner":               "Budi",
		"status":                  "Open",
		"inherentLikelihoodScore": 4,
		"inherentImpactScore":     4,
		"residualLikelihoodScore": 2,
		"residualImpactScore":     3,
		"updatedBy":               "budi@example.com",
	}
}

func doJSON(t *testing.T, router *mux.Router, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateRiskEndpoint(t *testing.T) {
	router := newRiskTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/risks", riskPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	var risk models.Risk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &risk))

	assert.Equal(t, "Ekstrim", risk.InherentRisk.Level)
	assert.Equal(t, 16, risk.InherentRisk.Score)
	assert.Equal(t, "Sering", risk.InherentRisk.Likelihood)
	assert.Equal(t, "Tinggi", risk.InherentRisk.Impact)
	assert.Equal(t, risk.ResidualRisk.Level, risk.Level)
	require.Len(t, risk.History, 1)
	assert.Equal(t, "Risiko Dibuat", risk.History[0].Action)
}

func TestCreateRiskMissingRequiredField(t *testing.T) {
	router := newRiskTestRouter()

	payload := riskPayload()
	delete(payload, "name")

	rec := doJSON(t, router, http.MethodPost, "/api/risks", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope["message"])
	assert.Contains(t, envelope["error"], "name")
}

func TestUpdateRiskNoopKeepsHistoryLength(t *testing.T) {
	router := newRiskTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/risks", riskPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Risk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPut, "/api/risks/"+created.ID.Hex(), riskPayload())
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Risk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Len(t, updated.History, 1)
}

func TestUpdateRiskStatusAppendsHistoryEntry(t *testing.T) {
	router := newRiskTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/risks", riskPayload())
	var created models.Risk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	payload := riskPayload()
	payload["status"] = "Closed"

	rec = doJSON(t, router, http.MethodPut, "/api/risks/"+created.ID.Hex(), payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Risk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Len(t, updated.History, 2)
	require.Len(t, updated.History[1].Details, 1)
	assert.Equal(t, `'status' diubah dari "Open" menjadi "Closed".`, updated.History[1].Details[0])
}

func TestUpdateRiskIDHandling(t *testing.T) {
	router := newRiskTestRouter()

	rec := doJSON(t, router, http.MethodPut, "/api/risks/not-a-hex-id", riskPayload())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/risks/"+primitive.NewObjectID().Hex(), riskPayload())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteRiskArchivesAndHidesFromListing(t *testing.T) {
	router := newRiskTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/risks", riskPayload())
	var created models.Risk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodDelete, "/api/risks/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Direct lookup still works: archival is non-destructive.
	rec = doJSON(t, router, http.MethodGet, "/api/risks/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var archived models.Risk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &archived))
	assert.True(t, archived.Deleted)
	assert.Equal(t, "Archived", archived.Status)

	// Default listing hides it.
	rec = doJSON(t, router, http.MethodGet, "/api/risks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []models.Risk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	rec = doJSON(t, router, http.MethodGet, "/api/risks?includeArchived=true", nil)
	var all []models.Risk
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 1)
}

func TestRiskMatrixEndpoint(t *testing.T) {
	router := newRiskTestRouter()

	for i := 0; i < 3; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/risks", riskPayload())
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/risks/matrix", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary struct {
		Matrix [5][5]int `json:"matrix"`
		Total  int       `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.Total)
	// Residual scores 2/3 land in cell [1][2].
	assert.Equal(t, 3, summary.Matrix[1][2], fmt.Sprintf("matrix: %v", summary.Matrix))
}
