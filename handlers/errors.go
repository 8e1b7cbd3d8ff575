// handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/dhazzero/ISO-Integrated-System-sub000/domain"
	"github.com/dhazzero/ISO-Integrated-System-sub000/utils"
)

// respondError maps the domain error taxonomy onto HTTP status codes with
// an Indonesian message and the underlying error string.
func respondError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	var notFound *domain.NotFoundError
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &validation):
		utils.RespondWithError(w, http.StatusBadRequest, "Data masukan tidak valid", err)
	case errors.As(err, &notFound):
		utils.RespondWithError(w, http.StatusNotFound, "Data tidak ditemukan", err)
	case errors.As(err, &conflict):
		utils.RespondWithError(w, http.StatusConflict, "Data diubah oleh proses lain, silakan coba lagi", err)
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server", err)
	}
}
