package web

// errors.go maps internal errors onto user-visible messages. Every
// failure is logged server-side with its request ID and returned to the
// client as a short French message with a stable code, mirroring the
// messages the UI copy uses. Nothing here is fatal: the session always
// survives and awaits the next interaction.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Abdeldjalil-bch/anomal/internal/charts"
	"github.com/Abdeldjalil-bch/anomal/internal/dataset"
	"github.com/Abdeldjalil-bch/anomal/internal/export"
	"github.com/Abdeldjalil-bch/anomal/internal/logging"
	"github.com/Abdeldjalil-bch/anomal/internal/session"
)

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// userMessage resolves an error to an HTTP status, a stable code and a
// user-facing message. Unknown errors collapse to a generic 500.
func userMessage(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, dataset.ErrEmptySelection):
		return http.StatusUnprocessableEntity, "SEL001",
			"Veuillez sélectionner au moins une colonne."
	case errors.Is(err, dataset.ErrUnknownColumn):
		return http.StatusUnprocessableEntity, "SEL002",
			"Une des colonnes sélectionnées n'existe pas dans le fichier."
	case errors.Is(err, dataset.ErrUnsupportedType):
		return http.StatusBadRequest, "FILE001",
			"Format non supporté. Choisissez un fichier Excel (.xlsx) ou CSV (.csv)."
	case errors.Is(err, dataset.ErrEmptyFile):
		return http.StatusBadRequest, "FILE002",
			"Le fichier est vide."
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "SES001",
			"Session expirée. Veuillez uploader un nouveau fichier."
	case errors.Is(err, session.ErrStoreFull):
		return http.StatusServiceUnavailable, "SES002",
			"Trop de sessions actives. Veuillez réessayer dans quelques minutes."
	case errors.Is(err, charts.ErrUnknownChartType):
		return http.StatusBadRequest, "CHART001",
			"Type de graphique inconnu."
	case errors.Is(err, charts.ErrWrongBranch):
		return http.StatusBadRequest, "CHART002",
			"Ce type de graphique ne correspond pas au type de la colonne."
	case errors.Is(err, export.ErrNothingToExport):
		return http.StatusUnprocessableEntity, "EXP001",
			"Aucune ligne à exporter."
	default:
		return http.StatusInternalServerError, "ERR000",
			"Une erreur inattendue s'est produite. Veuillez réessayer."
	}
}

// respondError logs the technical error and writes the mapped JSON
// response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := userMessage(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", code,
	)
	respondErrorJSON(w, status, code, msg)
}

// respondLoadError is respondError with load failures downgraded to a
// 400 FILE003 instead of a 500, since a malformed upload is a user
// condition, not a server fault.
func (s *Server) respondLoadError(w http.ResponseWriter, r *http.Request, err error) {
	status, _, _ := userMessage(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Warn("file load failed", "error", err.Error())
		respondErrorJSON(w, http.StatusBadRequest, "FILE003",
			"Erreur lors du chargement du fichier : "+err.Error())
		return
	}
	s.respondError(w, r, err)
}

func respondErrorJSON(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg, Code: code})
}

// writeJSON encodes v as JSON and writes it to w. Encoding errors are
// logged since headers are already sent.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
