package web

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Abdeldjalil-bch/anomal/internal/charts"
	"github.com/Abdeldjalil-bch/anomal/internal/dataset"
	"github.com/Abdeldjalil-bch/anomal/internal/export"
	"github.com/Abdeldjalil-bch/anomal/internal/logging"
	"github.com/Abdeldjalil-bch/anomal/internal/session"
)

// previewLimit caps how many rows of each partition are sent back to the
// browser after a classification. Exports are never truncated.
const previewLimit = 100

// groupsLimit caps the duplicate combinations listed in the API response.
const groupsLimit = 10

// handleIndex serves the single-page UI.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// handleHealth is the liveness endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

// UploadResponse is returned after a successful file upload.
type UploadResponse struct {
	Session  string           `json:"session"`
	Overview dataset.Overview `json:"overview"`
}

// handleUpload receives a multipart file, parses it into a table and
// binds it to a session. When the form carries an existing session id the
// table replaces that session's table instead of creating a new one.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondErrorJSON(w, http.StatusRequestEntityTooLarge, "FILE005",
				"Le fichier dépasse la taille maximale autorisée.")
			return
		}
		respondErrorJSON(w, http.StatusBadRequest, "FILE004",
			"Aucun fichier reçu. Choisissez un fichier Excel ou CSV.")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if ext := strings.ToLower(filepath.Ext(filename)); !s.cfg.Upload.Allowed(ext) {
		s.respondError(w, r, fmt.Errorf("%w: %s", dataset.ErrUnsupportedType, ext))
		return
	}
	table, err := dataset.LoadFile(filename, file)
	if err != nil {
		s.respondLoadError(w, r, err)
		return
	}

	var sess *session.Session
	if id := r.FormValue("session"); id != "" {
		sess, err = s.store.Replace(id, table)
		if errors.Is(err, session.ErrNotFound) {
			sess, err = s.store.Create(table)
		}
	} else {
		sess, err = s.store.Create(table)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("file uploaded",
		"file", filename,
		"rows", table.NumRows(),
		"cols", table.NumCols(),
		"session", sess.ID,
	)
	writeJSON(w, UploadResponse{Session: sess.ID, Overview: table.Overview()})
}

// sessionTable resolves the session named in the URL. A nil table means
// the error response has already been written.
func (s *Server) sessionTable(w http.ResponseWriter, r *http.Request) *dataset.Table {
	id := chi.URLParam(r, "sessionID")
	sess, err := s.store.Get(id)
	if err != nil {
		s.respondError(w, r, err)
		return nil
	}
	return sess.Table
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	t := s.sessionTable(w, r)
	if t == nil {
		return
	}
	writeJSON(w, t.Overview())
}

// AnomaliesResponse is the missing-values and duplicate-rows summary.
type AnomaliesResponse struct {
	TotalRows     int                     `json:"totalRows"`
	Missing       []dataset.MissingColumn `json:"missing"`
	DuplicateRows int                     `json:"duplicateRows"`
	DuplicatePct  float64                 `json:"duplicatePct"`
}

func (s *Server) handleAnomalies(w http.ResponseWriter, r *http.Request) {
	t := s.sessionTable(w, r)
	if t == nil {
		return
	}
	resp := AnomaliesResponse{
		TotalRows:     t.NumRows(),
		Missing:       t.MissingByColumn(),
		DuplicateRows: t.WholeRowDuplicates(),
	}
	if t.NumRows() > 0 {
		resp.DuplicatePct = float64(resp.DuplicateRows) * 100 / float64(t.NumRows())
	}
	writeJSON(w, resp)
}

// ColumnStatsResponse describes one column: its resolved kind, which
// chart branch applies and either numeric statistics or a value
// distribution.
type ColumnStatsResponse struct {
	Column        string                `json:"column"`
	Kind          string                `json:"kind"`
	NumericBranch bool                  `json:"numericBranch"`
	Distinct      int                   `json:"distinct"`
	Numeric       *dataset.NumericStats `json:"numeric,omitempty"`
	Values        []dataset.ValueCount  `json:"values,omitempty"`
}

func (s *Server) handleColumnStats(w http.ResponseWriter, r *http.Request) {
	t := s.sessionTable(w, r)
	if t == nil {
		return
	}
	column := chi.URLParam(r, "column")
	if _, ok := t.ColumnIndex(column); !ok {
		s.respondError(w, r, dataset.ErrUnknownColumn)
		return
	}

	resp := ColumnStatsResponse{
		Column:        column,
		Kind:          t.ColumnKindOf(column).String(),
		NumericBranch: charts.NumericBranch(t, column),
		Distinct:      t.DistinctCount(column),
	}
	if resp.NumericBranch {
		stats, err := t.NumericStats(column)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		resp.Numeric = &stats
	} else {
		values := t.ValueCounts(column)
		if len(values) > 20 {
			values = values[:20]
		}
		resp.Values = values
	}
	writeJSON(w, resp)
}

// ClassifyRequest names the columns whose value combinations define
// uniqueness.
type ClassifyRequest struct {
	Columns []string `json:"columns"`
}

// Partition is a truncated view of one side of a classification.
type Partition struct {
	Total     int        `json:"total"`
	Rows      [][]string `json:"rows"`
	Truncated bool       `json:"truncated"`
}

// GroupView is one duplicated combination, rendered for display.
type GroupView struct {
	Values []string `json:"values"`
	Count  int      `json:"count"`
}

// ClassifyResponse is the full result of a combination analysis.
type ClassifyResponse struct {
	Columns     []string    `json:"columns"`
	AllColumns  []string    `json:"allColumns"`
	TotalRows   int         `json:"totalRows"`
	Unique      Partition   `json:"unique"`
	Duplicate   Partition   `json:"duplicate"`
	Groups      []GroupView `json:"groups"`
	GroupsTotal int         `json:"groupsTotal"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	t := s.sessionTable(w, r)
	if t == nil {
		return
	}
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorJSON(w, http.StatusBadRequest, "REQ001", "Requête invalide.")
		return
	}

	c, err := t.Classify(req.Columns)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := ClassifyResponse{
		Columns:     c.Columns,
		AllColumns:  t.Columns,
		TotalRows:   t.NumRows(),
		Unique:      partitionPreview(t, c.Unique),
		Duplicate:   partitionPreview(t, c.Duplicate),
		GroupsTotal: len(c.Groups),
	}
	for _, g := range c.Groups {
		if len(resp.Groups) == groupsLimit {
			break
		}
		vals := make([]string, len(g.Values))
		for i, v := range g.Values {
			vals[i] = v.String()
		}
		resp.Groups = append(resp.Groups, GroupView{Values: vals, Count: g.Count})
	}

	logging.FromContext(r.Context()).Info("classification",
		"columns", strings.Join(c.Columns, ","),
		"unique", len(c.Unique),
		"duplicate", len(c.Duplicate),
		"groups", len(c.Groups),
	)
	writeJSON(w, resp)
}

// partitionPreview renders up to previewLimit rows of one partition with
// every original column.
func partitionPreview(t *dataset.Table, rowIdx []int) Partition {
	p := Partition{Total: len(rowIdx)}
	shown := rowIdx
	if len(shown) > previewLimit {
		shown = shown[:previewLimit]
		p.Truncated = true
	}
	p.Rows = t.Subset("preview", shown).Head(previewLimit)
	return p
}

// ExportRequest describes a zip download: the column selection to
// classify on and optional filenames for the two spreadsheets.
type ExportRequest struct {
	Columns           []string `json:"columns"`
	UniqueFilename    string   `json:"uniqueFilename"`
	DuplicateFilename string   `json:"duplicateFilename"`
}

// handleExport re-runs the classification and streams a zip holding one
// xlsx per non-empty partition.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	t := s.sessionTable(w, r)
	if t == nil {
		return
	}
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorJSON(w, http.StatusBadRequest, "REQ001", "Requête invalide.")
		return
	}

	c, err := t.Classify(req.Columns)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	unique := t.Subset(t.Name, c.Unique)
	duplicate := t.Subset(t.Name, c.Duplicate)
	if unique.NumRows() == 0 && duplicate.NumRows() == 0 {
		s.respondError(w, r, export.ErrNothingToExport)
		return
	}

	filename := export.ZipFilename(time.Now())
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	zw := zip.NewWriter(w)
	if err := export.BuildZip(zw, unique, duplicate, req.UniqueFilename, req.DuplicateFilename); err != nil {
		// Headers are out; log and close what we can.
		logging.FromContext(r.Context()).Error("zip build failed", "error", err)
		zw.Close()
		return
	}
	if err := zw.Close(); err != nil {
		logging.FromContext(r.Context()).Error("zip close failed", "error", err)
	}
	logging.FromContext(r.Context()).Info("export",
		"file", filename,
		"unique", unique.NumRows(),
		"duplicate", duplicate.NumRows(),
	)
}

// handleChart renders a chart as a standalone HTML document, meant to be
// loaded in an iframe. type=duplicates charts the group-size distribution
// of a combination analysis; every other type charts one column.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	t := s.sessionTable(w, r)
	if t == nil {
		return
	}
	q := r.URL.Query()

	if q.Get("type") == "duplicates" {
		columns := strings.Split(q.Get("columns"), ",")
		if q.Get("columns") == "" {
			columns = nil
		}
		c, err := t.Classify(columns)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := charts.RenderGroupSizes(w, c.Groups, q.Get("palette")); err != nil {
			logging.FromContext(r.Context()).Error("chart render failed", "error", err)
		}
		return
	}

	bins, _ := strconv.Atoi(q.Get("bins"))
	req := charts.Request{
		Column:  q.Get("column"),
		Type:    q.Get("type"),
		Palette: q.Get("palette"),
		Color:   q.Get("color"),
		Title:   q.Get("title"),
		Bins:    bins,
	}

	var buf strings.Builder
	if err := charts.Render(&buf, t, req); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(buf.String()))
}
