//	Copyright 2025 ANALISTIC-DOC Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package handlers contains the HTTP layer of the dashboard: upload,
// dataset, filter, insights, export, and report endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/config"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/dataset"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/ingest"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/insights"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/report"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/session"
)

const Version = "1.0.0"

// Handlers contains the HTTP handlers
type Handlers struct {
	session *session.Session
	cfg     *config.Config
	caps    report.Capabilities
}

// New creates a new Handlers instance
func New(sess *session.Session, cfg *config.Config, caps report.Capabilities) *Handlers {
	return &Handlers{
		session: sess,
		cfg:     cfg,
		caps:    caps,
	}
}

// timezoneName resolves the effective target zone: the session setting
// when present and valid, the configured default otherwise.
func (h *Handlers) timezoneName() string {
	value, err := h.session.Store().GetSetting("timezone")
	if err != nil || value == "" {
		return h.cfg.TimezoneName
	}
	if _, err := time.LoadLocation(value); err != nil {
		log.Printf("Ignoring invalid timezone setting %q: %v", value, err)
		return h.cfg.TimezoneName
	}
	return value
}

// location resolves the effective target zone, falling back to UTC
func (h *Handlers) location() *time.Location {
	name := h.timezoneName()
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

func writeJSON(w http.ResponseWriter, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// HandleUpload ingests a batch of uploaded files. Every batch replaces
// the session dataset wholesale; partial results from a previous batch
// never leak into the next one.
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		http.Error(w, "No files uploaded", http.StatusBadRequest)
		return
	}

	if err := h.session.Store().ClearUploads(); err != nil {
		log.Printf("Error clearing upload records: %v", err)
	}

	var parts []*dataset.Dataset
	var notices []string
	uploads := make([]*session.Upload, 0, len(files))

	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			http.Error(w, "Failed to open uploaded file", http.StatusBadRequest)
			return
		}
		raw, err := io.ReadAll(file)
		if cerr := file.Close(); cerr != nil {
			log.Printf("Error closing uploaded file: %v", cerr)
		}
		if err != nil {
			http.Error(w, "Failed to read uploaded file", http.StatusInternalServerError)
			return
		}

		result := ingest.ReadFile(header.Filename, raw, h.cfg)
		if result.Err != nil {
			log.Printf("Ingesting %s failed: %v", header.Filename, result.Err)
			notices = append(notices, fmt.Sprintf("%s: arquivo ilegível, ignorado", header.Filename))
		} else if result.Dataset != nil && result.Dataset.RowCount() > 0 {
			parts = append(parts, result.Dataset)
		}
		if result.Notice != "" {
			notices = append(notices, fmt.Sprintf("%s: %s", header.Filename, result.Notice))
		}

		upload := &session.Upload{
			OriginalName: header.Filename,
			FileKind:     result.Kind,
			Charset:      result.Charset,
			FileSize:     header.Size,
			RowCount:     result.Dataset.RowCount(),
			Notice:       result.Notice,
			UploadTime:   time.Now(),
		}
		if err := h.session.Store().InsertUpload(upload); err != nil {
			log.Printf("Error recording upload %s: %v", header.Filename, err)
		}
		uploads = append(uploads, upload)
	}

	// Normalizing here keeps filter selections consistent with the
	// displayed values; Normalize is idempotent so later calls are no-ops.
	merged := dataset.Normalize(dataset.Merge(parts...), h.location())
	h.session.SetDataset(merged)

	writeJSON(w, map[string]interface{}{
		"success": true,
		"files":   uploads,
		"rows":    merged.RowCount(),
		"columns": merged.Columns,
		"notices": notices,
	})
}

// HandleUploads lists the upload records of the current session
func (h *Handlers) HandleUploads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uploads, err := h.session.Store().ListUploads()
	if err != nil {
		http.Error(w, "Failed to list uploads", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success": true,
		"files":   uploads,
	})
}

// HandleDataset returns the merged dataset normalized to the target
// zone, as display strings.
func (h *Handlers) HandleDataset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ds := dataset.Normalize(h.session.Filtered(), h.location())
	rows := make([][]string, 0, ds.RowCount())
	for i := range ds.Rows {
		record := make([]string, len(ds.Columns))
		for j, col := range ds.Columns {
			record[j] = ds.Value(i, col).Display()
		}
		rows = append(rows, record)
	}

	writeJSON(w, map[string]interface{}{
		"success": true,
		"columns": ds.Columns,
		"rows":    rows,
		"total":   ds.RowCount(),
	})
}

// HandleFilter manages the column/value filter selection. GET returns
// the distinct display values available per column; POST replaces the
// selection.
func (h *Handlers) HandleFilter(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ds := dataset.Normalize(h.session.Dataset(), h.location())
		options := make(map[string][]string, len(ds.Columns))
		for _, col := range ds.Columns {
			options[col] = ds.DistinctDisplay(col)
		}
		writeJSON(w, map[string]interface{}{
			"success":  true,
			"options":  options,
			"selected": h.session.Filter(),
		})

	case http.MethodPost:
		var req struct {
			Selection map[string][]string `json:"selection"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		h.session.SetFilter(req.Selection)
		writeJSON(w, map[string]interface{}{
			"success": true,
			"rows":    h.session.Filtered().RowCount(),
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleInsights returns the summary sentences plus descriptive
// statistics for the filtered dataset. ?widen_time=true lets timestamp
// columns join the correlation matrix as epoch seconds.
func (h *Handlers) HandleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ds := h.session.Filtered()
	widenTime := r.URL.Query().Get("widen_time") == "true"
	corrCols, corrMatrix := insights.Correlation(ds, widenTime)

	payload := map[string]interface{}{
		"success":   true,
		"sentences": insights.Summarize(ds),
		"describe":  insights.Describe(ds),
	}
	if corrCols != nil {
		payload["correlation_columns"] = corrCols
		payload["correlation"] = corrMatrix
	}
	writeJSON(w, payload)
}

// HandleSettings manages the session settings. GET returns every
// stored key; POST changes the target timezone, which every later
// normalization, export and report consumes.
func (h *Handlers) HandleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := h.session.Store().ListSettings()
		if err != nil {
			http.Error(w, "Failed to load settings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]interface{}{
			"success":  true,
			"settings": settings,
		})

	case http.MethodPost:
		var req struct {
			Timezone string `json:"timezone"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			http.Error(w, "Unknown timezone: "+req.Timezone, http.StatusBadRequest)
			return
		}
		if err := h.session.Store().SetSetting("timezone", req.Timezone); err != nil {
			http.Error(w, "Failed to save setting", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]interface{}{
			"success":  true,
			"timezone": req.Timezone,
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleCapabilities reports which report backends are available
func (h *Handlers) HandleCapabilities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success":      true,
		"capabilities": h.caps,
		"version":      Version,
	})
}

// HandleExport serves the filtered dataset in the requested format
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ds := dataset.Normalize(h.session.Filtered(), h.location())

	var (
		data        []byte
		err         error
		contentType string
		filename    string
	)
	switch format := r.URL.Query().Get("format"); format {
	case "csv":
		data, err = dataset.ToCSV(ds)
		contentType, filename = "text/csv; charset=utf-8", "dados.csv"
	case "json":
		data, err = dataset.ToJSON(ds)
		contentType, filename = "application/json", "dados.json"
	case "xlsx":
		data, err = dataset.ToXLSX(ds)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "dados.xlsx"
	default:
		http.Error(w, "Unsupported export format: "+format, http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("Export failed: %v", err)
		http.Error(w, "Failed to export dataset", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing export response: %v", err)
	}
}

// reportRequest is the POST body of /api/report
type reportRequest struct {
	Organization  string `json:"organization"`
	Unit          string `json:"unit"`
	CaseNumber    string `json:"case_number"`
	Analyst       string `json:"analyst"`
	Requester     string `json:"requester"`
	Observations  string `json:"observations"`
	IncludeCharts bool   `json:"include_charts"`
}

// HandleReport assembles and serves the investigative report in the
// requested format, recording the artifact in the session store.
func (h *Handlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// The report renders in the effective zone, which may have been
	// changed through the settings endpoint after startup.
	cfg := *h.cfg
	if name := h.timezoneName(); name != cfg.TimezoneName {
		cfg.TimezoneName = name
		cfg.TimezoneLabel = name
	}

	loc := h.location()
	meta := report.Metadata{
		Organization: req.Organization,
		Unit:         req.Unit,
		CaseNumber:   req.CaseNumber,
		Analyst:      req.Analyst,
		Requester:    req.Requester,
		TimezoneName: cfg.TimezoneName,
		Observations: req.Observations,
		GeneratedAt:  time.Now().In(loc),
	}
	assembly := report.NewAssembly(h.session.Dataset(), h.session.Filtered(),
		req.IncludeCharts, meta, h.caps, &cfg)

	var (
		data        []byte
		err         error
		contentType string
		filename    string
	)
	format := r.URL.Query().Get("format")
	switch format {
	case "txt":
		data = assembly.RenderText()
		contentType, filename = "text/plain; charset=utf-8", "relatorio.txt"
	case "html":
		data = assembly.RenderHTML()
		contentType, filename = "text/html; charset=utf-8", "relatorio.html"
	case "docx":
		data, err = assembly.RenderDOCX()
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		filename = "relatorio.docx"
	case "pdf":
		data, err = assembly.RenderPDF()
		contentType, filename = "application/pdf", "relatorio.pdf"
	default:
		http.Error(w, "Unsupported report format: "+format, http.StatusBadRequest)
		return
	}

	var unavailable *report.UnavailableError
	if errors.As(err, &unavailable) {
		http.Error(w, unavailable.Error(), http.StatusNotImplemented)
		return
	}
	if err != nil {
		log.Printf("Report generation failed: %v", err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	record := &session.ReportRecord{
		Format:      format,
		CreatedTime: time.Now(),
		Artifact:    data,
	}
	if err := h.session.Store().InsertReport(record); err != nil {
		log.Printf("Error recording report artifact: %v", err)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("X-Report-ID", strconv.Itoa(record.ID))
	if _, err := w.Write(data); err != nil {
		log.Printf("Error writing report response: %v", err)
	}
}

// HandleReportDownload re-serves a previously generated artifact
func (h *Handlers) HandleReportDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(pathParts) < 3 {
		http.Error(w, "Invalid report ID", http.StatusBadRequest)
		return
	}
	reportID, err := strconv.Atoi(pathParts[2])
	if err != nil {
		http.Error(w, "Invalid report ID", http.StatusBadRequest)
		return
	}

	record, err := h.session.Store().GetReport(reportID)
	if err != nil {
		http.Error(w, "Report not found", http.StatusNotFound)
		return
	}

	contentType := map[string]string{
		"txt":  "text/plain; charset=utf-8",
		"html": "text/html; charset=utf-8",
		"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"pdf":  "application/pdf",
	}[record.Format]
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=relatorio."+record.Format)
	if _, err := w.Write(record.Artifact); err != nil {
		log.Printf("Error writing report response: %v", err)
	}
}
