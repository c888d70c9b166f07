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

package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/config"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/handlers"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/report"
	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/session"
)

func main() {
	cfg := config.Default()
	var (
		port       = flag.String("port", cfg.Port, "Server port")
		dbPath     = flag.String("db", cfg.SessionDBPath, "SQLite session store path (\":memory:\" keeps nothing across restarts)")
		timezone   = flag.String("timezone", cfg.TimezoneName, "IANA name of the target timezone")
		letterhead = flag.String("letterhead", cfg.LetterheadPath, "Letterhead image for PDF reports")
	)
	flag.Parse()

	cfg.Port = *port
	cfg.SessionDBPath = *dbPath
	cfg.TimezoneName = *timezone
	cfg.LetterheadPath = *letterhead

	if _, err := cfg.Location(); err != nil {
		log.Fatalf("Unknown timezone %q: %v", cfg.TimezoneName, err)
	}

	store, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing session store: %v", err)
		}
	}()

	defaultSettings := map[string]string{
		"timezone": cfg.TimezoneName,
	}
	if err := store.InitializeSettings(defaultSettings); err != nil {
		log.Fatalf("Failed to initialize settings: %v", err)
	}

	caps := report.ProbeCapabilities()
	if !caps.DOCX {
		log.Printf("DOCX reports unavailable: %s", caps.DOCXReason)
	}
	if !caps.PDF {
		log.Printf("PDF reports unavailable: %s", caps.PDFReason)
	}

	sess := session.New(store)
	h := handlers.New(sess, cfg, caps)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload", h.HandleUpload)
	mux.HandleFunc("/api/uploads", h.HandleUploads)
	mux.HandleFunc("/api/dataset", h.HandleDataset)
	mux.HandleFunc("/api/filter", h.HandleFilter)
	mux.HandleFunc("/api/insights", h.HandleInsights)
	mux.HandleFunc("/api/settings", h.HandleSettings)
	mux.HandleFunc("/api/capabilities", h.HandleCapabilities)
	mux.HandleFunc("/api/export", h.HandleExport)
	mux.HandleFunc("/api/report", h.HandleReport)
	mux.HandleFunc("/api/reports/", h.HandleReportDownload)
	mux.HandleFunc("/charts", h.HandleCharts)
	mux.HandleFunc("/", h.HandleIndex)

	log.Printf("Starting ANALISTIC-DOC server on port %s", cfg.Port)
	log.Printf("Session store: %s", cfg.SessionDBPath)
	log.Printf("Target timezone: %s", cfg.TimezoneName)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
