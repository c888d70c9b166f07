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

package session

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// Store wraps the sql.DB with additional methods. It runs against an
// in-memory database by default so a restart always begins from an
// empty session.
type Store struct {
	*sql.DB
}

// Open creates and initializes the SQLite session store
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// In-memory databases vanish when their last connection closes
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &Store{db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS uploads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		original_name TEXT NOT NULL,
		file_kind TEXT NOT NULL,
		charset TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		row_count INTEGER NOT NULL,
		notice TEXT,
		upload_time DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		format TEXT NOT NULL,
		created_time DATETIME NOT NULL,
		artifact BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_time DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_uploads_upload_time ON uploads(upload_time);
	CREATE INDEX IF NOT EXISTS idx_reports_created_time ON reports(created_time);
	`

	_, err := db.Exec(schema)
	return err
}

// Upload represents one ingested file in the session
type Upload struct {
	ID           int       `json:"id"`
	OriginalName string    `json:"original_name"`
	FileKind     string    `json:"file_kind"`
	Charset      string    `json:"charset"`
	FileSize     int64     `json:"file_size"`
	RowCount     int       `json:"row_count"`
	Notice       string    `json:"notice,omitempty"`
	UploadTime   time.Time `json:"upload_time"`
}

// ReportRecord represents a generated report artifact
type ReportRecord struct {
	ID          int       `json:"id"`
	Format      string    `json:"format"`
	CreatedTime time.Time `json:"created_time"`
	Artifact    []byte    `json:"-"`
}

// InsertUpload inserts a new upload record
func (s *Store) InsertUpload(upload *Upload) error {
	query := `
		INSERT INTO uploads (original_name, file_kind, charset, file_size, row_count, notice, upload_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := s.Exec(query, upload.OriginalName, upload.FileKind, upload.Charset,
		upload.FileSize, upload.RowCount, upload.Notice, upload.UploadTime)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	upload.ID = int(id)
	return nil
}

// ListUploads retrieves all uploads in ingestion order
func (s *Store) ListUploads() ([]*Upload, error) {
	query := `
		SELECT id, original_name, file_kind, charset, file_size, row_count,
		       COALESCE(notice, '') as notice, upload_time
		FROM uploads ORDER BY id ASC
	`
	rows, err := s.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Error closing rows: %v", err)
		}
	}()

	uploads := make([]*Upload, 0)
	for rows.Next() {
		upload := &Upload{}
		err := rows.Scan(&upload.ID, &upload.OriginalName, &upload.FileKind, &upload.Charset,
			&upload.FileSize, &upload.RowCount, &upload.Notice, &upload.UploadTime)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, rows.Err()
}

// ClearUploads removes every upload record
func (s *Store) ClearUploads() error {
	_, err := s.Exec(`DELETE FROM uploads`)
	return err
}

// InsertReport inserts a generated report artifact
func (s *Store) InsertReport(report *ReportRecord) error {
	query := `
		INSERT INTO reports (format, created_time, artifact)
		VALUES (?, ?, ?)
	`
	result, err := s.Exec(query, report.Format, report.CreatedTime, report.Artifact)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	report.ID = int(id)
	return nil
}

// GetReport retrieves a report artifact by ID
func (s *Store) GetReport(reportID int) (*ReportRecord, error) {
	query := `SELECT id, format, created_time, artifact FROM reports WHERE id = ?`
	row := s.QueryRow(query, reportID)

	report := &ReportRecord{}
	err := row.Scan(&report.ID, &report.Format, &report.CreatedTime, &report.Artifact)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// GetSetting retrieves a setting value by key
func (s *Store) GetSetting(key string) (string, error) {
	query := `SELECT value FROM settings WHERE key = ?`
	row := s.QueryRow(query, key)

	var value string
	err := row.Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// ListSettings retrieves every setting as a key/value map
func (s *Store) ListSettings() (map[string]string, error) {
	rows, err := s.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Error closing rows: %v", err)
		}
	}()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// SetSetting sets a setting value by key
func (s *Store) SetSetting(key, value string) error {
	query := `
		INSERT OR REPLACE INTO settings (key, value, updated_time)
		VALUES (?, ?, ?)
	`
	_, err := s.Exec(query, key, value, time.Now())
	return err
}

// InitializeSettings sets default settings if they don't exist
func (s *Store) InitializeSettings(defaults map[string]string) error {
	for key, defaultValue := range defaults {
		_, err := s.GetSetting(key)
		if err != nil {
			if err := s.SetSetting(key, defaultValue); err != nil {
				return err
			}
			log.Printf("Initialized setting %s with default value: %s", key, defaultValue)
		}
	}
	return nil
}
