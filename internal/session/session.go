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

// Package session holds the working state of one analysis: the merged
// dataset, the active filter selection, and the SQLite record of
// uploads and generated reports.
package session

import (
	"sync"

	"github.com/ZeCa-Caloo/ANALISTIC-DOC/internal/dataset"
)

// Session is the mutable analysis state. Every upload batch rebuilds
// the dataset wholesale; there is no incremental append across
// requests, so a new batch always starts from a clean slate.
type Session struct {
	mu     sync.Mutex
	store  *Store
	base   *dataset.Dataset
	filter map[string][]string
}

// New creates a session backed by the given store
func New(store *Store) *Session {
	return &Session{
		store: store,
		base:  dataset.New(),
	}
}

// Store exposes the backing store for upload and report records
func (s *Session) Store() *Store {
	return s.store
}

// SetDataset replaces the merged dataset and drops any filter selection
func (s *Session) SetDataset(d *dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d == nil {
		d = dataset.New()
	}
	s.base = d
	s.filter = nil
}

// Dataset returns a snapshot of the merged dataset
func (s *Session) Dataset() *dataset.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base.Clone()
}

// SetFilter replaces the filter selection. Columns mapped to empty or
// missing value lists place no restriction on the dataset.
func (s *Session) SetFilter(selection map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = selection
}

// Filter returns the active filter selection
func (s *Session) Filter() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Filtered applies the active selection to the merged dataset
func (s *Session) Filtered() *dataset.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.filter) == 0 {
		return s.base.Clone()
	}
	return s.base.Filter(s.filter)
}
