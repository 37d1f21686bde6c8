/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package datasources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/sortabletable/core/records"
)

// Manager dispatches record files to the loader registered for their extension.
type Manager struct {
	mu sync.RWMutex

	// Registered loaders indexed by source type
	loaders map[string]Loader

	// File extension to source type
	extensions map[string]string
}

// NewManager creates a new manager with no loaders.
func NewManager() *Manager {
	return &Manager{
		loaders:    make(map[string]Loader),
		extensions: make(map[string]string),
	}
}

// NewDefaultManager creates a manager with the JSON, YAML and CSV loaders.
func NewDefaultManager() *Manager {
	m := NewManager()
	m.RegisterLoader(NewJSONLoader())
	m.RegisterLoader(NewYAMLLoader())
	m.RegisterLoader(NewCsvLoader())
	return m
}

// RegisterLoader registers a loader for its source type and extensions.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader Loader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
	for _, ext := range loader.Extensions() {
		m.extensions[strings.ToLower(ext)] = loader.SourceType()
	}
}

// GetLoader returns the loader registered for a source type.
func (m *Manager) GetLoader(sourceType string) (Loader, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.loaders[sourceType]
	return l, ok
}

// LoaderFor returns the loader handling path's extension.
func (m *Manager) LoaderFor(path string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))

	m.mu.RLock()
	sourceType, ok := m.extensions[ext]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no loader registered for %q files", ext)
	}
	loader, ok := m.GetLoader(sourceType)
	if !ok {
		return nil, fmt.Errorf("no %s loader registered", sourceType)
	}
	return loader, nil
}

// LoadRecords reads all records from the file at path.
func (m *Manager) LoadRecords(path string) ([]records.Record, error) {
	loader, err := m.LoaderFor(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer file.Close()

	rs, err := loader.Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}
