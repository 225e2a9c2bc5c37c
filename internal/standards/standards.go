// Copyright (c) Foster Meadows
// SPDX-License-Identifier: MIT

// Package standards serves the static standards catalog bundled into the
// binary. The catalog is a read-only lookup table; plans only store codes
// into it.
package standards

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

//go:embed catalog/*.json
var catalogFiles embed.FS

// Standard is one catalog record.
type Standard struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// Catalog is one standards package, e.g. "ela8".
type Catalog struct {
	name    string
	records []Standard
	byCode  map[string]Standard
}

// DefaultPackage is used for teachers who never picked one.
const DefaultPackage = "ela8"

// Load parses every bundled catalog, keyed by package name.
func Load() (map[string]*Catalog, error) {
	entries, err := fs.ReadDir(catalogFiles, "catalog")
	if err != nil {
		return nil, fmt.Errorf("standards: reading catalog dir: %w", err)
	}
	catalogs := make(map[string]*Catalog, len(entries))
	for _, e := range entries {
		name := e.Name()
		name = name[:len(name)-len(".json")]
		data, err := catalogFiles.ReadFile("catalog/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("standards: reading catalog %s: %w", name, err)
		}
		var records []Standard
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("standards: parsing catalog %s: %w", name, err)
		}
		byCode := make(map[string]Standard, len(records))
		for _, r := range records {
			byCode[r.Code] = r
		}
		catalogs[name] = &Catalog{name: name, records: records, byCode: byCode}
	}
	return catalogs, nil
}

// Name returns the package name.
func (c *Catalog) Name() string { return c.name }

// All returns the catalog's records in file order.
func (c *Catalog) All() []Standard { return c.records }

// Lookup resolves a code to its record.
func (c *Catalog) Lookup(code string) (Standard, bool) {
	s, ok := c.byCode[code]
	return s, ok
}
