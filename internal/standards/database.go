package standards

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// RoomRequirements maps "{parameter}_{condition}" keys to thresholds,
// e.g. "illuminance_minimum": 500.
type RoomRequirements map[string]float64

// Entry is one standard's requirement table keyed by room type.
type Entry struct {
	Name         string                      `json:"name"`
	Version      string                      `json:"version"`
	Requirements map[string]RoomRequirements `json:"requirements"`
}

// Database is a file-backed lookup of requirement tables keyed by
// standard name. A missing or unreadable file is replaced with the
// built-in defaults.
type Database struct {
	mu      sync.RWMutex
	path    string
	entries map[string]Entry
	log     *slog.Logger
}

func NewDatabase(path string, logger *slog.Logger) *Database {
	if logger == nil {
		logger = slog.Default()
	}
	db := &Database{path: path, log: logger}
	db.entries = db.load()
	return db
}

func (d *Database) load() map[string]Entry {
	if d.path != "" {
		raw, err := os.ReadFile(d.path)
		if err == nil {
			var entries map[string]Entry
			if jerr := json.Unmarshal(raw, &entries); jerr == nil && len(entries) > 0 {
				return entries
			}
			d.log.Warn("standards database unreadable, using defaults", slog.String("path", d.path))
		}
	}
	entries := defaultEntries()
	if d.path != "" {
		if err := d.save(entries); err != nil {
			d.log.Warn("failed to save standards database", slog.String("path", d.path), slog.Any("error", err))
		}
	}
	return entries
}

func (d *Database) save(entries map[string]Entry) error {
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal standards database: %w", err)
	}
	if dir := filepath.Dir(d.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create standards directory: %w", err)
		}
	}
	if err := os.WriteFile(d.path, raw, 0o644); err != nil {
		return fmt.Errorf("write standards database: %w", err)
	}
	return nil
}

// Lookup returns the entry for a standard name.
func (d *Database) Lookup(standard StandardType) (Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.entries[string(standard)]
	return e, ok
}

// Standards lists the names of all known standards.
func (d *Database) Standards() []StandardType {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]StandardType, 0, len(d.entries))
	for k := range d.entries {
		out = append(out, StandardType(k))
	}
	return out
}

// Merge folds a processed document's requirements into the database and
// persists the result when the database is file-backed.
func (d *Database) Merge(doc *Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := string(doc.Type)
	entry, ok := d.entries[key]
	if !ok {
		entry = Entry{Name: doc.Name, Version: doc.Version, Requirements: map[string]RoomRequirements{}}
	}
	if entry.Requirements == nil {
		entry.Requirements = map[string]RoomRequirements{}
	}
	for _, req := range doc.Requirements {
		roomKey := string(req.RoomType)
		if entry.Requirements[roomKey] == nil {
			entry.Requirements[roomKey] = RoomRequirements{}
		}
		entry.Requirements[roomKey][req.Parameter+"_"+req.Condition] = req.Value
	}
	d.entries[key] = entry

	if d.path == "" {
		return nil
	}
	return d.save(d.entries)
}

func defaultEntries() map[string]Entry {
	return map[string]Entry{
		string(StandardEN12464): {
			Name:    "EN 12464-1:2021 - Light and lighting - Lighting of work places",
			Version: "2021",
			Requirements: map[string]RoomRequirements{
				"office": {
					"illuminance_minimum":       500,
					"uniformity_minimum":        0.6,
					"ugr_maximum":               19,
					"power_density_maximum":     12,
					"color_temperature_minimum": 3000,
					"color_temperature_maximum": 6500,
					"cri_minimum":               80,
				},
				"meeting_room": {
					"illuminance_minimum":       500,
					"uniformity_minimum":        0.6,
					"ugr_maximum":               19,
					"power_density_maximum":     12,
					"color_temperature_minimum": 3000,
					"color_temperature_maximum": 6500,
					"cri_minimum":               80,
				},
				"corridor": {
					"illuminance_minimum":       100,
					"uniformity_minimum":        0.4,
					"ugr_maximum":               22,
					"power_density_maximum":     5,
					"color_temperature_minimum": 3000,
					"color_temperature_maximum": 6500,
					"cri_minimum":               80,
				},
				"storage": {
					"illuminance_minimum":       200,
					"uniformity_minimum":        0.4,
					"ugr_maximum":               25,
					"power_density_maximum":     8,
					"color_temperature_minimum": 3000,
					"color_temperature_maximum": 6500,
					"cri_minimum":               80,
				},
				"industrial": {
					"illuminance_minimum":       300,
					"uniformity_minimum":        0.4,
					"ugr_maximum":               25,
					"power_density_maximum":     15,
					"color_temperature_minimum": 3000,
					"color_temperature_maximum": 6500,
					"cri_minimum":               80,
				},
			},
		},
		string(StandardBREEAM): {
			Name:    "BREEAM - Building Research Establishment Environmental Assessment Method",
			Version: "2018",
			Requirements: map[string]RoomRequirements{
				"office": {
					"illuminance_minimum":       500,
					"uniformity_minimum":        0.7,
					"ugr_maximum":               19,
					"power_density_maximum":     10,
					"color_temperature_minimum": 3000,
					"color_temperature_maximum": 6500,
					"cri_minimum":               80,
				},
			},
		},
	}
}
