// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/agentmem/internal/util"
)

// =============================================================================
// USAGE STORAGE
// =============================================================================

// usageStorage persists usage records as one JSON file per day,
// usage-YYYYMMDD.json, under a directory.
type usageStorage struct {
	dir string
}

func newUsageStorage(dir string) (*usageStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &usageStorage{dir: dir}, nil
}

func (s *usageStorage) dayPath(key string) string {
	return filepath.Join(s.dir, "usage-"+key+".json")
}

// saveDay writes a full day of records.
func (s *usageStorage) saveDay(key string, records []UsageRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.dayPath(key), data, 0644)
}

// loadDay reads one day's records; a missing file is an empty day.
func (s *usageStorage) loadDay(key string) ([]UsageRecord, error) {
	data, err := os.ReadFile(s.dayPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []UsageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// load returns all records whose day file falls within [from, to],
// ordered by day.
func (s *usageStorage) load(from, to time.Time) ([]UsageRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "usage-") || !strings.HasSuffix(name, ".json") {
			continue
		}

		key := strings.TrimSuffix(strings.TrimPrefix(name, "usage-"), ".json")
		day, err := time.Parse("20060102", key)
		if err != nil {
			continue // Skip files that are not day records
		}

		// Compare at day granularity so "today" is always included.
		if day.Before(from.Truncate(24*time.Hour)) || day.After(to) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var all []UsageRecord
	for _, key := range keys {
		records, err := s.loadDay(key)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
