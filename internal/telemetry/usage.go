// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry provides best-effort usage and cost tracking.
package telemetry

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// USAGE RECORD
// =============================================================================

// UsageRecord captures one model round-trip recorded through the append
// path: which agent, which model, how many tokens, what it cost.
type UsageRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Agent    string `json:"agent"`
	Provider string `json:"provider"`
	Model    string `json:"model"`

	TokensIn   int     `json:"tokens_in"`
	TokensOut  int     `json:"tokens_out"`
	Cost       float64 `json:"cost"` // In dollars
	DurationMs int64   `json:"duration_ms,omitempty"`
}

// Totals holds process-lifetime aggregates across all agents.
type Totals struct {
	Calls     int     `json:"calls"`
	TokensIn  int     `json:"tokens_in"`
	TokensOut int     `json:"tokens_out"`
	Cost      float64 `json:"cost"`
}

// =============================================================================
// RECORDER
// =============================================================================

// Recorder accumulates usage records and persists them to one JSON file per
// day. Recording is best-effort telemetry: callers on the LLM call path may
// ignore the returned error, and a persistence failure never corrupts the
// in-memory view.
type Recorder struct {
	mu      sync.Mutex
	storage *usageStorage
	day     string // date key of the records slice, "20060102"
	records []UsageRecord
	totals  Totals
}

// NewRecorder creates a usage recorder persisting under dir. Records
// already written for today are loaded so same-day restarts keep appending
// rather than overwriting.
func NewRecorder(dir string) (*Recorder, error) {
	storage, err := newUsageStorage(dir)
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		storage: storage,
		day:     dayKey(time.Now()),
	}
	records, err := storage.loadDay(r.day)
	if err != nil {
		return nil, err
	}
	r.records = records
	return r, nil
}

// Record appends one usage record and flushes the day file. A zero ID and
// timestamp are filled in.
func (r *Recorder) Record(rec UsageRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	// Day rollover: switch the buffer to the target day's file, reloading
	// any records already persisted there so saveDay appends rather than
	// overwrites. Timestamps can land on an earlier day (callers may set
	// them, and a midnight race between time.Now and the lock does too).
	if key := dayKey(rec.Timestamp); key != r.day {
		existing, err := r.storage.loadDay(key)
		if err != nil {
			return err
		}
		r.day = key
		r.records = existing
	}

	r.records = append(r.records, rec)
	r.totals.Calls++
	r.totals.TokensIn += rec.TokensIn
	r.totals.TokensOut += rec.TokensOut
	r.totals.Cost += rec.Cost

	return r.storage.saveDay(r.day, r.records)
}

// Totals returns the aggregates recorded by this process.
func (r *Recorder) Totals() Totals {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totals
}

// History returns all persisted records whose day falls in [from, to].
func (r *Recorder) History(from, to time.Time) ([]UsageRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.storage.load(from, to)
}

// =============================================================================
// TRENDS
// =============================================================================

// DailyUsage aggregates one day of records.
type DailyUsage struct {
	Date      time.Time `json:"date"`
	Calls     int       `json:"calls"`
	TokensIn  int       `json:"tokens_in"`
	TokensOut int       `json:"tokens_out"`
	Cost      float64   `json:"cost"`
}

// Trends summarizes usage over a trailing window of days.
type Trends struct {
	Days       int                `json:"days"`
	TotalCalls int                `json:"total_calls"`
	TotalCost  float64            `json:"total_cost"`
	Daily      []DailyUsage       `json:"daily"`
	ByProvider map[string]float64 `json:"by_provider"` // provider -> dollars
	ByAgent    map[string]float64 `json:"by_agent"`    // agent -> dollars
}

// Trends aggregates the trailing number of days of persisted usage.
func (r *Recorder) Trends(days int) (*Trends, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -days)

	records, err := r.History(from, to)
	if err != nil {
		return nil, err
	}

	trends := &Trends{
		Days:       days,
		ByProvider: make(map[string]float64),
		ByAgent:    make(map[string]float64),
	}

	dailyMap := make(map[string]*DailyUsage)
	for _, rec := range records {
		key := dayKey(rec.Timestamp)
		daily, ok := dailyMap[key]
		if !ok {
			daily = &DailyUsage{Date: rec.Timestamp.Truncate(24 * time.Hour)}
			dailyMap[key] = daily
		}

		daily.Calls++
		daily.TokensIn += rec.TokensIn
		daily.TokensOut += rec.TokensOut
		daily.Cost += rec.Cost

		trends.TotalCalls++
		trends.TotalCost += rec.Cost
		trends.ByProvider[rec.Provider] += rec.Cost
		trends.ByAgent[rec.Agent] += rec.Cost
	}

	trends.Daily = make([]DailyUsage, 0, len(dailyMap))
	for _, daily := range dailyMap {
		trends.Daily = append(trends.Daily, *daily)
	}
	// Sort by date ascending.
	for i := 0; i < len(trends.Daily); i++ {
		for j := i + 1; j < len(trends.Daily); j++ {
			if trends.Daily[j].Date.Before(trends.Daily[i].Date) {
				trends.Daily[i], trends.Daily[j] = trends.Daily[j], trends.Daily[i]
			}
		}
	}

	return trends, nil
}

// dayKey formats a timestamp as the day-file key.
func dayKey(t time.Time) string {
	return t.Format("20060102")
}
