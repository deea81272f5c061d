// Package source provides the inspection records browsed by aeroinspect and
// the paged stores they are fetched from.
package source

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrClosed is returned by a store used after Close.
var ErrClosed = errors.New("source: store closed")

// Inspection statuses.
const (
	StatusPassed      = "passed"
	StatusFailed      = "failed"
	StatusPending     = "pending"
	StatusConditional = "conditional"
)

// Statuses lists every inspection status.
var Statuses = []string{StatusPassed, StatusFailed, StatusPending, StatusConditional}

// Record is one supplier inspection.
type Record struct {
	ID          string    `json:"id"`
	Supplier    string    `json:"supplier"`
	Part        string    `json:"part"`
	Inspector   string    `json:"inspector"`
	Status      string    `json:"status"`
	Score       int       `json:"score"`
	InspectedAt time.Time `json:"inspected_at"`
	Notes       string    `json:"notes,omitempty"`
}

// Key returns the record's stable identity.
func (r Record) Key() string { return r.ID }

// Query selects a subset of records. The zero Query matches everything.
type Query struct {
	// Text is matched case-insensitively against supplier, part and inspector.
	Text string
	// Status restricts results to one status when non-empty.
	Status string
}

// IsZero reports whether the query matches every record.
func (q Query) IsZero() bool {
	return strings.TrimSpace(q.Text) == "" && q.Status == ""
}

// Matches reports whether r satisfies q.
func (q Query) Matches(r Record) bool {
	if q.Status != "" && r.Status != q.Status {
		return false
	}
	text := strings.ToLower(strings.TrimSpace(q.Text))
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Supplier), text) ||
		strings.Contains(strings.ToLower(r.Part), text) ||
		strings.Contains(strings.ToLower(r.Inspector), text)
}

// ParseQuery turns search box input into a Query. A "status:<name>" token
// sets Status; the remaining words form Text.
func ParseQuery(s string) Query {
	var q Query
	var words []string
	for _, f := range strings.Fields(s) {
		if v, ok := strings.CutPrefix(strings.ToLower(f), "status:"); ok {
			q.Status = v
			continue
		}
		words = append(words, f)
	}
	q.Text = strings.Join(words, " ")
	return q
}

// Page is one batch of records plus the size of the whole result set.
type Page struct {
	Records []Record
	Total   int
}

// Store serves records in a stable order, one page at a time.
type Store interface {
	// Page returns up to limit records matching q, starting at offset.
	Page(ctx context.Context, q Query, offset, limit int) (Page, error)
}
