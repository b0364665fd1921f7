package model

import "time"

// Severity tiers produced by the triage classifier. The store treats the
// tier as an opaque label; only the classifier assigns meaning to it.
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
	SeverityLow    = "LOW"
)

// HistoryEntry is one symptom analysis, append-only and immutable once
// written. SuggestedConditions is whatever text the AI provider returned —
// stored verbatim, never parsed. Entries are only ever removed as part of
// a cascading user delete.
type HistoryEntry struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"-"`
	Symptoms            string    `json:"symptoms"`
	Severity            string    `json:"severity"`
	SuggestedConditions string    `json:"suggestedConditions"`
	LocationSearched    string    `json:"locationSearched"`
	CreatedAt           time.Time `json:"createdAt"`
}
