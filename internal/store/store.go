// Package store holds the per-user evaluation records, the sole mutable
// source of truth for human input.
package store

import (
	"time"

	"github.com/evalstudio/eval-studio/internal/domain"
)

// Store maps sample ID -> candidate ID -> evaluation record. Integer keys
// serialize as JSON object keys, so the on-disk shape matches prior exports.
type Store map[int]map[int]domain.UserEvaluation

func New() Store {
	return make(Store)
}

// Get returns the record for the pair, or a freshly created empty record
// stamped with now when absent. The default is computed, not stored.
func (s Store) Get(sampleID, candidateID int, now time.Time) domain.UserEvaluation {
	if byCandidate, ok := s[sampleID]; ok {
		if ev, ok := byCandidate[candidateID]; ok {
			return ev
		}
	}
	return domain.NewEmptyEvaluation(now)
}

// Replace returns a structural copy of the store with only the targeted
// leaf replaced. No other sample's or candidate's record is touched.
func (s Store) Replace(sampleID, candidateID int, ev domain.UserEvaluation) Store {
	next := make(Store, len(s)+1)
	for sid, byCandidate := range s {
		next[sid] = byCandidate
	}

	inner := make(map[int]domain.UserEvaluation, len(s[sampleID])+1)
	for cid, rec := range s[sampleID] {
		inner[cid] = rec
	}
	inner[candidateID] = ev
	next[sampleID] = inner

	return next
}

// IsComplete reports whether the sample has one record per candidate slot.
// Completeness tracks presence, not field content.
func (s Store) IsComplete(sampleID int) bool {
	return len(s[sampleID]) == domain.CandidateCount
}

// Count returns the total number of (sample, candidate) records.
func (s Store) Count() int {
	n := 0
	for _, byCandidate := range s {
		n += len(byCandidate)
	}
	return n
}
