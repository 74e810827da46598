// Package domain defines the core types of the evaluation workspace:
// samples, candidates, automated judgments and human evaluation records.
package domain

import "time"

// CandidateCount is the fixed number of candidate slots per sample.
const CandidateCount = 5

// Rating is the ordinal rating a reviewer assigns for accuracy and detail.
type Rating string

const (
	RatingMeets       Rating = "Meets Expectations"
	RatingPartially   Rating = "Partially Meets Expectations"
	RatingDoesNotMeet Rating = "Does Not Meet Expectations"
)

// Valid reports whether r is one of the three known rating values.
func (r Rating) Valid() bool {
	switch r {
	case RatingMeets, RatingPartially, RatingDoesNotMeet:
		return true
	}
	return false
}

// LLMCriteria is a single automated rating with its justification.
type LLMCriteria struct {
	Rating        string `json:"rating"`
	Justification string `json:"justification"`
}

// LLMJudgement is the pre-computed automated judgment attached to a
// candidate. Immutable once loaded.
type LLMJudgement struct {
	Clarity      LLMCriteria `json:"Clarity"`
	Completeness LLMCriteria `json:"Completeness"`
	Consistency  LLMCriteria `json:"Consistency"`
}

// Candidate is one model output for a sample. IDs run 1..CandidateCount,
// ordered by model label A..E. ImageURL may be empty when the candidate
// file was not found; Judgement is nil until resolved.
type Candidate struct {
	ID        int           `json:"id"`
	Label     string        `json:"label"`
	ImageURL  string        `json:"imageUrl"`
	JSONURL   string        `json:"jsonUrl,omitempty"`
	Judgement *LLMJudgement `json:"llmJudgement,omitempty"`
}

// CandidateLabel returns the display label for the candidate at the given
// zero-based index: "Model A" .. "Model E".
func CandidateLabel(idx int) string {
	return "Model " + string(rune('A'+idx))
}

// Sample is one ground-truth item with its candidate outputs. A sample
// always carries exactly CandidateCount candidates; slots for missing
// files exist with an empty ImageURL.
type Sample struct {
	ID             int         `json:"id"`
	Title          string      `json:"title"`
	GroundTruthURL string      `json:"groundTruthUrl"`
	Candidates     []Candidate `json:"candidates"`
}

// UserEvaluation is the single mutable record a reviewer edits for one
// (sample, candidate) pair. Agreement flags are tri-state: nil means unset.
// Edits always replace the whole record, carrying untouched fields forward.
type UserEvaluation struct {
	ClarityAgree              *bool   `json:"clarityAgree"`
	ClarityJustification      string  `json:"clarityJustification"`
	CompletenessAgree         *bool   `json:"completenessAgree"`
	CompletenessJustification string  `json:"completenessJustification"`
	ConsistencyAgree          *bool   `json:"consistencyAgree"`
	ConsistencyJustification  string  `json:"consistencyJustification"`
	AccuracyRating            *Rating `json:"accuracyRating"`
	AccuracyJustification     string  `json:"accuracyJustification"`
	DetailRating              *Rating `json:"detailRating"`
	DetailJustification       string  `json:"detailJustification"`
	Timestamp                 int64   `json:"timestamp"`
}

// NewEmptyEvaluation returns an all-unset record stamped with the given
// creation time in milliseconds since epoch.
func NewEmptyEvaluation(now time.Time) UserEvaluation {
	return UserEvaluation{Timestamp: now.UnixMilli()}
}
