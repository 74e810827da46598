package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCandidateLabel(t *testing.T) {
	assert.Equal(t, "Model A", CandidateLabel(0))
	assert.Equal(t, "Model C", CandidateLabel(2))
	assert.Equal(t, "Model E", CandidateLabel(4))
}

func TestRatingValid(t *testing.T) {
	assert.True(t, RatingMeets.Valid())
	assert.True(t, RatingPartially.Valid())
	assert.True(t, RatingDoesNotMeet.Valid())
	assert.False(t, Rating("Exceeds Expectations").Valid())
	assert.False(t, Rating("").Valid())
}

func TestNewEmptyEvaluation(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ev := NewEmptyEvaluation(now)

	assert.Nil(t, ev.ClarityAgree)
	assert.Nil(t, ev.CompletenessAgree)
	assert.Nil(t, ev.ConsistencyAgree)
	assert.Nil(t, ev.AccuracyRating)
	assert.Nil(t, ev.DetailRating)
	assert.Empty(t, ev.ClarityJustification)
	assert.Empty(t, ev.DetailJustification)
	assert.Equal(t, now.UnixMilli(), ev.Timestamp)
}
