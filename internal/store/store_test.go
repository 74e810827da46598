package store

import (
	"testing"
	"time"

	"github.com/evalstudio/eval-studio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func ratingPtr(r domain.Rating) *domain.Rating { return &r }

func sampleRecord(ts int64) domain.UserEvaluation {
	return domain.UserEvaluation{
		ClarityAgree:          boolPtr(true),
		ClarityJustification:  "matches the reference",
		CompletenessAgree:     boolPtr(false),
		AccuracyRating:        ratingPtr(domain.RatingPartially),
		AccuracyJustification: "minor artifacts",
		Timestamp:             ts,
	}
}

func TestStore_GetDefaultsToEmptyRecord(t *testing.T) {
	s := New()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	ev := s.Get(1, 1, now)
	assert.Nil(t, ev.ClarityAgree)
	assert.Equal(t, now.UnixMilli(), ev.Timestamp)

	// The default is computed, not stored.
	assert.Empty(t, s)
}

func TestStore_ReplaceIsIsolated(t *testing.T) {
	now := time.Now()
	s := New()
	s = s.Replace(1, 1, sampleRecord(100))
	s = s.Replace(1, 2, sampleRecord(200))
	s = s.Replace(2, 1, sampleRecord(300))

	rec := sampleRecord(999)
	next := s.Replace(1, 2, rec)

	// Read of the written pair returns exactly the new record.
	assert.Equal(t, rec, next.Get(1, 2, now))

	// Every other pair is unchanged.
	assert.Equal(t, int64(100), next.Get(1, 1, now).Timestamp)
	assert.Equal(t, int64(300), next.Get(2, 1, now).Timestamp)

	// The prior version of the store is untouched.
	assert.Equal(t, int64(200), s.Get(1, 2, now).Timestamp)
}

func TestStore_IsComplete(t *testing.T) {
	s := New()
	for c := 1; c <= 4; c++ {
		s = s.Replace(1, c, domain.NewEmptyEvaluation(time.Now()))
	}
	assert.False(t, s.IsComplete(1), "four records is incomplete")

	s = s.Replace(1, 5, domain.NewEmptyEvaluation(time.Now()))
	assert.True(t, s.IsComplete(1), "five all-null records is complete")

	assert.False(t, s.IsComplete(2), "unknown sample is incomplete")
}

func TestStore_Count(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.Count())
	s = s.Replace(1, 1, sampleRecord(1))
	s = s.Replace(1, 2, sampleRecord(2))
	s = s.Replace(9, 5, sampleRecord(3))
	assert.Equal(t, 3, s.Count())
}

func TestCodec_RoundTrip(t *testing.T) {
	s := New()
	s = s.Replace(1, 1, sampleRecord(1700000000000))
	s = s.Replace(1, 3, domain.NewEmptyEvaluation(time.UnixMilli(1700000001000)))
	s = s.Replace(4, 5, sampleRecord(1700000002000))

	data, err := s.Encode()
	require.NoError(t, err)

	got := Decode(data)
	assert.Equal(t, s, got)
}

func TestDecode_CorruptDataIsEmptyStore(t *testing.T) {
	assert.Empty(t, Decode(nil))
	assert.Empty(t, Decode([]byte("")))
	assert.Empty(t, Decode([]byte("{broken")))
	assert.Empty(t, Decode([]byte(`"a string"`)))
	assert.Empty(t, Decode([]byte("null")))
}
