// Package export flattens an evaluation store into the two download
// formats, writing to any io.Writer.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/evalstudio/eval-studio/internal/domain"
	"github.com/evalstudio/eval-studio/internal/store"
)

var csvHeader = []string{
	"User", "Sample Title", "Candidate ID", "Timestamp",
	"Clarity Agree", "Clarity Justification",
	"Completeness Agree", "Completeness Justification",
	"Consistency Agree", "Consistency Justification",
	"Accuracy Rating", "Accuracy Justification",
	"Detail Rating", "Detail Justification",
}

// CSVFilename returns the download filename for a user's tabular export.
func CSVFilename(user string) string {
	return "evaluation_" + strings.ToLower(user) + ".csv"
}

// WriteCSV writes one row per (sample, candidate) record, resolving sample
// titles against the live sample list. Titles of samples that no longer
// exist render as a "Sample {id}" placeholder.
func WriteCSV(w io.Writer, user string, samples []domain.Sample, s store.Store) error {
	titles := make(map[int]string, len(samples))
	for _, sample := range samples {
		titles[sample.ID] = sample.Title
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, sampleID := range sortedKeys(s) {
		title, ok := titles[sampleID]
		if !ok {
			title = fmt.Sprintf("Sample %d", sampleID)
		}

		byCandidate := s[sampleID]
		for _, candidateID := range sortedCandidateKeys(byCandidate) {
			ev := byCandidate[candidateID]
			row := []string{
				user,
				title,
				strconv.Itoa(candidateID),
				time.UnixMilli(ev.Timestamp).UTC().Format("2006-01-02T15:04:05.000Z07:00"),
				agreeToken(ev.ClarityAgree), ev.ClarityJustification,
				agreeToken(ev.CompletenessAgree), ev.CompletenessJustification,
				agreeToken(ev.ConsistencyAgree), ev.ConsistencyJustification,
				ratingToken(ev.AccuracyRating), ev.AccuracyJustification,
				ratingToken(ev.DetailRating), ev.DetailJustification,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// agreeToken renders the tri-state agreement flag as TRUE, FALSE or the
// empty string.
func agreeToken(agree *bool) string {
	if agree == nil {
		return ""
	}
	if *agree {
		return "TRUE"
	}
	return "FALSE"
}

func ratingToken(r *domain.Rating) string {
	if r == nil {
		return ""
	}
	return string(*r)
}

func sortedKeys(s store.Store) []int {
	keys := make([]int, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sortedCandidateKeys(m map[int]domain.UserEvaluation) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
