// Package nav tracks the active (sample, candidate) position and the rules
// for moving through the fixed candidate sequence.
package nav

import "github.com/evalstudio/eval-studio/internal/domain"

// Controller holds zero-based sample and candidate indexes, bounded by the
// live sample count and the fixed candidate count.
type Controller struct {
	sampleIdx   int
	candIdx     int
	sampleCount int
}

func NewController(sampleCount int) *Controller {
	return &Controller{sampleCount: sampleCount}
}

// Position returns the current (sample index, candidate index).
func (c *Controller) Position() (int, int) {
	return c.sampleIdx, c.candIdx
}

// Next advances to the next candidate, rolling over to the next sample's
// first candidate at the end of the sequence. At the final candidate of the
// final sample it is a no-op.
func (c *Controller) Next() {
	if c.candIdx < domain.CandidateCount-1 {
		c.candIdx++
		return
	}
	if c.sampleIdx < c.sampleCount-1 {
		c.sampleIdx++
		c.candIdx = 0
	}
}

// Prev retreats one candidate, floored at the first candidate. It never
// crosses a sample boundary backward.
func (c *Controller) Prev() {
	if c.candIdx > 0 {
		c.candIdx--
	}
}

// SelectSample jumps to a sample and resets the candidate index. Out of
// range indexes are ignored.
func (c *Controller) SelectSample(idx int) {
	if idx < 0 || idx >= c.sampleCount {
		return
	}
	c.sampleIdx = idx
	c.candIdx = 0
}

// SelectCandidate switches the candidate tab without touching the sample.
func (c *Controller) SelectCandidate(idx int) {
	if idx < 0 || idx >= domain.CandidateCount {
		return
	}
	c.candIdx = idx
}

// AtEnd reports whether the position is the final candidate of the final
// sample, where Next has no effect.
func (c *Controller) AtEnd() bool {
	return c.sampleIdx == c.sampleCount-1 && c.candIdx == domain.CandidateCount-1
}

// Reset rebinds the controller to a new sample count and returns to the
// first sample's first candidate.
func (c *Controller) Reset(sampleCount int) {
	c.sampleCount = sampleCount
	c.sampleIdx = 0
	c.candIdx = 0
}
