// Package workspace owns one user's evaluation session: the loaded dataset,
// the navigation position and the persisted evaluation store.
package workspace

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/evalstudio/eval-studio/internal/apperr"
	"github.com/evalstudio/eval-studio/internal/dataset"
	"github.com/evalstudio/eval-studio/internal/domain"
	"github.com/evalstudio/eval-studio/internal/export"
	"github.com/evalstudio/eval-studio/internal/judge"
	"github.com/evalstudio/eval-studio/internal/nav"
	"github.com/evalstudio/eval-studio/internal/store"
	"github.com/evalstudio/eval-studio/internal/store/persist"
	"github.com/google/uuid"
)

// View is the current (sample, candidate) selection with its evaluation
// record, as handed to the presentation layer.
type View struct {
	Sample         domain.Sample         `json:"sample"`
	Candidate      domain.Candidate      `json:"candidate"`
	Evaluation     domain.UserEvaluation `json:"evaluation"`
	SampleIndex    int                   `json:"sampleIndex"`
	CandidateIndex int                   `json:"candidateIndex"`
	AtEnd          bool                  `json:"atEnd"`
	LocalMode      bool                  `json:"localMode"`
}

// SampleStatus is a sidebar entry: sample identity plus completeness.
type SampleStatus struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Complete bool   `json:"complete"`
}

// Workspace is the per-user session. Switching users means constructing a
// fresh Workspace; nothing leaks between instances.
type Workspace struct {
	id   uuid.UUID
	user string

	mu         sync.Mutex
	samples    []domain.Sample
	generation uint64
	localMode  bool
	controller *nav.Controller
	evals      store.Store

	persister persist.Persister
	fetcher   *judge.Fetcher
	dirLoader *dataset.DirLoader
	now       func() time.Time
}

// New builds a workspace for the user over the given dataset, loading any
// previously persisted evaluations for that identity.
func New(ctx context.Context, user string, samples []domain.Sample, p persist.Persister, f *judge.Fetcher) (*Workspace, error) {
	if user == "" {
		return nil, apperr.NewValidation("user name is required")
	}
	if len(samples) == 0 {
		return nil, apperr.NewValidation("dataset is empty")
	}

	data, err := p.Load(ctx, persist.Key(user))
	if err != nil {
		return nil, fmt.Errorf("load evaluation store: %w", err)
	}

	w := &Workspace{
		id:         uuid.New(),
		user:       user,
		samples:    samples,
		generation: 1,
		controller: nav.NewController(len(samples)),
		evals:      store.Decode(data),
		persister:  p,
		fetcher:    f,
		dirLoader:  dataset.NewDirLoader(),
		now:        time.Now,
	}

	slog.Info("Workspace opened", "user", user, "samples", len(samples), "records", w.evals.Count())
	return w, nil
}

func (w *Workspace) ID() uuid.UUID { return w.id }

func (w *Workspace) User() string { return w.user }

// Current returns the active view. In non-local mode it first resolves the
// active candidate's judgment lazily; the result is attached to the live
// dataset only if the dataset was not replaced while the fetch was in
// flight.
func (w *Workspace) Current(ctx context.Context) View {
	w.mu.Lock()
	sIdx, cIdx := w.controller.Position()
	sample := w.samples[sIdx]
	candidate := sample.Candidates[cIdx]
	gen := w.generation
	local := w.localMode
	w.mu.Unlock()

	if !local && candidate.JSONURL != "" && candidate.Judgement == nil {
		if j, ok := w.fetcher.Fetch(ctx, sample.ID, candidate.ID, candidate.JSONURL); ok {
			w.attachJudgement(gen, sample.ID, candidate.ID, j)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	sIdx, cIdx = w.controller.Position()
	sample = w.samples[sIdx]
	candidate = sample.Candidates[cIdx]
	return View{
		Sample:         sample,
		Candidate:      candidate,
		Evaluation:     w.evals.Get(sample.ID, candidate.ID, w.now()),
		SampleIndex:    sIdx,
		CandidateIndex: cIdx,
		AtEnd:          w.controller.AtEnd(),
		LocalMode:      w.localMode,
	}
}

// attachJudgement writes a fetched payload into the live dataset, dropping
// results that raced with a dataset replacement.
func (w *Workspace) attachJudgement(gen uint64, sampleID, candidateID int, j *domain.LLMJudgement) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.generation != gen || w.localMode {
		slog.Debug("Discarding stale judgment fetch", "sampleId", sampleID, "candidateId", candidateID)
		return
	}
	for i := range w.samples {
		if w.samples[i].ID != sampleID {
			continue
		}
		for c := range w.samples[i].Candidates {
			cand := &w.samples[i].Candidates[c]
			if cand.ID == candidateID && cand.Judgement == nil {
				cand.Judgement = j
			}
		}
		return
	}
}

// SubmitEvaluation replaces the whole record for the pair and persists the
// full store. The timestamp is stamped here, on replacement.
func (w *Workspace) SubmitEvaluation(ctx context.Context, sampleID, candidateID int, ev domain.UserEvaluation) error {
	if candidateID < 1 || candidateID > domain.CandidateCount {
		return apperr.NewValidation(fmt.Sprintf("candidate id must be 1..%d", domain.CandidateCount))
	}
	if ev.AccuracyRating != nil && !ev.AccuracyRating.Valid() {
		return apperr.NewValidation("unknown accuracy rating")
	}
	if ev.DetailRating != nil && !ev.DetailRating.Valid() {
		return apperr.NewValidation("unknown detail rating")
	}

	w.mu.Lock()
	ev.Timestamp = w.now().UnixMilli()
	w.evals = w.evals.Replace(sampleID, candidateID, ev)
	data, err := w.evals.Encode()
	w.mu.Unlock()
	if err != nil {
		return err
	}

	if err := w.persister.Save(ctx, persist.Key(w.user), data); err != nil {
		return fmt.Errorf("persist evaluation store: %w", err)
	}
	return nil
}

// Evaluation returns the stored record for the pair, or a computed empty
// default.
func (w *Workspace) Evaluation(sampleID, candidateID int) domain.UserEvaluation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.evals.Get(sampleID, candidateID, w.now())
}

// Samples lists sidebar entries with completeness flags.
func (w *Workspace) Samples() []SampleStatus {
	w.mu.Lock()
	defer w.mu.Unlock()

	statuses := make([]SampleStatus, 0, len(w.samples))
	for _, s := range w.samples {
		statuses = append(statuses, SampleStatus{
			ID:       s.ID,
			Title:    s.Title,
			Complete: w.evals.IsComplete(s.ID),
		})
	}
	return statuses
}

// LoadLocalDataset walks the given tree and, on success, replaces the whole
// dataset, resets navigation and switches to local mode. On failure the
// prior dataset stays active.
func (w *Workspace) LoadLocalDataset(fsys fs.FS) (int, error) {
	samples, err := w.dirLoader.Load(fsys)
	if err != nil {
		return 0, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.samples = samples
	w.generation++
	w.localMode = true
	w.controller.Reset(len(samples))
	return len(samples), nil
}

func (w *Workspace) Next() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.controller.Next()
}

func (w *Workspace) Prev() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.controller.Prev()
}

func (w *Workspace) SelectSample(idx int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if idx < 0 || idx >= len(w.samples) {
		return apperr.NewNotFound(fmt.Sprintf("no sample at index %d", idx))
	}
	w.controller.SelectSample(idx)
	return nil
}

func (w *Workspace) SelectCandidate(idx int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if idx < 0 || idx >= domain.CandidateCount {
		return apperr.NewNotFound(fmt.Sprintf("no candidate at index %d", idx))
	}
	w.controller.SelectCandidate(idx)
	return nil
}

// ExportCSV writes the tabular export for this user.
func (w *Workspace) ExportCSV(out io.Writer) error {
	w.mu.Lock()
	samples := w.samples
	evals := w.evals
	user := w.user
	w.mu.Unlock()
	return export.WriteCSV(out, user, samples, evals)
}

// ExportJSON writes the structured export for this user.
func (w *Workspace) ExportJSON(out io.Writer) error {
	w.mu.Lock()
	evals := w.evals
	w.mu.Unlock()
	return export.WriteJSON(out, evals)
}
