// Package judge lazily resolves pre-computed judgment documents for
// candidates served from the static layout.
package judge

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/evalstudio/eval-studio/internal/domain"
)

type slotKey struct {
	SampleID    int
	CandidateID int
}

// Fetcher retrieves judgment documents at most once per (sample, candidate)
// slot. Successful payloads are cached by slot, so repeated triggers for an
// already-resolved slot never reach the network. Retrieval and parse
// failures are swallowed; the slot simply stays without a judgment.
type Fetcher struct {
	client *http.Client

	mu    sync.Mutex
	cache map[slotKey]*domain.LLMJudgement
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client: client,
		cache:  make(map[slotKey]*domain.LLMJudgement),
	}
}

// Fetch returns the judgment for the given slot, consulting the cache
// before issuing any request. The second return value is false when no
// judgment could be resolved.
func (f *Fetcher) Fetch(ctx context.Context, sampleID, candidateID int, url string) (*domain.LLMJudgement, bool) {
	if url == "" {
		return nil, false
	}

	key := slotKey{SampleID: sampleID, CandidateID: candidateID}

	f.mu.Lock()
	if j, ok := f.cache[key]; ok {
		f.mu.Unlock()
		return j, true
	}
	f.mu.Unlock()

	j, ok := f.retrieve(ctx, url)
	if !ok {
		return nil, false
	}

	f.mu.Lock()
	f.cache[key] = j
	f.mu.Unlock()

	return j, true
}

// Enrich attaches a resolved judgment to the candidate at candIdx in place.
// It is a no-op when the candidate has no judgment reference or already
// carries a payload.
func (f *Fetcher) Enrich(ctx context.Context, sample *domain.Sample, candIdx int) {
	if sample == nil || candIdx < 0 || candIdx >= len(sample.Candidates) {
		return
	}
	candidate := &sample.Candidates[candIdx]
	if candidate.JSONURL == "" || candidate.Judgement != nil {
		return
	}
	if j, ok := f.Fetch(ctx, sample.ID, candidate.ID, candidate.JSONURL); ok {
		candidate.Judgement = j
	}
}

func (f *Fetcher) retrieve(ctx context.Context, url string) (*domain.LLMJudgement, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Debug("Skipping judgment fetch", "url", url, "error", err)
		return nil, false
	}

	res, err := f.client.Do(req)
	if err != nil {
		slog.Debug("Judgment fetch failed", "url", url, "error", err)
		return nil, false
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		slog.Debug("Judgment not available", "url", url, "status", res.StatusCode)
		return nil, false
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		slog.Debug("Judgment read failed", "url", url, "error", err)
		return nil, false
	}

	var j domain.LLMJudgement
	if err := json.Unmarshal(body, &j); err != nil {
		slog.Debug("Judgment payload malformed", "url", url, "error", err)
		return nil, false
	}

	return &j, true
}
