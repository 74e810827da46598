package dataset

import (
	"strings"

	"github.com/evalstudio/eval-studio/internal/domain"
	"github.com/evalstudio/eval-studio/pkg/stringsutil"
)

// StaticLoader derives sample and candidate references from a manifest.
// It performs no I/O: every reference is a path under the base URL, and
// resolution failures surface later as per-slot fallbacks.
type StaticLoader struct {
	manifest *Manifest
	baseURL  string
}

func NewStaticLoader(m *Manifest, baseURL string) *StaticLoader {
	return &StaticLoader{
		manifest: m,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// Load builds one sample per manifest entry, numbered 1..N in entry order,
// with candidates numbered 1..CandidateCount in folder order.
func (l *StaticLoader) Load() []domain.Sample {
	samples := make([]domain.Sample, 0, len(l.manifest.Entries))

	for i, e := range l.manifest.Entries {
		candidates := make([]domain.Candidate, 0, domain.CandidateCount)
		for cIdx, folder := range l.manifest.CandidateFolders {
			candidates = append(candidates, domain.Candidate{
				ID:       cIdx + 1,
				Label:    domain.CandidateLabel(cIdx),
				ImageURL: l.join(folder, imagesDir, e.Base+l.manifest.CandidateImageExt),
				JSONURL:  l.join(folder, jsonsDir, e.Base+judgementSuffix),
			})
		}

		samples = append(samples, domain.Sample{
			ID:             i + 1,
			Title:          stringsutil.TitleFromBase(e.Base),
			GroundTruthURL: l.join(l.manifest.GroundTruthRoot, imagesDir, e.Base+e.Ext),
			Candidates:     candidates,
		})
	}

	return samples
}

func (l *StaticLoader) join(parts ...string) string {
	return l.baseURL + "/" + strings.Join(parts, "/")
}
