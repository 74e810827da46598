package dataset

import (
	"testing"

	"github.com/evalstudio/eval-studio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticManifest(t *testing.T) *Manifest {
	t.Helper()
	m, err := ParseManifest([]byte(`
entries:
  - base: city-skyline
    ext: .jpg
  - base: forest_path
    ext: .png
`))
	require.NoError(t, err)
	return m
}

func TestStaticLoader_Load(t *testing.T) {
	samples := NewStaticLoader(staticManifest(t), "").Load()
	require.Len(t, samples, 2)

	first := samples[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "city skyline", first.Title)
	assert.Equal(t, "/ground_truth/images/city-skyline.jpg", first.GroundTruthURL)
	require.Len(t, first.Candidates, domain.CandidateCount)

	for i, c := range first.Candidates {
		assert.Equal(t, i+1, c.ID)
		assert.Equal(t, domain.CandidateLabel(i), c.Label)
		assert.Nil(t, c.Judgement, "judgments resolve lazily, not at load time")
	}

	// Candidate images are always .png even when ground truth is not.
	assert.Equal(t, "/model_A/images/city-skyline.png", first.Candidates[0].ImageURL)
	assert.Equal(t, "/model_A/jsons/city-skyline_comparison.json", first.Candidates[0].JSONURL)
	assert.Equal(t, "/model_E/images/city-skyline.png", first.Candidates[4].ImageURL)

	second := samples[1]
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, "forest path", second.Title)
	assert.Equal(t, "/ground_truth/images/forest_path.png", second.GroundTruthURL)
}

func TestStaticLoader_BaseURL(t *testing.T) {
	samples := NewStaticLoader(staticManifest(t), "https://cdn.example.com/ds/").Load()
	require.NotEmpty(t, samples)
	assert.Equal(t, "https://cdn.example.com/ds/ground_truth/images/city-skyline.jpg", samples[0].GroundTruthURL)
	assert.Equal(t, "https://cdn.example.com/ds/model_B/images/city-skyline.png", samples[0].Candidates[1].ImageURL)
}
