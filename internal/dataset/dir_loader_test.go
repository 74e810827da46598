package dataset

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/evalstudio/eval-studio/internal/apperr"
	"github.com/evalstudio/eval-studio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func judgementJSON() []byte {
	return []byte(`{
		"Clarity": {"rating": "High", "justification": "crisp edges"},
		"Completeness": {"rating": "Medium", "justification": "missing roof"},
		"Consistency": {"rating": "High", "justification": "matches palette"}
	}`)
}

func validTree() fstest.MapFS {
	return fstest.MapFS{
		"ground_truth/images/zebra_crossing.jpg":       {Data: []byte("gt1")},
		"ground_truth/images/apple-orchard.PNG":        {Data: []byte("gt2")},
		"ground_truth/images/.DS_Store":                {Data: []byte("junk")},
		"model_A/images/zebra_crossing.png":            {Data: []byte("a1")},
		"model_A/jsons/zebra_crossing_comparison.json": {Data: judgementJSON()},
		"model_A/images/apple-orchard.png":             {Data: []byte("a2")},
		"model_B/images/apple-orchard.png":             {Data: []byte("b2")},
		"model_B/jsons/apple-orchard_comparison.json":  {Data: []byte("{not json")},
	}
}

func TestDirLoader_Load(t *testing.T) {
	samples, err := NewDirLoader().Load(validTree())
	require.NoError(t, err)

	// Two non-hidden ground-truth files, sorted by title ascending.
	require.Len(t, samples, 2)
	assert.Equal(t, "apple orchard", samples[0].Title)
	assert.Equal(t, "zebra crossing", samples[1].Title)

	for _, s := range samples {
		assert.Len(t, s.Candidates, domain.CandidateCount)
		assert.NotEmpty(t, s.GroundTruthURL)
	}

	zebra := samples[1]
	assert.Equal(t, "local:ground_truth/images/zebra_crossing.jpg", zebra.GroundTruthURL)
	assert.Equal(t, "local:model_A/images/zebra_crossing.png", zebra.Candidates[0].ImageURL)
	require.NotNil(t, zebra.Candidates[0].Judgement)
	assert.Equal(t, "High", zebra.Candidates[0].Judgement.Clarity.Rating)
	assert.Equal(t, "missing roof", zebra.Candidates[0].Judgement.Completeness.Justification)
}

func TestDirLoader_MissingCandidateDegradesSlotOnly(t *testing.T) {
	samples, err := NewDirLoader().Load(validTree())
	require.NoError(t, err)

	zebra := samples[1]
	// model_B has no zebra image, model_C..E do not exist at all.
	assert.Empty(t, zebra.Candidates[1].ImageURL)
	assert.Nil(t, zebra.Candidates[1].Judgement)
	for _, c := range zebra.Candidates[2:] {
		assert.Empty(t, c.ImageURL)
		assert.Nil(t, c.Judgement)
	}
	// Sibling slot of the same sample stays intact.
	assert.NotEmpty(t, zebra.Candidates[0].ImageURL)
}

func TestDirLoader_MalformedJudgementSwallowed(t *testing.T) {
	samples, err := NewDirLoader().Load(validTree())
	require.NoError(t, err)

	apple := samples[0]
	assert.NotEmpty(t, apple.Candidates[1].ImageURL)
	assert.Nil(t, apple.Candidates[1].Judgement, "broken JSON degrades to no judgment")
}

func TestDirLoader_GroundTruthMissing(t *testing.T) {
	_, err := NewDirLoader().Load(fstest.MapFS{
		"model_A/images/a.png": {Data: []byte("x")},
	})
	require.Error(t, err)

	var se *apperr.StructureError
	assert.True(t, errors.As(err, &se))
	assert.Contains(t, err.Error(), "ground_truth/images")
}

func TestDirLoader_EmptyGroundTruth(t *testing.T) {
	_, err := NewDirLoader().Load(fstest.MapFS{
		"ground_truth/images/.hidden": {Data: []byte("x")},
	})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestDirLoader_NameWithoutExtension(t *testing.T) {
	samples, err := NewDirLoader().Load(fstest.MapFS{
		"ground_truth/images/noext": {Data: []byte("x")},
	})
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, "noext", samples[0].Title)
}

func TestDirLoader_CaseInsensitiveSort(t *testing.T) {
	samples, err := NewDirLoader().Load(fstest.MapFS{
		"ground_truth/images/Banana.png": {Data: []byte("1")},
		"ground_truth/images/apple.png":  {Data: []byte("2")},
		"ground_truth/images/Cherry.png": {Data: []byte("3")},
	})
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, "apple", samples[0].Title)
	assert.Equal(t, "Banana", samples[1].Title)
	assert.Equal(t, "Cherry", samples[2].Title)
}

func TestDirLoader_CustomResolver(t *testing.T) {
	loader := NewDirLoader(WithRefResolver(func(path string) string {
		return "blob://" + path
	}))
	samples, err := loader.Load(validTree())
	require.NoError(t, err)
	assert.Equal(t, "blob://ground_truth/images/apple-orchard.PNG", samples[0].GroundTruthURL)
}
