// Package dataset loads samples into the in-memory model, either from a
// manifest of statically served paths or from a local directory tree.
package dataset

import (
	"fmt"
	"os"
	"strings"

	"github.com/evalstudio/eval-studio/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGroundTruthRoot   = "ground_truth"
	DefaultCandidateImageExt = ".png"
	imagesDir                = "images"
	jsonsDir                 = "jsons"
	judgementSuffix          = "_comparison.json"
)

// DefaultCandidateFolders returns the fixed candidate folder names, ordered
// by model label.
func DefaultCandidateFolders() []string {
	folders := make([]string, domain.CandidateCount)
	for i := range folders {
		folders[i] = "model_" + string(rune('A'+i))
	}
	return folders
}

// Entry names one ground-truth image by base name and extension.
type Entry struct {
	Base string `yaml:"base"`
	Ext  string `yaml:"ext"`
}

// Manifest describes a statically served dataset layout.
type Manifest struct {
	GroundTruthRoot  string   `yaml:"ground_truth_root"`
	CandidateFolders []string `yaml:"candidate_folders"`
	// CandidateImageExt applies to every candidate image regardless of the
	// ground-truth extension. The served layout only ships PNG model
	// outputs today; change this if that convention changes.
	CandidateImageExt string  `yaml:"candidate_image_ext"`
	Entries           []Entry `yaml:"entries"`
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest file: %w", err)
	}
	return ParseManifest(data)
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest YAML: %w", err)
	}
	if m.GroundTruthRoot == "" {
		m.GroundTruthRoot = DefaultGroundTruthRoot
	}
	if len(m.CandidateFolders) == 0 {
		m.CandidateFolders = DefaultCandidateFolders()
	}
	if m.CandidateImageExt == "" {
		m.CandidateImageExt = DefaultCandidateImageExt
	}
	if len(m.CandidateFolders) != domain.CandidateCount {
		return nil, fmt.Errorf("manifest needs exactly %d candidate folders, got %d", domain.CandidateCount, len(m.CandidateFolders))
	}
	if len(m.Entries) == 0 {
		return nil, fmt.Errorf("manifest has no entries")
	}
	for i, e := range m.Entries {
		if e.Base == "" {
			return nil, fmt.Errorf("entry at index %d has no base name", i)
		}
		if e.Ext == "" || !strings.HasPrefix(e.Ext, ".") {
			return nil, fmt.Errorf("entry %q has invalid extension %q", e.Base, e.Ext)
		}
	}
	return &m, nil
}
