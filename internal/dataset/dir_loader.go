package dataset

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/evalstudio/eval-studio/internal/apperr"
	"github.com/evalstudio/eval-studio/internal/domain"
	"github.com/evalstudio/eval-studio/pkg/stringsutil"
)

// ErrNoData is reported when the ground-truth folder exists but holds no
// usable files. The caller keeps its prior dataset.
var ErrNoData = apperr.NewStructure("no files found in " + DefaultGroundTruthRoot + "/" + imagesDir)

// RefResolver turns a path inside the picked directory into a reference the
// presentation layer can display. The blob-URL primitive is an external
// collaborator; the default resolver emits local: pseudo-URLs.
type RefResolver func(path string) string

func localRef(path string) string { return "local:" + path }

// DirLoader walks a user-selected directory tree and cross-references
// same-named candidate images and judgment files per candidate folder.
// Missing folders, subfolders or files degrade to empty slots, never errors.
type DirLoader struct {
	folders  []string
	imageExt string
	resolve  RefResolver
}

type DirLoaderOpt func(*DirLoader)

func WithCandidateFolders(folders []string) DirLoaderOpt {
	return func(l *DirLoader) { l.folders = folders }
}

func WithRefResolver(r RefResolver) DirLoaderOpt {
	return func(l *DirLoader) { l.resolve = r }
}

func NewDirLoader(opts ...DirLoaderOpt) *DirLoader {
	l := &DirLoader{
		folders:  DefaultCandidateFolders(),
		imageExt: DefaultCandidateImageExt,
		resolve:  localRef,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load discovers one sample per non-hidden file in ground_truth/images and
// returns the list sorted by title, case-insensitive. The sort is load-bearing:
// it keeps navigation order independent of filesystem enumeration order.
func (l *DirLoader) Load(fsys fs.FS) ([]domain.Sample, error) {
	gtImages := DefaultGroundTruthRoot + "/" + imagesDir

	entries, err := fs.ReadDir(fsys, gtImages)
	if err != nil {
		return nil, apperr.NewStructureWrap("could not find '"+gtImages+"' folder", err)
	}

	var samples []domain.Sample
	id := 1
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		base := stringsutil.StripExtension(entry.Name())
		samples = append(samples, domain.Sample{
			ID:             id,
			Title:          stringsutil.TitleFromBase(base),
			GroundTruthURL: l.resolve(gtImages + "/" + entry.Name()),
			Candidates:     l.loadCandidates(fsys, base),
		})
		id++
	}

	if len(samples) == 0 {
		return nil, ErrNoData
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return strings.ToLower(samples[i].Title) < strings.ToLower(samples[j].Title)
	})

	slog.Info("Loaded local dataset", "samples", len(samples))
	return samples, nil
}

// loadCandidates tries folder/images/{base}.png and
// folder/jsons/{base}_comparison.json for each candidate folder. Every
// lookup is optional; absence leaves the slot empty.
func (l *DirLoader) loadCandidates(fsys fs.FS, base string) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(l.folders))

	for cIdx, folder := range l.folders {
		candidate := domain.Candidate{
			ID:    cIdx + 1,
			Label: domain.CandidateLabel(cIdx),
		}

		imgPath := folder + "/" + imagesDir + "/" + base + l.imageExt
		if fileExists(fsys, imgPath) {
			candidate.ImageURL = l.resolve(imgPath)
		}

		jsonPath := folder + "/" + jsonsDir + "/" + base + judgementSuffix
		if data, err := fs.ReadFile(fsys, jsonPath); err == nil {
			var j domain.LLMJudgement
			if err := json.Unmarshal(data, &j); err == nil {
				candidate.Judgement = &j
			} else {
				slog.Debug("Skipping malformed judgment file", "path", jsonPath, "error", err)
			}
		}

		candidates = append(candidates, candidate)
	}

	return candidates
}

func fileExists(fsys fs.FS, path string) bool {
	info, err := fs.Stat(fsys, path)
	return err == nil && !info.IsDir()
}
