package corpus

import (
	"fmt"

	"github.com/fairhire/biasprobe/internal/resume"
)

// WriteResumes persists a generated corpus atomically.
func WriteResumes(path string, corpus []*resume.Resume) error {
	return writeJSONL(path, corpus)
}

// ReadResumes loads a corpus and validates each entry, so downstream stages
// never operate on hand-edited resumes with impossible combinations.
func ReadResumes(path string) ([]*resume.Resume, error) {
	items, err := readJSONL[*resume.Resume](path)
	if err != nil {
		return nil, err
	}
	for i, r := range items {
		if err := r.JobContext.Validate(); err != nil {
			return nil, fmt.Errorf("%s: resume %d (%s): %w", path, i+1, r.ID, err)
		}
		if err := r.Demographics.Validate(r.JobContext.Track); err != nil {
			return nil, fmt.Errorf("%s: resume %d (%s): %w", path, i+1, r.ID, err)
		}
	}
	return items, nil
}
