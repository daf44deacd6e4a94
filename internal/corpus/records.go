package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fairhire/biasprobe/internal/scoring"
)

// ReadRecords loads previously persisted score records. A missing file is an
// empty result: the first scoring run has no checkpoint to resume from.
func ReadRecords(path string) ([]scoring.ScoreRecord, error) {
	records, err := readJSONL[scoring.ScoreRecord](path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return records, err
}

// RecordWriter appends score records to a JSONL file, flushing each record
// to disk as it arrives. It implements scoring.RecordSink, so an interrupted
// run keeps everything scored before the interruption.
type RecordWriter struct {
	f   *os.File
	enc *json.Encoder
}

// OpenRecordWriter opens path for appending, creating it and its directory
// as needed.
func OpenRecordWriter(path string) (*RecordWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open records file: %w", err)
	}
	return &RecordWriter{f: f, enc: json.NewEncoder(f)}, nil
}

// Append writes one record and syncs it to disk.
func (w *RecordWriter) Append(rec scoring.ScoreRecord) error {
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := w.f.Sync(); err != nil {
		return fmt.Errorf("sync records file: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *RecordWriter) Close() error {
	return w.f.Close()
}
