// Package store persists waitlist signups to an append-only NDJSON log.
//
// The log directory is resolved by attempt on every append: the primary
// directory is tried first and the fallback directory only when creating
// or writing into the primary fails. A valid signup is never dropped while
// either directory is writable.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/unbounded/waitlist/internal/metrics"
	"github.com/unbounded/waitlist/internal/model"
)

const (
	// DefaultFilename is the log file name inside the data directory.
	DefaultFilename = "waitlist.jsonl"

	// DefaultPrimaryDir is relative to the working directory.
	DefaultPrimaryDir = "data"

	// fallbackDirName is joined onto os.TempDir() when no fallback is configured.
	fallbackDirName = "waitlist-data"

	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrNoWritableDir is returned when neither directory accepted the write.
var ErrNoWritableDir = errors.New("no writable data directory")

// Options configures a FileStore.
type Options struct {
	PrimaryDir  string
	FallbackDir string
	Filename    string
}

// FileStore appends signup records to a newline-delimited JSON file.
// It keeps no open handle and no lock between calls.
type FileStore struct {
	dirs     []string
	filename string
	logger   *slog.Logger
	metrics  metrics.Recorder
	now      func() time.Time
}

// NewFileStore creates a FileStore. Empty options fall back to defaults.
func NewFileStore(opts Options, logger *slog.Logger, recorder metrics.Recorder) *FileStore {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}

	primary := opts.PrimaryDir
	if primary == "" {
		primary = DefaultPrimaryDir
	}
	fallback := opts.FallbackDir
	if fallback == "" {
		fallback = DefaultFallbackDir()
	}
	filename := opts.Filename
	if filename == "" {
		filename = DefaultFilename
	}

	dirs := []string{primary}
	if filepath.Clean(fallback) != filepath.Clean(primary) {
		dirs = append(dirs, fallback)
	}

	return &FileStore{
		dirs:     dirs,
		filename: filename,
		logger:   logger.With("component", "store.file"),
		metrics:  recorder,
		now:      time.Now,
	}
}

// DefaultFallbackDir returns the temporary-directory based fallback.
func DefaultFallbackDir() string {
	return filepath.Join(os.TempDir(), fallbackDirName)
}

// Dirs returns the candidate directories in the order they are tried.
func (s *FileStore) Dirs() []string {
	return append([]string(nil), s.dirs...)
}

// Append writes signup as one JSON line and returns the file it landed in.
func (s *FileStore) Append(ctx context.Context, signup *model.Signup) (string, error) {
	line, err := json.Marshal(signup)
	if err != nil {
		return "", fmt.Errorf("marshal signup: %w", err)
	}
	line = append(line, '\n')

	start := s.now()
	defer func() {
		s.metrics.ObserveAppendDuration(s.now().Sub(start))
	}()

	var errs []error
	for i, dir := range s.dirs {
		path := filepath.Join(dir, s.filename)
		if err := appendLine(dir, path, line); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", dir, err))
			s.logger.WarnContext(ctx, "data directory not writable",
				"dir", dir,
				"error", err,
			)
			continue
		}

		if i > 0 {
			s.metrics.IncStorageFallback()
			s.logger.InfoContext(ctx, "signup written to fallback directory", "dir", dir)
		}
		return path, nil
	}

	s.metrics.IncStorageFailure()
	return "", fmt.Errorf("%w: %w", ErrNoWritableDir, errors.Join(errs...))
}

// Ping reports whether at least one candidate directory accepts files.
// It is used by the readiness probe and never touches the signup log.
func (s *FileStore) Ping(ctx context.Context) error {
	var errs []error
	for _, dir := range s.dirs {
		if err := probeDir(dir); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", dir, err))
			continue
		}
		return nil
	}
	return fmt.Errorf("%w: %w", ErrNoWritableDir, errors.Join(errs...))
}

// appendLine creates dir if needed and appends line with a single write.
// O_APPEND makes the kernel position each write at end of file, so a
// short line from concurrent requests is not interleaved.
func appendLine(dir, path string, line []byte) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("write log: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close log: %w", err)
	}
	return nil
}

func probeDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
