// Package artifact persists pipeline handoff tables. Every table is written
// twice, as a row-oriented CSV and a companion JSON document, under a name
// carrying a UTC-sortable timestamp. Discovery of "the current input"
// consults the stage manifest first and falls back to a filename scan.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotFound marks a missing required input artifact. Fatal for the stage
// that needed it; callers branch with errors.Is.
var ErrNotFound = errors.New("artifact not found")

// Store reads and writes artifacts within one stage directory.
type Store struct {
	dir    string
	logger zerolog.Logger
	now    func() time.Time
}

func NewStore(dir string, logger zerolog.Logger) *Store {
	return &Store{dir: dir, logger: logger, now: time.Now}
}

// Dir returns the stage directory this store manages.
func (s *Store) Dir() string {
	return s.dir
}

// Stamp returns the artifact timestamp suffix for the current time.
func (s *Store) Stamp() string {
	return s.now().UTC().Format("20060102_150405")
}

// Latest resolves the current artifact for a stem and extension. The
// manifest pointer wins when it names an existing file; otherwise the
// lexicographically greatest matching filename is taken, which both sorts
// the embedded timestamps and breaks equal-timestamp ties on the rest of
// the name.
func (s *Store) Latest(stem, ext string) (string, error) {
	if m, err := s.readManifest(); err == nil {
		if name, ok := m.Artifacts[stem+ext]; ok {
			path := filepath.Join(s.dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: no %s%s under %s", ErrNotFound, stem, ext, s.dir)
		}
		return "", fmt.Errorf("read artifact dir %s: %w", s.dir, err)
	}

	var names []string
	prefix := stem + "_"
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ext) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: no %s%s under %s", ErrNotFound, stem, ext, s.dir)
	}
	sort.Strings(names)
	return filepath.Join(s.dir, names[len(names)-1]), nil
}

func (s *Store) ensureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

// writeFile writes data under name and records it in the manifest keyed by
// stem+ext.
func (s *Store) writeFile(stem, ext, name string, data []byte) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", fmt.Errorf("create artifact dir %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", path, err)
	}
	if err := s.updateManifest(stem+ext, name); err != nil {
		return "", err
	}
	s.logger.Info().Str("path", path).Msg("artifact written")
	return path, nil
}
