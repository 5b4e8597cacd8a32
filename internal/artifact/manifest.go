package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const manifestName = "manifest.json"

// Manifest is the explicit "current version" pointer for a stage
// directory, replacing inference from filesystem timestamps. Keys are
// stem+extension (e.g. "organizations_cleaned.csv").
type Manifest struct {
	RunID     string            `json:"run_id"`
	UpdatedAt time.Time         `json:"updated_at"`
	Artifacts map[string]string `json:"artifacts"`
}

func (s *Store) readManifest() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, manifestName))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest in %s: %w", s.dir, err)
	}
	if m.Artifacts == nil {
		m.Artifacts = map[string]string{}
	}
	return &m, nil
}

// updateManifest points key at name. The manifest is rewritten through a
// temp file and rename so readers never observe a partial document.
func (s *Store) updateManifest(key, name string) error {
	m, err := s.readManifest()
	if err != nil {
		m = &Manifest{
			RunID:     uuid.NewString(),
			Artifacts: map[string]string{},
		}
	}
	m.Artifacts[key] = name
	m.UpdatedAt = s.now().UTC()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, manifestName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create manifest temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close manifest temp file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, manifestName)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}
