package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// writeJSON replaces path atomically: the data goes to a temp file in the
// same directory which is then renamed over the target.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op once renamed

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// readJSON decodes path into v. It returns false when the file is missing,
// unreadable or corrupt; the last two are logged.
func (m *Manager) readJSON(path string, v any) bool {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		m.log.Debug("No saved file", zap.String("path", path))
		return false
	}
	if err != nil {
		m.log.Warn("Cannot read saved file, starting empty", zap.String("path", path), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		m.log.Warn("Corrupt saved file, starting empty", zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}

func (m *Manager) save(name string, v any) error {
	if err := writeJSON(m.path(name), v); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
