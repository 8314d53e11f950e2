// Package state persists the library, the queue and the recall history as
// JSON files, and owns the sqlite database used by the playlist store.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"go.uber.org/zap"

	dbutil "github.com/llehouerou/trackshelf/internal/db"
	"github.com/llehouerou/trackshelf/internal/queue"
	"github.com/llehouerou/trackshelf/internal/track"
)

const (
	appName         = "trackshelf"
	dbFileName      = "trackshelf.db"
	libraryFileName = "library.json"
	queueFileName   = "queue.json"
	historyFileName = "history.json"
	saveDebounce    = 500 * time.Millisecond
)

// Manager owns the data directory.
type Manager struct {
	dir string
	db  *sql.DB
	log *zap.Logger

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *pendingQueue
}

type pendingQueue struct {
	snapshot queue.Snapshot
	history  []track.Track
}

// DefaultDir returns $XDG_DATA_HOME/trackshelf.
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

// Open prepares dir (DefaultDir when empty) and opens the database.
func Open(dir string, log *zap.Logger) (*Manager, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := dbutil.Open(filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	log.Debug("State opened", zap.String("dir", dir))
	return &Manager{dir: dir, db: db, log: log}, nil
}

// Close flushes a deferred queue save and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	var flushErr error
	if pending != nil {
		flushErr = m.saveQueueAndHistory(*pending)
	}

	if err := m.db.Close(); err != nil {
		return err
	}
	return flushErr
}

// Dir returns the data directory.
func (m *Manager) Dir() string {
	return m.dir
}

// DB returns the database handle.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// SaveQueueDeferred schedules a queue and history save. Repeated calls
// within the debounce window collapse into one write; Close flushes.
func (m *Manager) SaveQueueDeferred(s queue.Snapshot, history []track.Track) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &pendingQueue{snapshot: s, history: history}

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			if err := m.saveQueueAndHistory(*pending); err != nil {
				m.log.Warn("Deferred queue save failed", zap.Error(err))
			}
		}
	})
}

func (m *Manager) saveQueueAndHistory(p pendingQueue) error {
	if err := m.SaveQueue(p.snapshot); err != nil {
		return err
	}
	return m.SaveHistory(p.history)
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.dir, name)
}
