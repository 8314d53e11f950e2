// Package app wires the library index, the playback queue, the playlist
// store and persistence into a Session, the context object every command
// receives.
package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/trackshelf/internal/config"
	"github.com/llehouerou/trackshelf/internal/library"
	"github.com/llehouerou/trackshelf/internal/playlists"
	"github.com/llehouerou/trackshelf/internal/queue"
	"github.com/llehouerou/trackshelf/internal/state"
)

// ErrTrackNotFound is returned when a title/artist pair is not in the library.
var ErrTrackNotFound = errors.New("track not found in library")

// Session owns the library, queue, playlists and their persistence.
// It is not safe for concurrent use.
type Session struct {
	cfg   *config.Config
	log   *zap.Logger
	store *state.Manager

	library   *library.Index
	queue     *queue.Queue
	playlists *playlists.Playlists

	deferSaves bool
}

// Open loads the saved state from cfg.DataDir.
func Open(cfg *config.Config, log *zap.Logger) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	store, err := state.Open(cfg.DataDir, log)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:       cfg,
		log:       log,
		store:     store,
		library:   library.FromTracks(store.LoadLibrary()),
		queue:     newQueue(cfg.Queue),
		playlists: playlists.New(store.DB()),
	}
	s.queue.Restore(store.LoadQueue())
	s.queue.History().Restore(store.LoadHistory())

	log.Debug("Session opened",
		zap.Int("library", s.library.Len()),
		zap.Int("queue", s.queue.Len()),
		zap.Int("history", s.queue.History().Len()))

	s.audit()
	return s, nil
}

func newQueue(cfg config.QueueConfig) *queue.Queue {
	return queue.New(
		queue.WithSeed(cfg.ShuffleSeed),
		queue.WithHistoryLimit(cfg.HistoryLimit),
	)
}

// Close flushes pending writes and closes the database.
func (s *Session) Close() error {
	return s.store.Close()
}

// DeferSaves coalesces queue writes, for interactive use where mutations
// come in bursts. Close flushes the last one.
func (s *Session) DeferSaves() {
	s.deferSaves = true
}

// Config returns the session configuration.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Queue exposes the playback queue for read access. Mutate it through the
// session so changes are persisted.
func (s *Session) Queue() *queue.Queue {
	return s.queue
}

// Playlists exposes the playlist store.
func (s *Session) Playlists() *playlists.Playlists {
	return s.playlists
}

// DataDir returns the directory holding the saved files.
func (s *Session) DataDir() string {
	return s.store.Dir()
}

// audit runs the structural checks in debug mode. A failure means a bug in
// the index or the queue, so it panics.
func (s *Session) audit() {
	if !s.cfg.Debug {
		return
	}
	if err := s.library.Check(); err != nil {
		panic(fmt.Sprintf("library index corrupted: %v", err))
	}
	if err := s.queue.Check(); err != nil {
		panic(fmt.Sprintf("playback queue corrupted: %v", err))
	}
}
