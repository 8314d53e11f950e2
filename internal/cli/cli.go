// Package cli is the trackshelf command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/trackshelf/internal/app"
	"github.com/llehouerou/trackshelf/internal/config"
	"github.com/llehouerou/trackshelf/internal/errmsg"
	"github.com/llehouerou/trackshelf/internal/icons"
	"github.com/llehouerou/trackshelf/internal/logging"
)

// tableWidth is the width of track tables printed by list commands.
const tableWidth = 80

// Application holds what every command needs: the configuration, the
// logger and the session, opened once before the command runs.
type Application struct {
	configPath string
	dataDir    string
	debug      bool

	cfg      *config.Config
	log      *zap.Logger
	closeLog func() error
	session  *app.Session
}

// New creates an application with nothing opened yet.
func New() *Application {
	return &Application{}
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	a := New()
	root := a.RootCommand()
	err := root.Execute()
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// RootCommand builds the command tree.
func (a *Application) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "trackshelf",
		Short: "A personal track library with playlists and a playback queue",
		Long: `trackshelf keeps a duplicate-free library of tracks, named playlists
built from it, and a playback queue with shuffle, repeat and history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "configuration file (default ~/.config/trackshelf/config.toml)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "directory holding the library, queue and playlists")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "audit the library index and queue after every change")

	root.AddCommand(a.createLibraryCommand())
	root.AddCommand(a.createPlaylistCommand())
	root.AddCommand(a.createQueueCommand())

	return root
}

func (a *Application) open() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.debug {
		cfg.Debug = true
	}
	a.cfg = cfg
	icons.Init(cfg.Icons)

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	a.log, a.closeLog = log, closeLog

	session, err := app.Open(cfg, log)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	a.session = session
	log.Debug("Session opened", zap.String("dataDir", session.DataDir()))
	return nil
}

func (a *Application) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		return config.LoadFrom(a.configPath)
	}
	return config.Load()
}

// close flushes the session and releases the log file. Safe to call when
// nothing was opened.
func (a *Application) close() error {
	var errs []error
	if a.session != nil {
		errs = append(errs, a.session.Close())
		a.session = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	if a.closeLog != nil {
		errs = append(errs, a.closeLog())
		a.closeLog = nil
	}
	return errors.Join(errs...)
}

// fail turns err into a user-facing error for op.
func fail(op errmsg.Op, err error) error {
	return errors.New(errmsg.Format(op, err))
}

// failWith is fail with a subject, usually a name or a path.
func failWith(op errmsg.Op, subject string, err error) error {
	return errors.New(errmsg.FormatWith(op, subject, err))
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func printLine(w io.Writer, args ...any) {
	_, _ = fmt.Fprintln(w, args...)
}
