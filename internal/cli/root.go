// Package cli provides the command-line interface for projectboard.
package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/projectboard/internal/board"
	"github.com/existflow/projectboard/internal/config"
	"github.com/existflow/projectboard/internal/logger"
	"github.com/existflow/projectboard/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// launchTUIFunc runs the interactive board; tests replace it
var launchTUIFunc = launchTUI

// isTerminalFunc reports whether stdout is a terminal; tests replace it
var isTerminalFunc = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// app carries what every command needs once PersistentPreRunE has run
type app struct {
	cfg *config.Config
	log *logger.Logger

	logLevel   string
	logFile    string
	logConsole bool
	dataDir    string
	storage    string
	ephemeral  bool
}

// NewRootCommand builds the full command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "board",
		Short: "projectboard - projects, tasks and progress in your terminal",
		Long: `projectboard keeps a list of projects, each with members and tasks.
Tasks move through new, in-progress and done; each project shows how much
of it is done. Everything is saved locally after every change.

Run 'board' without arguments to launch the interactive TUI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminalFunc() {
				return a.runList(cmd, "", "")
			}

			b, err := a.openBoard(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				_ = b.Close()
				a.log.Info("Board closed")
			}()

			a.log.Info("Launching TUI")
			if err := launchTUIFunc(b, a.log); err != nil {
				a.log.Error("TUI error", logger.F("error", err))
				return fmt.Errorf("failed to run TUI: %w", err)
			}
			a.log.Info("TUI exited normally")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.log.Info("projectboard exiting", logger.F("command", cmd.Name()))
			_ = a.log.Close()
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Path to log file")
	root.PersistentFlags().BoolVar(&a.logConsole, "log-console", false, "Enable console logging")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "Data directory (default $PROJECTBOARD_HOME or ~/.projectboard)")
	root.PersistentFlags().StringVar(&a.storage, "storage", "", "Storage backend for this run (sqlite, file)")
	root.PersistentFlags().BoolVar(&a.ephemeral, "ephemeral", false, "Keep state in memory only for this run")

	root.AddCommand(newAddCmd(a))
	root.AddCommand(newEditCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newDoneCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newCommentCmd(a))
	root.AddCommand(newProjectCmd(a))
	root.AddCommand(newContextCmd(a))
	root.AddCommand(newClearCmd(a))
	root.AddCommand(newChecklistCmd(a))

	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// setup loads config, applies flag overrides and opens the logger
func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.dataDir != "" {
		cfg, err = config.LoadFrom(a.dataDir)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		dir, dirErr := config.Dir()
		if dirErr != nil {
			return dirErr
		}
		if a.dataDir != "" {
			dir = a.dataDir
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using defaults\n", err)
		cfg = config.DefaultConfig(dir)
	}

	// Logging flags are remembered in config.yaml
	configChanged := false
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
		configChanged = true
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = a.logFile
		configChanged = true
	}
	if cmd.Flags().Changed("log-console") {
		cfg.LogConsole = a.logConsole
		configChanged = true
	}
	if configChanged {
		if err := cfg.Save(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to save config: %v\n", err)
		}
	}

	// Storage flags only apply to this run
	if a.storage != "" {
		cfg.Storage = a.storage
	}
	if a.ephemeral {
		cfg.Storage = "memory"
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(cfg.LogLevel)
	logConfig.FilePath = cfg.LogFile
	logConfig.Console = cfg.LogConsole

	log, err := logger.New(logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.cfg = cfg
	a.log = log
	a.log.Info("projectboard started", logger.F("command", cmd.Name()))
	return nil
}

func launchTUI(b *board.Board, log *logger.Logger) error {
	p := tea.NewProgram(tui.NewModel(b, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
