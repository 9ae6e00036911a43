package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-todo/config"
	"github.com/lixenwraith/vi-todo/core"
	"github.com/lixenwraith/vi-todo/editor"
	"github.com/lixenwraith/vi-todo/input"
	"github.com/lixenwraith/vi-todo/store"
	"github.com/lixenwraith/vi-todo/terminal"
	"github.com/lixenwraith/vi-todo/todo"
)

var errNotTerminal = errors.New("vi-todo needs an interactive terminal on stdin and stdout")

var rootCmd = &cobra.Command{
	Use:   "vi-todo [file]",
	Short: "Edit a hierarchical checklist in the terminal",
	Long: `Edit a hierarchical checklist in the terminal.

Opens file (or default_file from the config) and starts the editor.
A missing file starts from an empty list and is created on save.

Keys:
  h/l/j/k   out / in / down / up
  J/K       next / previous visible row
  space     toggle completion
  i / I     insert task / group under the selection
  r         rename
  d         delete
  w / W     save / load
  g         jump to root
  ?         show bindings
  q         quit (saves to the current file when save_on_quit is set)`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEditor,
}

var (
	configPath  string
	debugFlag   bool
	noAltScreen bool
	depthFlag   int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/vi-todo/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write logs under ./logs")
	rootCmd.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "Draw on the main screen instead of the alternate screen")
	rootCmd.PersistentFlags().IntVar(&depthFlag, "depth", 0, "Indentation depth of the root line")
}

// loadSettings resolves the config file and applies flag overrides
func loadSettings(cmd *cobra.Command) (config.Config, *input.KeyTable, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}

	if cmd.Flags().Changed("no-alt-screen") {
		cfg.AltScreen = !noAltScreen
	}
	if cmd.Flags().Changed("depth") {
		if depthFlag < 0 {
			return cfg, nil, fmt.Errorf("--depth must be >= 0, got %d", depthFlag)
		}
		cfg.Depth = depthFlag
	}

	override, err := input.LoadKeyConfig(cfg.Keys)
	if err != nil {
		return cfg, nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}

// expandHome replaces a leading ~/ with the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// openTree loads file, or starts a fresh list when there is no file yet
func openTree(st *store.Store, file, rootLabel string) (*todo.Item, error) {
	if file == "" || !store.Exists(file) {
		return todo.NewGroup(rootLabel), nil
	}
	return st.Load(file)
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, keys, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logFile, log := setupLogging(debugFlag, cfg.LogLevel)
	if logFile != nil {
		defer logFile.Close()
	}

	file := cfg.DefaultFile
	if len(args) == 1 {
		file = args[0]
	}
	file = expandHome(file)

	if !terminal.IsTerminal(int(os.Stdin.Fd())) || !terminal.IsTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	st := store.New(log)
	root, err := openTree(st, file, cfg.RootLabel)
	if err != nil {
		return err
	}

	sess, err := terminal.NewSession(os.Stdout, os.Stdin)
	if err != nil {
		return err
	}
	defer sess.Close()
	core.SetCrashSession(sess)
	defer core.SetCrashSession(nil)

	stop := closeOnSignal(sess, log)
	defer stop()

	change := sess.Begin().Canonical(false).Echo(false).MinReadBlock(true)
	if cfg.AltScreen {
		change.AltScreen(true)
	}
	if err := change.Commit(); err != nil {
		// Keep going in whatever mode is active
		log.Warn().Err(err).Msg("entering interactive mode")
	}

	profile := termenv.ANSI
	if termenv.EnvNoColor() {
		profile = termenv.Ascii
	}

	ed := editor.New(sess, root,
		editor.WithLogger(log),
		editor.WithStore(st),
		editor.WithKeyTable(keys),
		editor.WithFile(file),
		editor.WithDepth(cfg.Depth),
		editor.WithSaveOnQuit(cfg.SaveOnQuit),
		editor.WithProfile(profile),
		editor.WithWidth(func() int {
			w, _ := terminal.Size(sess.Fd())
			return w
		}),
	)
	return ed.Run()
}

// closeOnSignal restores the terminal and exits on SIGINT/SIGTERM/SIGHUP.
// Interrupt characters still generate signals in interactive mode, which
// would otherwise skip the deferred Close.
func closeOnSignal(sess *terminal.Session, log zerolog.Logger) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})

	core.Go(func() {
		select {
		case sig := <-sigs:
			log.Info().Stringer("signal", sig).Msg("terminating")
			sess.Close()
			code := 1
			if s, ok := sig.(syscall.Signal); ok {
				code = 128 + int(s)
			}
			os.Exit(code)
		case <-done:
		}
	})

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
