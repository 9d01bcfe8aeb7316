package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"civitaid/internal/actions"
	"civitaid/internal/common/fsutil"
	"civitaid/internal/config"
)

const defaultConfigPath = "~/.civitaid/config.yaml"

// app carries the state shared by all commands; it is filled in by the root
// command's PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string

	cfg config.Config
	log zerolog.Logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "civitaid",
		Short:         "Civitai model metadata manager",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", envStr("CIVITAID_CONFIG", defaultConfigPath), "Config file (.yaml, .json or .toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", envStr("CIVITAID_LOG_LEVEL", ""), "Log level: debug|info|warn|error (defaults to the config file's log_level)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.init()
	}

	root.AddCommand(
		newServeCmd(a),
		newScanCmd(a),
		newCreateInfoCmd(a),
		newFixNamesCmd(a),
		newModelCmd(a),
		newVersionCmd(a),
		newHashCmd(a),
		newImagesCmd(a),
		newTriggerCmd(a),
		newLoraMetaCmd(a),
		newShortcutsCmd(a),
		newSettingsCmd(a),
	)
	return root
}

// init loads the config file and sets up the logger. A missing config file
// is not an error; defaults are used and settings save creates it.
func (a *app) init() error {
	path, err := fsutil.ExpandHome(a.configPath)
	if err != nil {
		return err
	}
	a.configPath = path
	cfg, err := config.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		cfg = config.Default()
	default:
		return fmt.Errorf("load config %s: %w", path, err)
	}
	a.cfg = cfg
	level := a.logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	a.log = newLogger(level)
	return nil
}

func (a *app) service() (*actions.Service, error) {
	return actions.New(a.configPath, a.cfg, a.log)
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitCSV splits a comma separated list, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
