package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamild1996/tf2-bot-detector/internal/settings"
	"github.com/kamild1996/tf2-bot-detector/pkg/rules"
)

var (
	// persistent flags
	settingsPath string
	cfgDir       string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "tf2bd",
	Short: "Detect and mark disruptive TF2 players with moderation rules",
	Long: `tf2bd evaluates layered moderation rule documents against live player data.

Rule documents are merged from three trust tiers inside the configuration
directory:

  rules.json           your own rules (never auto-updated)
  rules.official.json  the curated official rules (auto-updated when allowed)
  rules.*.json         any number of third-party rule files

Run "tf2bd check" to evaluate the merged rules against a single player, or
"tf2bd tail" to watch a TF2 console.log and report matches live.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "",
		"Settings file (default: "+settings.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&cfgDir, "cfg-dir", "",
		"Configuration directory (overrides the settings file)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
}

// newLogger builds the process logger from the persistent flags.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadSettings resolves the effective settings, applying flag overrides.
func loadSettings() (*settings.Settings, error) {
	path := settingsPath
	if path == "" {
		path = settings.DefaultPath()
	}

	s, err := settings.Load(path)
	if err != nil {
		return nil, err
	}
	if cfgDir != "" {
		s.ConfigDir = cfgDir
	}
	return s, nil
}

// newRuleList loads the tiered rule set per the effective settings.
func newRuleList(ctx context.Context, s *settings.Settings, log *slog.Logger) (*rules.List, error) {
	rules.SetLogger(log)

	return rules.NewList(ctx,
		rules.WithDir(s.ConfigDir),
		rules.WithOfficial(s.IsOfficial()),
		rules.WithFetcher(s.Fetcher()),
		rules.WithLogger(log),
	)
}
