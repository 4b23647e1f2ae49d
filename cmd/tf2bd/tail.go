package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kamild1996/tf2-bot-detector/internal/consolelog"
	"github.com/kamild1996/tf2-bot-detector/internal/players"
	"github.com/kamild1996/tf2-bot-detector/pkg/rules"
)

var (
	// tail flags
	tailLogPath string
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Watch a TF2 console.log and report rule matches live",
	Long: `Watch a TF2 console.log file (written with -condebug), track the players it
mentions, and evaluate the merged moderation rules against every chat message
and status sweep.

Examples:
  # Use the log path from the settings file
  tf2bd tail

  # Watch an explicit log file
  tf2bd tail --log-path "~/.steam/steam/steamapps/common/Team Fortress 2/tf/console.log"`,
	RunE: runTailCmd,
}

func init() {
	tailCmd.Flags().StringVar(&tailLogPath, "log-path", "",
		"console.log path (overrides the settings file)")

	rootCmd.AddCommand(tailCmd)
}

func runTailCmd(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := newLogger()

	s, err := loadSettings()
	if err != nil {
		return err
	}

	logPath := tailLogPath
	if logPath == "" {
		logPath = s.TFLogPath
	}
	if logPath == "" {
		return fmt.Errorf("no console.log path: set tf2_log_path in the settings file or pass --log-path")
	}

	list, err := newRuleList(ctx, s, log)
	if err != nil {
		return err
	}

	watcher := consolelog.NewWatcher(logPath, log)
	events, errs, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}
	defer watcher.Close()

	tracker := players.NewTracker()
	log.Info("watching console log", "path", logPath, "rules", list.Len())

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			reportMatches(cmd, list, tracker, ev)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			log.Warn("console log error", "error", err)
		}
	}
}

func reportMatches(cmd *cobra.Command, list *rules.List, tracker *players.Tracker, ev consolelog.Event) {
	chatter := tracker.Apply(ev)

	switch ev.Type {
	case consolelog.EventChat:
		if chatter == nil {
			return
		}
		for _, rule := range list.MatchChat(chatter, ev.Message) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s%s\n",
				ev.PlayerName, rule.Description, formatActions(rule.Actions))
		}

	case consolelog.EventStatus:
		p := tracker.FindBySteamID(ev.SteamID)
		if p == nil {
			return
		}
		for _, rule := range list.MatchPlayer(p) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s%s\n",
				ev.SteamID, ev.PlayerName, rule.Description, formatActions(rule.Actions))
		}
	}
}
