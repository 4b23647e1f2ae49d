package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamild1996/tf2-bot-detector/pkg/rules"
)

var (
	// check flags
	checkChat       string
	checkNickname   string
	checkAvatarHash string
)

// staticPlayer is a one-off player built from command line flags.
type staticPlayer struct {
	name    string
	summary *rules.PlayerSummary
}

func (p *staticPlayer) DisplayName() string           { return p.name }
func (p *staticPlayer) Summary() *rules.PlayerSummary { return p.summary }

var checkCmd = &cobra.Command{
	Use:   "check NAME",
	Short: "Evaluate the merged rules against a single player",
	Long: `Evaluate every effective rule against a player described on the command line.

Examples:
  # Check a player by in-game name
  tf2bd check "CheaterBot"

  # Include a chat message they sent
  tf2bd check "CheaterBot" --chat "I use a hack"

  # Include profile data (enables personaname and avatar triggers)
  tf2bd check "CheaterBot" --nickname "cb" --avatar-hash fe57a...`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkChat, "chat", "",
		"Chat message the player sent")
	checkCmd.Flags().StringVar(&checkNickname, "nickname", "",
		"Profile nickname")
	checkCmd.Flags().StringVar(&checkAvatarHash, "avatar-hash", "",
		"Profile avatar fingerprint")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := newLogger()

	s, err := loadSettings()
	if err != nil {
		return err
	}

	list, err := newRuleList(ctx, s, log)
	if err != nil {
		return err
	}
	if err := list.Wait(ctx); err != nil {
		return err
	}

	player := &staticPlayer{name: args[0]}
	if checkNickname != "" || checkAvatarHash != "" {
		player.summary = &rules.PlayerSummary{
			Nickname:   checkNickname,
			AvatarHash: strings.ToLower(checkAvatarHash),
		}
	}

	fired := list.MatchChat(player, checkChat)
	if len(fired) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no rules matched %q (%d rules checked)\n", args[0], list.Len())
		return nil
	}

	for _, rule := range fired {
		fmt.Fprintf(cmd.OutOrStdout(), "matched: %s%s\n", rule.Description, formatActions(rule.Actions))
	}
	return nil
}

func formatActions(a rules.Actions) string {
	var parts []string
	if len(a.Mark) > 0 {
		parts = append(parts, "mark "+strings.Join(a.Mark, ","))
	}
	if len(a.TransientMark) > 0 {
		parts = append(parts, "transient-mark "+strings.Join(a.TransientMark, ","))
	}
	if len(a.Unmark) > 0 {
		parts = append(parts, "unmark "+strings.Join(a.Unmark, ","))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, "; ") + ")"
}
