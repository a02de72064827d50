package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/michaeljabbour/letsyolo/internal/agents"
	"github.com/michaeljabbour/letsyolo/internal/toggle"
)

var (
	enableAll  bool
	disableAll bool
)

func init() {
	enableCmd.Flags().BoolVar(&enableAll, "all", false, "Enable every installed agent")
	disableCmd.Flags().BoolVar(&disableAll, "all", false, "Disable every agent")
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

var enableCmd = &cobra.Command{
	Use:   "enable <agent...>",
	Short: "Turn on autonomy mode",
	Long: `Write each agent's "skip permission prompts" setting into its config file.
Only the documented keys are touched; the rest of the file is preserved.
Agents without a persistent setting report the per-session flag instead.`,
	Example: `  letsyolo enable claude codex
  letsyolo enable --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := selectAgents(args, enableAll)
		if err != nil {
			return err
		}
		p, err := resolvePaths()
		if err != nil {
			return err
		}
		outcomes := newEngine(p.home).EnableAll(cmd.Context(), defs)

		// With --all, agents that are not installed are skipped, not failed.
		if enableAll {
			for i, o := range outcomes {
				var nie *toggle.NotInstalledError
				if errors.As(o.Err, &nie) {
					outcomes[i].Err = nil
					outcomes[i].State.Message = "skipped: not installed"
				}
			}
		}
		return reportOutcomes(cmd.OutOrStdout(), outcomes)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <agent...>",
	Short: "Turn off autonomy mode",
	Long: `Remove the settings "letsyolo enable" writes. A value the user set by hand is
left alone. Works even when the agent has since been uninstalled.`,
	Example: `  letsyolo disable codex
  letsyolo disable --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := selectAgents(args, disableAll)
		if err != nil {
			return err
		}
		p, err := resolvePaths()
		if err != nil {
			return err
		}
		return reportOutcomes(cmd.OutOrStdout(), newEngine(p.home).DisableAll(defs))
	},
}

func selectAgents(args []string, all bool) ([]agents.Definition, error) {
	switch {
	case all && len(args) > 0:
		return nil, errors.New("pass agent names or --all, not both")
	case all:
		return agents.All(), nil
	case len(args) == 0:
		return nil, errors.New("name at least one agent or pass --all")
	default:
		return agents.ParseList(args)
	}
}

type outcomeJSON struct {
	toggle.State
	Error string `json:"error,omitempty"`
}

func reportOutcomes(w io.Writer, outcomes []toggle.Outcome) error {
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}

	if jsonOutput {
		out := make([]outcomeJSON, 0, len(outcomes))
		for _, o := range outcomes {
			j := outcomeJSON{State: o.State}
			if o.Err != nil {
				j.Error = o.Err.Error()
			}
			out = append(out, j)
		}
		if err := printJSON(w, out); err != nil {
			return err
		}
	} else {
		for _, o := range outcomes {
			switch {
			case o.Err != nil:
				fmt.Fprintf(w, "%s %s: %v\n", markFail(), o.Agent.Name, o.Err)
			case o.State.SessionOnly:
				fmt.Fprintf(w, "%s %s: %s\n", markWarn(), o.Agent.Name, o.State.Message)
			case o.State.Enabled:
				fmt.Fprintf(w, "%s %s: %s\n", markOK(), o.Agent.Name, o.State.Message)
			default:
				fmt.Fprintf(w, "%s %s: %s\n", markOff(), o.Agent.Name, o.State.Message)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d agents failed", failed, len(outcomes))
	}
	return nil
}
