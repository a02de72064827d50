package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaeljabbour/letsyolo/internal/agents"
	"github.com/michaeljabbour/letsyolo/internal/toggle"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusJSON struct {
	toggle.State
	Installed bool   `json:"installed"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status [agent...]",
	Short: "Show each agent's autonomy setting",
	Long: `Report whether autonomy is on for each agent (or just the named ones), where the
setting lives, and the per-session flag that does the same thing for one run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := agents.All()
		if len(args) > 0 {
			var err error
			if defs, err = agents.ParseList(args); err != nil {
				return err
			}
		}
		p, err := resolvePaths()
		if err != nil {
			return err
		}

		detections := newProber(p.home).DetectAll(cmd.Context(), defs)
		outcomes := newEngine(p.home).ReadAll(defs)
		w := cmd.OutOrStdout()

		if jsonOutput {
			out := make([]statusJSON, 0, len(outcomes))
			for i, o := range outcomes {
				s := statusJSON{State: o.State, Installed: detections[i].Installed, Version: detections[i].Version}
				if o.Err != nil {
					s.Error = o.Err.Error()
				}
				out = append(out, s)
			}
			return printJSON(w, out)
		}

		failed := 0
		for i, o := range outcomes {
			d := detections[i]
			installed := dim("not installed")
			if d.Installed {
				installed = orDash(d.Version)
			}
			var mark string
			switch {
			case o.Err != nil:
				mark = markFail()
				failed++
			case o.State.Enabled:
				mark = markOK()
			case o.State.SessionOnly:
				mark = markWarn()
			default:
				mark = markOff()
			}
			fmt.Fprintf(w, "%s %s (%s)\n", mark, bold(o.Agent.DisplayName), installed)
			if o.Err != nil {
				fmt.Fprintf(w, "       %v\n", o.Err)
				continue
			}
			fmt.Fprintf(w, "       %s\n", o.State.Message)
		}
		if failed > 0 {
			return fmt.Errorf("could not read settings for %d agent(s)", failed)
		}
		return nil
	},
}
