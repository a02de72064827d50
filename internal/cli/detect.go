package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaeljabbour/letsyolo/internal/agents"
	"github.com/michaeljabbour/letsyolo/internal/detect"
)

func init() {
	rootCmd.AddCommand(detectCmd)
}

type detectionJSON struct {
	Agent       agents.Name `json:"agent"`
	DisplayName string      `json:"display_name"`
	detect.Result
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Find installed coding agents",
	Long: `Probe every supported agent binary with its version flag and report which ones
are installed, where, and at what version. Nothing is cached between runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolvePaths()
		if err != nil {
			return err
		}
		results := newProber(p.home).DetectAll(cmd.Context(), agents.All())
		w := cmd.OutOrStdout()

		if jsonOutput {
			out := make([]detectionJSON, 0, len(results))
			for _, r := range results {
				out = append(out, detectionJSON{Agent: r.Agent.Name, DisplayName: r.Agent.DisplayName, Result: r.Result})
			}
			return printJSON(w, out)
		}

		tw := newTable(w)
		fmt.Fprintln(tw, "AGENT\tINSTALLED\tVERSION\tPATH")
		found := 0
		for _, r := range results {
			installed := "no"
			if r.Installed {
				installed = "yes"
				found++
			}
			path := r.Path
			if r.LinkTarget != "" {
				path += " -> " + tilde(p.home, r.LinkTarget)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Agent.Name, installed, orDash(r.Version), orDash(path))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(w, "\n%d of %d agents installed.\n", found, len(results))
		for _, r := range results {
			if !r.Installed {
				fmt.Fprintf(w, "  %s %s: %s\n", dim("install"), r.Agent.Name, r.Agent.InstallHint)
			}
		}
		return nil
	},
}
