package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michaeljabbour/letsyolo/internal/agents"
	"github.com/michaeljabbour/letsyolo/internal/userdata"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing directories and tighten permissions")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for agents, keys and shell setup",
	Long: `Run diagnostic checks: agent binaries, the letsyolo home directory and secrets
file permissions, whether the secrets file is safe to source, the shell hook, and
whether each agent's config file parses.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolvePaths()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		fmt.Fprintln(w, "Agents:")
		results := newProber(p.home).DetectAll(cmd.Context(), agents.All())
		installed := 0
		for _, r := range results {
			if !r.Installed {
				fmt.Fprintf(w, "  %s %s not found\n", markOff(), r.Agent.DisplayName)
				continue
			}
			installed++
			fmt.Fprintf(w, "  %s %s %s\n", markOK(), r.Agent.DisplayName, dim(orDash(r.Version)))
		}
		if installed == 0 {
			fmt.Fprintf(w, "  %s no supported agents found\n", markWarn())
		}
		fmt.Fprintln(w)

		report := userdata.Check(w, userdata.DoctorOptions{
			Home:  p.home,
			Root:  p.root,
			Shell: os.Getenv("SHELL"),
			Fix:   doctorFix,
		})

		fmt.Fprintf(w, "\n%d ok, %d warnings, %d failures", report.OK, report.Warnings, report.Failures)
		if report.Fixed > 0 {
			fmt.Fprintf(w, ", %d fixed", report.Fixed)
		}
		fmt.Fprintln(w)
		if !report.Healthy() {
			return fmt.Errorf("%d checks failed", report.Failures)
		}
		return nil
	},
}
