package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaeljabbour/letsyolo/internal/agents"
)

func init() {
	rootCmd.AddCommand(flagsCmd)
}

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Show the per-session autonomy flag for each agent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if jsonOutput {
			out := make(map[agents.Name]string)
			for _, d := range agents.All() {
				out[d.Name] = d.SessionFlag
			}
			return printJSON(w, out)
		}

		tw := newTable(w)
		fmt.Fprintln(tw, "AGENT\tPERSISTENT\tLAUNCH WITH")
		for _, d := range agents.All() {
			persistent := "no"
			if d.Persistent() {
				persistent = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s %s\n", d.Name, persistent, d.Binaries[0], d.SessionFlag)
		}
		return tw.Flush()
	},
}
