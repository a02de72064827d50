package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaeljabbour/letsyolo/internal/config"
	"github.com/michaeljabbour/letsyolo/internal/userdata"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the letsyolo home directory",
	Long: `Create ~/.letsyolo (mode 0700). Set LETSYOLO_HOME to use another location.
Running it again leaves existing files alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolvePaths()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Initializing %s\n", tilde(p.home, p.root))
		if err := userdata.InitHome(w, p.root); err != nil {
			return fmt.Errorf("initializing home: %w", err)
		}
		if err := config.EnsureDir(); err != nil {
			return err
		}
		fmt.Fprintln(w, "\nNext: 'letsyolo keys setup' to store API keys, 'letsyolo enable --all' to turn on autonomy.")
		return nil
	},
}
