package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/michaeljabbour/letsyolo/internal/branding"
	"github.com/michaeljabbour/letsyolo/internal/config"
	"github.com/michaeljabbour/letsyolo/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	jsonOutput bool
	logLevel   string
	noColor    bool
)

// logger is the root logger for this invocation, set up in PersistentPreRunE.
var logger = logging.Nop()

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print machine-readable JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: "+strings.Join(logging.LevelNames(), ", "))
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` finds the coding agents installed on this machine (Claude Code, Codex,
Copilot, Gemini, Amp), switches their autonomy settings on or off, and manages
the API keys they need.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgErr := config.Load()

		level := logLevel
		if level == "" {
			level = config.LogLevel()
		}
		if _, err := logging.ParseLevel(level); err != nil {
			return err
		}
		if noColor || !config.Color() {
			color.NoColor = true
		}

		logger = logging.New(logging.Console(cmd.ErrOrStderr(), color.NoColor), level)
		if cfgErr != nil {
			logger.Warn().Err(cfgErr).Msg("ignoring config file")
		}
		return nil
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// PrintError prints err the way the CLI reports failures.
func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
}
