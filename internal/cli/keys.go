package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/michaeljabbour/letsyolo/internal/agents"
	"github.com/michaeljabbour/letsyolo/internal/platform"
	"github.com/michaeljabbour/letsyolo/internal/secrets"
	"github.com/michaeljabbour/letsyolo/internal/userdata"
)

var (
	keysSet       []string
	keysHookPrint bool
)

func init() {
	keysSetupCmd.Flags().StringArrayVar(&keysSet, "set", nil, "Store NAME=VALUE without prompting (repeatable; empty VALUE removes)")
	keysHookCmd.Flags().BoolVar(&keysHookPrint, "print", false, "Print the hook instead of installing it")
	keysCmd.AddCommand(keysStatusCmd)
	keysCmd.AddCommand(keysScanCmd)
	keysCmd.AddCommand(keysSetupCmd)
	keysCmd.AddCommand(keysHookCmd)
	keysCmd.AddCommand(keysEditCmd)
	rootCmd.AddCommand(keysCmd)
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage agent API keys",
	Long: `Store the API keys your agents need in ~/.letsyolo/secrets.env (mode 0600) and
load them from your shell profile.`,
}

type keyJSON struct {
	EnvVar string `json:"env_var"`
	Agent  string `json:"agent"`
	Set    bool   `json:"set"`
	Masked string `json:"masked,omitempty"`
	Source string `json:"source,omitempty"`
}

var keysStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which keys are stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolvePaths()
		if err != nil {
			return err
		}
		stored, err := newStore(p).Load()
		if err != nil {
			return err
		}

		var rows []keyJSON
		for _, k := range agents.APIKeys() {
			row := keyJSON{EnvVar: k.EnvVar, Agent: string(k.Agent)}
			if v := stored[k.EnvVar]; v != "" {
				row.Set, row.Masked, row.Source = true, secrets.Mask(v), secrets.SourceSecretsFile
			}
			rows = append(rows, row)
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, rows)
		}

		fmt.Fprintf(w, "Secrets file: %s\n\n", tilde(p.home, p.secrets))
		for _, r := range rows {
			if r.Set {
				fmt.Fprintf(w, "%s %-18s %s\n", markOK(), r.EnvVar, r.Masked)
			} else {
				fmt.Fprintf(w, "%s %-18s %s\n", markMiss(), r.EnvVar, dim("not stored"))
			}
		}

		hooked := false
		for _, t := range secrets.HookTargets(p.home, os.Getenv("SHELL")) {
			if ok, _ := secrets.HasHook(t); ok {
				hooked = true
				break
			}
		}
		if !hooked {
			fmt.Fprintf(w, "\n%s no shell profile loads the secrets file; run 'letsyolo keys hook'\n", markWarn())
		}
		return nil
	},
}

var keysScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Look for keys in the environment and shell dotfiles",
	Long: `Search the process environment, the secrets file and common dotfiles (.zshrc,
.bashrc, .profile, .env, fish config, ...) for known API keys. The first place a
key is found wins. Nothing is written; use 'letsyolo keys setup' to save.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolvePaths()
		if err != nil {
			return err
		}
		found := newScanner(p).Scan()

		var rows []keyJSON
		for _, k := range agents.APIKeys() {
			row := keyJSON{EnvVar: k.EnvVar, Agent: string(k.Agent)}
			if f, ok := found[k.EnvVar]; ok {
				row.Set, row.Masked, row.Source = true, secrets.Mask(f.Value), tilde(p.home, f.Source)
			}
			rows = append(rows, row)
		}
		w := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(w, rows)
		}

		tw := newTable(w)
		fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.EnvVar, orDash(r.Masked), orDash(r.Source))
		}
		return tw.Flush()
	},
}

var keysSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Store API keys interactively",
	Long: `Walk through every known API key. Keys found by 'letsyolo keys scan' are offered
(masked) and saved only if you keep them. Use --set NAME=VALUE to store keys
without prompting.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolvePaths()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		store := newStore(p)

		if len(keysSet) > 0 {
			values, err := secrets.ParseSetFlags(keysSet)
			if err != nil {
				return err
			}
			if err := store.Apply(values); err != nil {
				return fmt.Errorf("saving keys: %w", err)
			}
			for _, name := range slices.Sorted(maps.Keys(values)) {
				if v := values[name]; v == "" {
					fmt.Fprintf(w, "%s removed %s\n", markOK(), name)
				} else {
					fmt.Fprintf(w, "%s stored %s = %s\n", markOK(), name, secrets.Mask(v))
				}
			}
			return nil
		}

		prompter := secrets.NewTermPrompter(stdin, w)
		if !prompter.Interactive() {
			return secrets.ErrNotInteractive
		}
		if err := userdata.InitHome(w, p.root); err != nil {
			return err
		}
		setup := &secrets.Setup{
			Store:    store,
			Scanner:  newScanner(p),
			Prompter: prompter,
			Out:      w,
			Home:     p.home,
		}
		res, err := setup.Run()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\nSaved %d, unchanged %d, skipped %d.\n", len(res.Saved), len(res.Unchanged), len(res.Skipped))
		if len(res.Saved) > 0 {
			fmt.Fprintf(w, "Run 'letsyolo keys hook' so new shells pick them up.\n")
		}
		return nil
	},
}

var keysHookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Load the secrets file from your shell profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if keysHookPrint {
			fmt.Fprint(w, secrets.Hook)
			return nil
		}
		p, err := resolvePaths()
		if err != nil {
			return err
		}
		targets := secrets.HookTargets(p.home, os.Getenv("SHELL"))
		changed, err := secrets.InstallHooks(targets)
		if err != nil {
			return err
		}
		changedSet := make(map[string]bool, len(changed))
		for _, c := range changed {
			changedSet[c] = true
		}
		for _, t := range targets {
			if changedSet[t] {
				fmt.Fprintf(w, "%s added hook to %s\n", markOK(), tilde(p.home, t))
			} else {
				fmt.Fprintf(w, "  [SKIP] %s already loads the secrets file\n", tilde(p.home, t))
			}
		}
		return nil
	},
}

// openEditor is replaced by tests.
var openEditor = userdata.OpenEditor

var keysEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the secrets file in $VISUAL or $EDITOR",
	Long: `Open ~/.letsyolo/secrets.env in your editor. Afterwards the file is set back to
mode 0600 and checked: it must contain only plain export NAME=value lines with
no command or variable expansion.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolvePaths()
		if err != nil {
			return err
		}
		if _, err := os.Stat(p.secrets); errors.Is(err, fs.ErrNotExist) {
			if err := newStore(p).Write(nil); err != nil {
				return err
			}
		}
		if err := openEditor(p.secrets); err != nil {
			return err
		}
		if err := platform.Chmod(p.secrets, secrets.FilePerm); err != nil {
			return fmt.Errorf("restoring permissions on %s: %w", p.secrets, err)
		}
		if err := secrets.Validate(p.secrets); err != nil {
			return fmt.Errorf("%s is not safe to source: %w", tilde(p.home, p.secrets), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s looks good\n", markOK(), tilde(p.home, p.secrets))
		return nil
	},
}
