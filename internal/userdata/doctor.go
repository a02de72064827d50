package userdata

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/michaeljabbour/letsyolo/internal/agents"
	"github.com/michaeljabbour/letsyolo/internal/configstore"
	"github.com/michaeljabbour/letsyolo/internal/platform"
	"github.com/michaeljabbour/letsyolo/internal/schema"
	"github.com/michaeljabbour/letsyolo/internal/secrets"
)

// DoctorOptions configures a health check run.
type DoctorOptions struct {
	Home  string // user's home directory
	Root  string // letsyolo home directory
	Shell string // $SHELL, used to pick a profile when none exist
	Fix   bool
}

// Report counts what a check run found. Problems that were fixed are not
// counted as failures.
type Report struct {
	OK       int
	Warnings int
	Failures int
	Fixed    int
}

// Healthy is true when nothing failed.
func (r Report) Healthy() bool { return r.Failures == 0 }

var (
	okMark   = color.New(color.FgGreen).Sprint("[ OK ]")
	missMark = color.New(color.FgRed).Sprint("[MISS]")
	warnMark = color.New(color.FgYellow).Sprint("[WARN]")
	failMark = color.New(color.FgRed, color.Bold).Sprint("[FAIL]")
	fixMark  = color.New(color.FgCyan).Sprint("[FIX ]")
)

type checker struct {
	w   io.Writer
	r   Report
	fix bool
}

func (c *checker) ok(format string, a ...any) {
	c.r.OK++
	fmt.Fprintf(c.w, "  %s %s\n", okMark, fmt.Sprintf(format, a...))
}

func (c *checker) warn(format string, a ...any) {
	c.r.Warnings++
	fmt.Fprintf(c.w, "  %s %s\n", warnMark, fmt.Sprintf(format, a...))
}

func (c *checker) miss(format string, a ...any) {
	c.r.Failures++
	fmt.Fprintf(c.w, "  %s %s\n", missMark, fmt.Sprintf(format, a...))
}

func (c *checker) fail(format string, a ...any) {
	c.r.Failures++
	fmt.Fprintf(c.w, "  %s %s\n", failMark, fmt.Sprintf(format, a...))
}

// fixed records a repair of a problem already counted as a failure.
func (c *checker) fixed(format string, a ...any) {
	c.r.Failures--
	c.r.Fixed++
	fmt.Fprintf(c.w, "  %s %s\n", fixMark, fmt.Sprintf(format, a...))
}

func (c *checker) hint(format string, a ...any) {
	fmt.Fprintf(c.w, "         %s\n", fmt.Sprintf(format, a...))
}

// Check runs every health check and prints one line per finding to w.
func Check(w io.Writer, opts DoctorOptions) Report {
	c := &checker{w: w, fix: opts.Fix}

	fmt.Fprintln(w, "Home directory:")
	c.checkRoot(opts.Root)

	fmt.Fprintln(w, "\nSecrets:")
	secretsPath := filepath.Join(opts.Root, SecretsFile)
	c.checkSecrets(secretsPath)

	fmt.Fprintln(w, "\nShell hook:")
	c.checkHook(opts.Home, opts.Shell, secretsPath)

	fmt.Fprintln(w, "\nAgent configs:")
	for _, def := range agents.All() {
		c.checkAgentConfig(opts.Home, def)
	}

	return c.r
}

func (c *checker) checkRoot(root string) {
	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		c.miss("%s does not exist", root)
		if !c.fix {
			c.hint("Run 'letsyolo doctor --fix' or 'letsyolo keys setup' to create it")
			return
		}
		if err := InitHome(io.Discard, root); err != nil {
			c.fail("could not create %s: %v", root, err)
			return
		}
		c.fixed("created %s (mode %04o)", root, DirPermSecure)
		return
	}
	if err != nil {
		c.fail("cannot stat %s: %v", root, err)
		return
	}
	if !info.IsDir() {
		c.fail("%s is not a directory", root)
		return
	}
	c.checkPerm(root, info, DirPermSecure)
}

func (c *checker) checkPerm(path string, info fs.FileInfo, want os.FileMode) {
	if !platform.PermTooOpen(info, want) {
		c.ok("%s (mode %04o)", path, info.Mode().Perm())
		return
	}
	c.fail("%s has mode %04o, want %04o", path, info.Mode().Perm(), want)
	if !c.fix {
		c.hint("Run: chmod %o %s", want, path)
		return
	}
	if err := platform.Chmod(path, want); err != nil {
		c.fail("could not chmod %s: %v", path, err)
		return
	}
	c.fixed("set %s to %04o", path, want)
}

func (c *checker) checkSecrets(path string) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		c.warn("%s does not exist (no keys stored yet)", path)
		c.hint("Run 'letsyolo keys setup' to store API keys")
		return
	}
	if err != nil {
		c.fail("cannot stat %s: %v", path, err)
		return
	}
	c.checkPerm(path, info, FilePermSecure)

	if err := secrets.Validate(path); err != nil {
		c.fail("%s cannot be sourced safely: %v", path, err)
		c.hint("Rewrite it with 'letsyolo keys setup'")
		return
	}
	c.ok("%s parses as shell assignments", path)
}

func (c *checker) checkHook(home, shell, secretsPath string) {
	// The hook text hardcodes ~/.letsyolo; a relocated home needs manual
	// wiring.
	if filepath.Clean(secretsPath) != filepath.Join(home, ".letsyolo", SecretsFile) {
		c.warn("LETSYOLO_HOME is set; source %s from your profile yourself", secretsPath)
		return
	}

	targets := secrets.HookTargets(home, shell)
	var hooked []string
	for _, t := range targets {
		ok, err := secrets.HasHook(t)
		if err != nil {
			c.warn("cannot read %s: %v", t, err)
			continue
		}
		if ok {
			hooked = append(hooked, t)
		}
	}
	if len(hooked) > 0 {
		for _, h := range hooked {
			c.ok("%s loads the secrets file", h)
		}
		return
	}

	c.miss("no shell profile loads %s", secretsPath)
	if !c.fix {
		c.hint("Run 'letsyolo keys hook' to add it")
		return
	}
	changed, err := secrets.InstallHooks(targets)
	if err != nil {
		c.fail("%v", err)
		return
	}
	c.fixed("added hook to %v", changed)
}

func (c *checker) checkAgentConfig(home string, def agents.Definition) {
	if !def.Persistent() {
		return
	}
	path := def.ConfigFile(home)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		c.ok("%s: %s not present (defaults)", def.Name, path)
		return
	}

	var doc map[string]any
	var err error
	switch def.Format {
	case agents.FormatJSON:
		doc, err = configstore.ReadObject(path)
	case agents.FormatTOML:
		doc, err = configstore.ReadFlat(path)
	}
	if err != nil {
		c.fail("%s: %v", def.Name, err)
		c.hint("letsyolo will not modify this file until it parses")
		return
	}

	res, err := schema.Validate(def.Schema, doc)
	if err != nil {
		c.fail("%s: %v", def.Name, err)
		return
	}
	if !res.Valid {
		c.fail("%s: %s: %v", def.Name, path, res.Err())
		return
	}
	c.ok("%s: %s", def.Name, path)
}
