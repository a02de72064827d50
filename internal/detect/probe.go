package detect

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/sourcegraph/conc/iter"

	"github.com/michaeljabbour/letsyolo/internal/agents"
	"github.com/michaeljabbour/letsyolo/internal/logging"
	"github.com/michaeljabbour/letsyolo/internal/platform"
)

// DefaultTimeout bounds each version probe and path lookup.
const DefaultTimeout = 5 * time.Second

// Result is what a probe learned about one agent.
type Result struct {
	Installed bool   `json:"installed"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
	// Semver is the normalized semantic version found in Version, if any.
	Semver string `json:"semver,omitempty"`
	// LinkTarget is where Path points when it is a symlink.
	LinkTarget string `json:"link_target,omitempty"`
}

// AgentResult pairs a definition with its detection result.
type AgentResult struct {
	Agent agents.Definition
	Result
}

// Prober runs version probes against located candidates.
type Prober struct {
	Locator *Locator
	Runner  Runner
	Timeout time.Duration
	GOOS    string
	Log     *logging.Logger
}

// NewProber returns a Prober that executes real processes.
func NewProber(loc *Locator, timeout time.Duration, log *logging.Logger) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		Locator: loc,
		Runner:  ExecRunner{},
		Timeout: timeout,
		GOOS:    runtime.GOOS,
		Log:     log.Sub("detect"),
	}
}

// Detect tries each name's candidates in order and returns the first that
// runs. A result with Installed=false means nothing answered; detection
// itself never fails.
func (p *Prober) Detect(ctx context.Context, names []string, versionFlag string) Result {
	for _, name := range names {
		for _, cand := range p.Locator.Candidates(name) {
			out, ok := p.try(ctx, cand, versionFlag)
			if !ok {
				continue
			}
			res := Result{
				Installed: true,
				Path:      cand,
				Version:   firstLine(out),
			}
			if !filepath.IsAbs(cand) {
				res.Path = p.resolve(ctx, cand)
			}
			res.Semver = ExtractSemver(res.Version)
			if filepath.IsAbs(res.Path) {
				res.LinkTarget = platform.LinkTarget(res.Path)
			}
			p.log().Debug().Str("binary", name).Str("path", res.Path).Str("version", res.Version).Msg("detected")
			return res
		}
	}
	return Result{}
}

// DetectAll probes every definition concurrently. Results are in the same
// order as defs.
func (p *Prober) DetectAll(ctx context.Context, defs []agents.Definition) []AgentResult {
	return iter.Map(defs, func(d *agents.Definition) AgentResult {
		return AgentResult{Agent: *d, Result: p.Detect(ctx, d.Binaries, d.VersionFlag)}
	})
}

// try runs one candidate. A non-zero exit still counts when the process
// printed something; a timeout or spawn failure does not.
func (p *Prober) try(ctx context.Context, cand, flag string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	out, err := p.Runner.Run(ctx, cand, flag)
	if ctx.Err() != nil {
		p.log().Debug().Str("candidate", cand).Dur("timeout", p.timeout()).Msg("probe timed out")
		return "", false
	}
	if err == nil {
		return string(out), true
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && strings.TrimSpace(string(out)) != "" {
		p.log().Debug().Str("candidate", cand).Int("exit_code", exitErr.ExitCode()).Msg("non-zero exit with output, treating as present")
		return string(out), true
	}
	p.log().Debug().Str("candidate", cand).Err(err).Msg("probe failed")
	return "", false
}

// resolve turns a bare name into an absolute path using which (or where on
// Windows). Falls back to the bare name.
func (p *Prober) resolve(ctx context.Context, name string) string {
	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	tool := "which"
	if p.GOOS == "windows" {
		tool = "where"
	}
	out, err := p.Runner.Run(ctx, tool, name)
	if err != nil || ctx.Err() != nil {
		return name
	}
	if line := firstLine(string(out)); line != "" {
		return line
	}
	return name
}

func (p *Prober) timeout() time.Duration {
	if p.Timeout <= 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

func (p *Prober) log() *logging.Logger {
	if p.Log == nil {
		return logging.Nop()
	}
	return p.Log
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			return l
		}
	}
	return ""
}

var semverPattern = regexp.MustCompile(`v?\d+\.\d+(\.\d+)?(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// ExtractSemver finds the first semantic version in a version banner such as
// "codex-cli 0.20.0" or "1.0.44 (Claude Code)". Returns "" when none parses.
func ExtractSemver(banner string) string {
	for _, m := range semverPattern.FindAllString(banner, -1) {
		v, err := semver.NewVersion(strings.TrimPrefix(m, "v"))
		if err == nil {
			return v.String()
		}
	}
	return ""
}
