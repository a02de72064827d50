package toggle

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"github.com/michaeljabbour/letsyolo/internal/agents"
	"github.com/michaeljabbour/letsyolo/internal/detect"
	"github.com/michaeljabbour/letsyolo/internal/logging"
)

// Detector reports whether an agent binary is installed.
type Detector interface {
	Detect(ctx context.Context, names []string, versionFlag string) detect.Result
}

// Engine applies autonomy settings for agents whose config lives under Home.
type Engine struct {
	Home     string
	Detector Detector
	Log      *logging.Logger
}

// New returns an Engine rooted at home.
func New(home string, det Detector, log *logging.Logger) *Engine {
	return &Engine{Home: home, Detector: det, Log: log.Sub("toggle")}
}

// Read reports the current setting without changing anything.
func (e *Engine) Read(def agents.Definition) (State, error) {
	st := e.base(def)
	strat, ok := strategies[def.Format]
	if !ok || !def.Persistent() {
		st.Message = e.sessionOnlyMessage(def)
		return st, nil
	}

	enabled, err := strat.read(st.ConfigPath, def)
	if err != nil {
		return st, fmt.Errorf("reading %s settings: %w", def.Name, err)
	}
	st.Enabled = enabled
	if enabled {
		st.Message = fmt.Sprintf("autonomy is on in %s", e.show(st.ConfigPath))
	} else {
		st.Message = fmt.Sprintf("autonomy is off; run `letsyolo enable %s` or launch with %s", def.Name, def.SessionFlag)
	}
	return st, nil
}

// Enable turns autonomy on. The agent must be installed. Enabling an agent
// that is already on writes nothing.
func (e *Engine) Enable(ctx context.Context, def agents.Definition) (State, error) {
	if e.Detector != nil {
		res := e.Detector.Detect(ctx, def.Binaries, def.VersionFlag)
		if !res.Installed {
			return e.base(def), &NotInstalledError{Agent: def.Name, DisplayName: def.DisplayName, InstallHint: def.InstallHint}
		}
	}

	st := e.base(def)
	strat, ok := strategies[def.Format]
	if !ok || !def.Persistent() {
		st.Message = e.sessionOnlyMessage(def)
		return st, nil
	}

	changed, err := strat.enable(st.ConfigPath, def)
	if err != nil {
		return st, fmt.Errorf("enabling %s: %w", def.Name, err)
	}
	st.Enabled = true
	st.Changed = changed
	if changed {
		e.log().Info().Str("agent", string(def.Name)).Str("path", st.ConfigPath).Msg("autonomy enabled")
		st.Message = fmt.Sprintf("enabled %s in %s", settingsSummary(def), e.show(st.ConfigPath))
	} else {
		st.Message = fmt.Sprintf("already enabled in %s", e.show(st.ConfigPath))
	}
	return st, nil
}

// Disable reverts the setting. It only removes values letsyolo would have
// written; anything else the user configured is left in place.
func (e *Engine) Disable(def agents.Definition) (State, error) {
	st := e.base(def)
	strat, ok := strategies[def.Format]
	if !ok || !def.Persistent() {
		st.Message = e.sessionOnlyMessage(def)
		return st, nil
	}

	changed, err := strat.disable(st.ConfigPath, def)
	if err != nil {
		return st, fmt.Errorf("disabling %s: %w", def.Name, err)
	}
	st.Changed = changed
	if changed {
		e.log().Info().Str("agent", string(def.Name)).Str("path", st.ConfigPath).Msg("autonomy disabled")
		st.Message = fmt.Sprintf("removed %s from %s", settingsSummary(def), e.show(st.ConfigPath))
	} else {
		st.Message = "already disabled"
	}
	return st, nil
}

// ReadAll reads every agent concurrently, in defs order.
func (e *Engine) ReadAll(defs []agents.Definition) []Outcome {
	return batch(defs, func(d agents.Definition) (State, error) { return e.Read(d) })
}

// EnableAll enables every agent concurrently. One failure does not stop the
// others.
func (e *Engine) EnableAll(ctx context.Context, defs []agents.Definition) []Outcome {
	return batch(defs, func(d agents.Definition) (State, error) { return e.Enable(ctx, d) })
}

// DisableAll disables every agent concurrently.
func (e *Engine) DisableAll(defs []agents.Definition) []Outcome {
	return batch(defs, func(d agents.Definition) (State, error) { return e.Disable(d) })
}

func batch(defs []agents.Definition, op func(agents.Definition) (State, error)) []Outcome {
	return iter.Map(defs, func(d *agents.Definition) (out Outcome) {
		out.Agent = *d
		defer func() {
			if r := recover(); r != nil {
				out.Err = fmt.Errorf("%s: panic: %v", d.Name, r)
			}
		}()
		out.State, out.Err = op(*d)
		return out
	})
}

func (e *Engine) base(def agents.Definition) State {
	return State{
		Agent:       def.Name,
		SessionOnly: !def.Persistent(),
		ConfigPath:  def.ConfigFile(e.Home),
		SessionFlag: def.SessionFlag,
	}
}

func (e *Engine) sessionOnlyMessage(def agents.Definition) string {
	return fmt.Sprintf("%s has no persistent setting; launch it with %s", def.DisplayName, def.SessionFlag)
}

func (e *Engine) show(path string) string {
	return displayPath(e.Home, path)
}

func (e *Engine) log() *logging.Logger {
	if e.Log == nil {
		return logging.Nop()
	}
	return e.Log
}

func settingsSummary(def agents.Definition) string {
	parts := make([]string, 0, len(def.Settings))
	for _, s := range def.Settings {
		parts = append(parts, fmt.Sprintf("%s=%q", s.Key, s.Sentinel))
	}
	return strings.Join(parts, ", ")
}
