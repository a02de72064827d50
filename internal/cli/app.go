package cli

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/michaeljabbour/letsyolo/internal/config"
	"github.com/michaeljabbour/letsyolo/internal/detect"
	"github.com/michaeljabbour/letsyolo/internal/secrets"
	"github.com/michaeljabbour/letsyolo/internal/toggle"
	"github.com/michaeljabbour/letsyolo/internal/userdata"
)

// Seams replaced by tests.
var (
	probeRunner detect.Runner = detect.ExecRunner{}
	environ                   = os.Environ
	stdin                     = os.Stdin
)

// paths resolved once per command.
type paths struct {
	home    string
	root    string
	secrets string
}

func resolvePaths() (paths, error) {
	home, err := userdata.GetUserHome()
	if err != nil {
		return paths{}, err
	}
	root, err := userdata.GetRoot()
	if err != nil {
		return paths{}, err
	}
	return paths{home: home, root: root, secrets: filepath.Join(root, userdata.SecretsFile)}, nil
}

func newProber(home string) *detect.Prober {
	p := detect.NewProber(
		detect.NewLocator(home, runtime.GOOS, config.SearchPaths()),
		config.ProbeTimeout(),
		logger,
	)
	p.Runner = probeRunner
	return p
}

func newEngine(home string) *toggle.Engine {
	return toggle.New(home, newProber(home), logger)
}

func newStore(p paths) *secrets.Store {
	return secrets.NewStore(p.secrets, logger)
}

func newScanner(p paths) *secrets.Scanner {
	return secrets.NewScanner(p.home, p.secrets, environ(), logger)
}
