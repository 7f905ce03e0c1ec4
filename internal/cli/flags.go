package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cbout22/single-commit/internal/config"
)

// flagValues holds the persistent flags. Empty values do not override
// lower-precedence sources.
type flagValues struct {
	configFile   string
	debug        bool
	conventional bool
	cfg          config.Config

	set *pflag.FlagSet
}

func (f *flagValues) register(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	f.set = fs
	fs.StringVar(&f.configFile, "config", "", "TOML config file (default: $XDG_CONFIG_HOME/"+config.DefaultConfigFile+" if present)")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")

	fs.StringVar(&f.cfg.Path, "path", "", "File to commit, relative to the workspace")
	fs.StringVarP(&f.cfg.Message, "message", "m", "", "Commit message")
	fs.StringVar(&f.cfg.Committer, "committer", "", "Committer name")
	fs.StringVar(&f.cfg.CommitterEmail, "committer-email", "", "Committer email")
	fs.StringVar(&f.cfg.Branch, "branch", "", "Branch to commit to (default: the repository default branch)")
	fs.BoolVar(&f.conventional, "conventional", false, "Require a Conventional Commits message")
	fs.StringVar(&f.cfg.Repository, "repository", "", "Target repository as owner/name (default: GITHUB_REPOSITORY or the origin remote)")
	fs.StringVar(&f.cfg.Workspace, "workspace", "", "Workspace root (default: GITHUB_WORKSPACE or .)")
	fs.StringVar(&f.cfg.APIURL, "api-url", "", "GitHub API URL (default: GITHUB_API_URL or "+config.DefaultAPIURL+")")
}

// loadConfig layers defaults, the config file, the environment and flags.
func (a *app) loadConfig() (*config.Config, error) {
	cfg := config.Default()

	path, optional := a.flags.configFile, false
	if path == "" {
		path, optional = a.findConfig(), true
	}
	if path != "" {
		fileCfg, err := config.LoadFile(path, optional)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg.Merge(fileCfg)
		a.logger.Debug("loaded config file", "path", path)
	}

	cfg.Merge(config.FromEnv(a.getenv))
	cfg.Merge(a.flags.config())
	return cfg, nil
}

// config returns the flag layer. Booleans count only when given explicitly,
// so --conventional=false can override a lower source.
func (f *flagValues) config() *config.Config {
	cfg := f.cfg
	if f.set != nil && f.set.Changed("conventional") {
		v := f.conventional
		cfg.Conventional = &v
	}
	return &cfg
}
