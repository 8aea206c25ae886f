package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/katalvlaran/plutofcg/prog"
)

// EnvPrefix is the environment-variable prefix viper binds overrides
// under, e.g. PLUTOFCG_FUSE=maxfuse.
const EnvPrefix = "PLUTOFCG"

// Policy is the TOML-shaped mirror of prog.Options: every field here
// is a serializable rendering of one §6 Inbound option.
type Policy struct {
	Fuse       string `mapstructure:"fuse" toml:"fuse"`
	SCCCluster bool   `mapstructure:"scc_cluster" toml:"scc_cluster"`
	LPColour   bool   `mapstructure:"lpcolour" toml:"lpcolour"`
	RAR        bool   `mapstructure:"rar" toml:"rar"`
	Silent     bool   `mapstructure:"silent" toml:"silent"`
	Gurobi     bool   `mapstructure:"gurobi" toml:"gurobi"`
}

// defaultPolicy mirrors prog.DefaultOptions().
func defaultPolicy() Policy {
	return Policy{Fuse: "smartfuse"}
}

// Loader owns the viper instance across Load and Reload calls so a
// Watcher (watch.go) can re-read the same config file and bound
// environment overrides without re-establishing search paths.
type Loader struct {
	v        *viper.Viper
	filePath string
}

// NewLoader builds a Loader. If path is empty, it searches for
// ".plutofcg" (yaml/toml/json) in the current directory and the user's
// home directory, the same precedence papapumpkin-quasar's initConfig
// uses for ".quasar".
func NewLoader(path string) *Loader {
	v := viper.New()
	for key, val := range structToMap(defaultPolicy()) {
		v.SetDefault(key, val)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".plutofcg")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return &Loader{v: v, filePath: path}
}

// Load reads the config file (missing file is not an error; defaults
// and environment overrides still apply) and decodes it into a Policy.
func (l *Loader) Load() (Policy, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Policy{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var p Policy
	if err := l.v.Unmarshal(&p); err != nil {
		return Policy{}, fmt.Errorf("decoding config: %w", err)
	}
	return p, nil
}

// ConfigFileUsed reports the path viper resolved the config from, for
// a Watcher to monitor; empty if none was found.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// ToOptions translates a Policy into prog.Options, the driver-facing
// type every core package actually consumes.
func (p Policy) ToOptions() (prog.Options, error) {
	opts := prog.DefaultOptions()
	switch p.Fuse {
	case "", "smartfuse":
		opts.Fuse = prog.SmartFuse
	case "nofuse":
		opts.Fuse = prog.NoFuse
	case "maxfuse":
		opts.Fuse = prog.MaxFuse
	case "typedfuse":
		opts.Fuse = prog.TypedFuse
	default:
		return prog.Options{}, fmt.Errorf("config: unknown fuse mode %q", p.Fuse)
	}
	opts.SCCCluster = p.SCCCluster
	opts.LPColour = p.LPColour
	opts.RAR = p.RAR
	opts.Silent = p.Silent
	opts.Gurobi = p.Gurobi
	return opts, nil
}

// structToMap flattens a Policy's mapstructure tags into viper default
// keys, avoiding a hand-maintained duplicate list of option names.
func structToMap(p Policy) map[string]interface{} {
	return map[string]interface{}{
		"fuse":        p.Fuse,
		"scc_cluster": p.SCCCluster,
		"lpcolour":    p.LPColour,
		"rar":         p.RAR,
		"silent":      p.Silent,
		"gurobi":      p.Gurobi,
	}
}
