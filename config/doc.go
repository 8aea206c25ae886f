// Package config loads the scheduler's run-time policy (§6 Inbound
// options: fuse mode, scc_cluster, lpcolour, rar, silent, gurobi) from
// a TOML file plus environment overrides, and optionally watches that
// file for edits.
//
// Loading is grounded on papapumpkin-quasar's cmd/root.go
// (viper.SetConfigName/SetConfigType/AddConfigPath plus
// SetEnvPrefix/AutomaticEnv) combined with its
// internal/relativity/toml.go Load/Save pair, which this package
// mirrors for the TOML encode/decode step viper delegates to
// pelletier/go-toml/v2 under the hood. Hot-reload watching is grounded
// on quasar's internal/nebula/watcher.go debounced fsnotify loop,
// adapted from filesystem-change intervention prompts to a single
// config-file reload callback.
package config
