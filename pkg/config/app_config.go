package config

import "fmt"

// AppConfig contains the base configuration fields required for sbgen.
type AppConfig struct {
	Debug       bool   `long:"debug" env:"DEBUG" default:"false"`
	Version     string `long:"version" env:"VERSION" default:"unversioned"`
	Commit      string `long:"commit" env:"COMMIT"`
	BuildDate   string `long:"build-date" env:"BUILD_DATE"`
	Name        string `long:"name" env:"NAME" default:"sbgen"`
	BuildSource string `long:"build-source" env:"BUILD_SOURCE" default:""`
	Visibility  bool
	Run         *RunConfig
}

// NewAppConfig bundles build metadata with a parsed run configuration.
func NewAppConfig(name, version, commit, date, buildSource string, debug bool, run *RunConfig) *AppConfig {
	return &AppConfig{
		Name:        name,
		Version:     version,
		Commit:      commit,
		BuildDate:   date,
		BuildSource: buildSource,
		Debug:       debug,
		Visibility:  run.Visibility,
		Run:         run,
	}
}

// ConfigError is malformed user input: an unknown enum value, an unparsable
// number, a missing required target or a parameter-arity mismatch. It is
// fatal at the boundary; the core never produces one.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}
