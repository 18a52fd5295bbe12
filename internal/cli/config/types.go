package config

import "time"

// Defaults.
const (
	DefaultSolverCmd = "z3"
	DefaultStateFile = ".satchel/history.db"
)

// Config holds the resolved satchel configuration.
type Config struct {
	// SolverCmd is the external solver binary; SolverArgs are passed
	// before the script path.
	SolverCmd  string   `koanf:"solver_cmd"`
	SolverArgs []string `koanf:"solver_args"`

	// SolverTimeout bounds one check-sat solver call, in seconds.
	// Zero disables the timeout.
	SolverTimeout int `koanf:"solver_timeout"`

	// Strict makes an unterminated list at end of input a parse error.
	Strict bool `koanf:"strict"`

	// StatePath is the run-history SQLite database; NoHistory disables
	// recording entirely.
	StatePath string `koanf:"state_path"`
	NoHistory bool   `koanf:"no_history"`

	Verbose bool `koanf:"verbose"`
}

// Timeout returns the solver timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.SolverTimeout) * time.Second
}
