package dp

import "fmt"

const (
	DefaultGamma         float64 = 1.0
	DefaultTheta         float64 = 0.01
	DefaultMaxIterations int     = 500
)

// Config represents a configuration for a Solver. Configs are JSON
// serializable; fields missing from a JSON document keep the values of
// the Config it is decoded into, so decoding into DefaultConfig() fills
// in defaults.
type Config struct {
	// Gamma is the discount factor applied to the value of the next
	// state, in (0, 1]
	Gamma float64 `json:"gamma"`

	// Theta is the convergence threshold. A run stops once no state
	// value changes by Theta or more in a sweep.
	Theta float64 `json:"theta"`

	// MaxIterations caps the number of sweeps per run. Reaching the cap
	// stops the run with its current, unconverged estimate.
	MaxIterations int `json:"max_iterations"`

	// Workers is the number of goroutines each sweep is split across.
	// Values below 2 sweep sequentially.
	Workers int `json:"workers"`
}

// DefaultConfig returns the default Config: no discounting, a threshold
// of 0.01, at most 500 sweeps, and sequential sweeps
func DefaultConfig() Config {
	return Config{
		Gamma:         DefaultGamma,
		Theta:         DefaultTheta,
		MaxIterations: DefaultMaxIterations,
		Workers:       1,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Gamma <= 0 || c.Gamma > 1 {
		return fmt.Errorf("gamma must be in (0, 1], have %v", c.Gamma)
	}
	if c.Theta <= 0 {
		return fmt.Errorf("theta must be positive, have %v", c.Theta)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, have %d",
			c.MaxIterations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, have %d", c.Workers)
	}
	return nil
}
