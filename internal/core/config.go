package core

// RuntimeConfig is handed to the game at initialization. The seed drives
// every random decision in the simulation, so two games created with the
// same seed and stepped with the same inputs stay identical tick for tick.
type RuntimeConfig struct {
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform layer picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 60,
		Seed:     0,
	}
}

// Dt returns the fixed simulation timestep in seconds.
func (c RuntimeConfig) Dt() float64 {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return 1.0 / float64(rate)
}
