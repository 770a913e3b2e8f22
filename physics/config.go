package physics

// Config tunes the cp space and the bodies created through a World.
// Lengths and speeds are in simulation units.
type Config struct {
	GravityX           float64 `yaml:"gravity_x"`
	GravityY           float64 `yaml:"gravity_y"`
	Iterations         uint    `yaml:"iterations"`
	SleepTimeThreshold float64 `yaml:"sleep_time_threshold"`
	IdleSpeedThreshold float64 `yaml:"idle_speed_threshold"`
	MaxStepDelta       float64 `yaml:"max_step_delta"`
	BodyMass           float64 `yaml:"body_mass"`
	Friction           float64 `yaml:"friction"`
	Elasticity         float64 `yaml:"elasticity"`
}

// DefaultConfig returns the settings used when a spec leaves fields unset.
func DefaultConfig() Config {
	return Config{
		GravityY:           9.8,
		Iterations:         20,
		SleepTimeThreshold: 0.5,
		IdleSpeedThreshold: 0.05,
		MaxStepDelta:       1.0 / 30.0,
		BodyMass:           1,
		Friction:           0.8,
		Elasticity:         0.1,
	}
}

// withDefaults fills zero fields from DefaultConfig. Gravity is left alone
// since zero gravity is a valid choice.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Iterations == 0 {
		c.Iterations = def.Iterations
	}
	if c.MaxStepDelta <= 0 {
		c.MaxStepDelta = def.MaxStepDelta
	}
	if c.BodyMass <= 0 {
		c.BodyMass = def.BodyMass
	}
	if c.SleepTimeThreshold < 0 {
		c.SleepTimeThreshold = 0
	}
	if c.IdleSpeedThreshold < 0 {
		c.IdleSpeedThreshold = 0
	}
	return c
}
