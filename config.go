package minibank

const (
	DefaultStorePath    = "users.json"
	DefaultMaxAttempts  = 3
	DefaultMinPINLength = 6
)

type Config struct {
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Auth struct {
		MaxAttempts  int `yaml:"max_attempts"`
		MinPINLength int `yaml:"min_pin_length"`
	} `yaml:"auth"`
}

// ApplyDefaults fills any unset field so a missing or partial config file
// still yields a runnable setup.
func (c *Config) ApplyDefaults() {
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}
	if c.Auth.MaxAttempts <= 0 {
		c.Auth.MaxAttempts = DefaultMaxAttempts
	}
	if c.Auth.MinPINLength <= 0 {
		c.Auth.MinPINLength = DefaultMinPINLength
	}
}
