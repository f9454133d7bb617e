package appconf

// Environment identifies which mode the application is running in. Some
// behaviors (like refusing to create on-disk databases in tests) key off it.
type Environment int

const (
	Development Environment = iota
	Test
	Staging
	Production
)

// Config holds all the configuration settings for the application.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int
}

// EnvFlagToEnvironment maps the -env flag value to an Environment. Unknown
// values fall back to Development.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "test":
		return Test
	case "staging":
		return Staging
	case "production":
		return Production
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Staging:
		return "staging"
	case Production:
		return "production"
	default:
		return "development"
	}
}
