package config

// Default configuration values
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultServiceName = "grubbot"
	DefaultVersion     = "dev"
	DefaultDBName      = "grubbot"
)
