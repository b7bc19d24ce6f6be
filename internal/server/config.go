package server

const (
	// DefaultPort is the TCP port used by the HTTP server when no explicit port is provided.
	DefaultPort = 8080
)

// Configuration captures runtime settings for the HTTP server.
type Configuration struct {
	// ServiceSecret enables the shared-secret check when not blank.
	ServiceSecret string
	Port          int
	LogLevel      string
}
