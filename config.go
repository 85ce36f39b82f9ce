package ddns

import "time"

// Config holds process-wide settings that do not change during a run.
type Config struct {
	// Endpoint is the Route53 API endpoint.
	Endpoint string
	// Timeout bounds each request to an address provider.
	Timeout time.Duration
}

// DefaultConfig returns the settings used when WithConfig is not given.
func DefaultConfig() Config {
	return Config{
		Endpoint: "https://route53.amazonaws.com",
		Timeout:  3 * time.Second,
	}
}
