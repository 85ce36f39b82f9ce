package ddns

import (
	"strings"

	"github.com/tidwall/gjson"
)

// AddressProvider describes one public address reporting service.
//
// Extract is only called with a body for which Validate returned true.
// The extracted string is still checked with IsDottedQuad before it is used.
type AddressProvider struct {
	URL      string
	Validate func(body []byte) bool
	Extract  func(body []byte) string
}

// PlainText describes a service that answers with the bare address, e.g. "203.0.113.7\n".
func PlainText(url string) AddressProvider {
	return AddressProvider{
		URL: url,
		Validate: func(body []byte) bool {
			return IsDottedQuad(strings.TrimSpace(string(body)))
		},
		Extract: func(body []byte) string {
			return string(body)
		},
	}
}

// JSONField describes a service that answers with a JSON document holding the address at path.
// Path uses gjson syntax, so nested keys are written as "client.ip".
func JSONField(url, path string) AddressProvider {
	return AddressProvider{
		URL: url,
		Validate: func(body []byte) bool {
			return gjson.ValidBytes(body) && gjson.GetBytes(body, path).Exists()
		},
		Extract: func(body []byte) string {
			return gjson.GetBytes(body, path).String()
		},
	}
}

// DefaultAddressProviders returns the built-in services.
// A new copy is returned on every call.
//
// I'm not vouching for these services, but they do return the IP of the client connection.
// If possible, run your own and append it.
func DefaultAddressProviders() []AddressProvider {
	return []AddressProvider{
		JSONField("https://api.ipify.org/?format=json", "ip"),
		PlainText("https://checkip.amazonaws.com/"),
		PlainText("https://ipv4.icanhazip.com/"), // operated by Cloudflare since ~2021
	}
}
