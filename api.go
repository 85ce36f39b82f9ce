package ddns

import (
	"context"
)

// Resolver discovers the address that the DNS record should point to.
type Resolver interface {
	Resolve(context.Context) (string, error)
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(context.Context) (string, error)

func (f ResolverFunc) Resolve(ctx context.Context) (string, error) {
	return f(ctx)
}

// Zones lists the hosted zones visible to a DNS provider session.
type Zones interface {
	ListZones(ctx context.Context) ([]Zone, error)
}

// Zone is one hosted zone.
type Zone interface {
	// IdentifierPath is the provider's resource path for the zone, e.g. /hostedzone/Z123.
	// Use ParseZoneID to extract the zone ID.
	IdentifierPath() string
	Name() string
	ListRecords(ctx context.Context, recordType string) ([]Record, error)
}

// Record is one DNS record set inside a Zone.
type Record interface {
	Name() string
	Values() []string
	// Update replaces the value set of the record.
	// All other attributes of the record are kept as they are.
	Update(ctx context.Context, values []string) error
}

// SessionFunc opens a session with a DNS provider.
// It is called once per run, after the public address is known.
type SessionFunc func(ctx context.Context) (Zones, error)

// Credentials is the key pair handed to the DNS provider client.
// APIToken is only understood by the Cloudflare session.
type Credentials struct {
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	APIToken  string `json:"api_token,omitempty"`
}

// CredentialsFunc loads credentials when a session is opened.
type CredentialsFunc func() (Credentials, error)

// StaticCredentials returns a CredentialsFunc for a fixed key pair.
func StaticCredentials(accessKey, secretKey string) CredentialsFunc {
	return func() (Credentials, error) {
		return Credentials{AccessKey: accessKey, SecretKey: secretKey}, nil
	}
}
