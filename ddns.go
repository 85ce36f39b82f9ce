package ddns

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// minDaemonInterval is the shortest interval RunDaemon accepts.
var minDaemonInterval = 1 * time.Minute

// New creates a client that keeps one address record in the zone hostedZoneID up to date.
//
// A DNS session option (UsingRoute53, UsingCloudflare or UsingSession) is required.
// Without UsingResolver or UsingWebResolver the public address is looked up with WebResolver(DefaultAddressProviders()...).
func New(hostedZoneID string, options ...Option) (DDNSClient, error) {
	if hostedZoneID == "" {
		return nil, fmt.Errorf("ddns.New: hosted zone ID cannot be empty")
	}
	c := &client{
		Resolver:     WebResolver(DefaultAddressProviders()...),
		config:       DefaultConfig(),
		logger:       discard,
		sleep:        time.Sleep,
		hostedZoneID: hostedZoneID,
	}
	for i, opt := range options {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("ddns.New: option %d returned an error: %s", i, err)
		}
	}

	if c.session == nil {
		return nil, fmt.Errorf("ddns.New: no DNS provider was registered and there is no default option - use ddns.UsingRoute53 or similar")
	}

	// options may be given in any order, so dependencies are wired only once all of them ran
	c.propagate()
	return c, nil
}

// Option configures the client returned by New.
type Option func(*client) error

// UsingSession registers a DNS provider session.
func UsingSession(session SessionFunc) Option {
	return func(c *client) error {
		if session == nil {
			return errors.New("session cannot be nil")
		}
		c.session = session
		return nil
	}
}

// UsingRoute53 registers Amazon Route53 as the DNS provider.
// creds is called once per run, after the public address has been resolved.
func UsingRoute53(creds CredentialsFunc) Option {
	return func(c *client) error {
		if creds == nil {
			return errors.New("credentials cannot be nil")
		}
		c.session = func(ctx context.Context) (Zones, error) {
			cr, err := creds()
			if err != nil {
				return nil, fmt.Errorf("error loading credentials: %w", err)
			}
			return newRoute53Zones(cr, c.config, c.httpClient, c.logger)
		}
		return nil
	}
}

// UsingCloudflare registers Cloudflare as the DNS provider.
// The hosted zone ID is the Cloudflare zone ID.
func UsingCloudflare(creds CredentialsFunc) Option {
	return func(c *client) error {
		if creds == nil {
			return errors.New("credentials cannot be nil")
		}
		c.session = func(ctx context.Context) (Zones, error) {
			cr, err := creds()
			if err != nil {
				return nil, fmt.Errorf("error loading credentials: %w", err)
			}
			return newCloudflareZones(cr, c.httpClient, "", c.logger)
		}
		return nil
	}
}

// UsingResolver replaces the web resolver with resolver.
func UsingResolver(resolver Resolver) Option {
	return func(c *client) error {
		if resolver == nil {
			resolver = WebResolver(DefaultAddressProviders()...)
		}
		c.Resolver = resolver
		return nil
	}
}

// UsingWebResolver looks up the public address with the given providers instead of the defaults.
func UsingWebResolver(providers ...AddressProvider) Option {
	return func(c *client) error {
		if len(providers) == 0 {
			return errors.New("at least one address provider is required")
		}
		for _, p := range providers {
			if p.URL == "" || p.Validate == nil || p.Extract == nil {
				return fmt.Errorf("address provider %q is incomplete", p.URL)
			}
		}
		c.Resolver = WebResolver(providers...)
		return nil
	}
}

// UsingHTTPClient sets the http client used for address providers and DNS provider sessions.
func UsingHTTPClient(httpclient *http.Client) Option {
	return func(c *client) error {
		c.httpClient = httpclient
		return nil
	}
}

// WithConfig sets the provider endpoint and request timeout.
func WithConfig(cfg Config) Option {
	return func(c *client) error {
		if cfg.Timeout <= 0 {
			cfg.Timeout = DefaultConfig().Timeout
		}
		c.config = cfg
		return nil
	}
}

// WithSubdomain limits the candidate records to those whose name starts with subdomain.
func WithSubdomain(subdomain string) Option {
	return func(c *client) error {
		c.subdomain = subdomain
		return nil
	}
}

// WithJitter makes every run sleep ComputeDelay(hostIdentity) before any network activity.
func WithJitter(hostIdentity string) Option {
	return func(c *client) error {
		c.jitter = true
		c.hostIdentity = hostIdentity
		return nil
	}
}

// WithSleeper replaces time.Sleep for the jitter delay.
func WithSleeper(sleep Sleeper) Option {
	return func(c *client) error {
		if sleep == nil {
			sleep = time.Sleep
		}
		c.sleep = sleep
		return nil
	}
}

// WithLogger sets the logger for the client and its resolver. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *client) error {
		if logger == nil {
			logger = discard
		}
		c.logger = logger
		return nil
	}
}

// WithMetrics records provider attempts and run results in m.
func WithMetrics(m *Metrics) Option {
	return func(c *client) error {
		c.metrics = m
		return nil
	}
}

func (c *client) propagate() {
	type setLogger interface{ SetLogger(*slog.Logger) }
	type setHTTPClient interface{ SetHTTPClient(*http.Client) }
	type setMetrics interface{ SetMetrics(*Metrics) }
	type setTimeout interface{ SetTimeout(time.Duration) }

	if r, ok := c.Resolver.(setLogger); ok {
		r.SetLogger(c.logger)
	}
	if r, ok := c.Resolver.(setHTTPClient); ok && c.httpClient != nil {
		r.SetHTTPClient(c.httpClient)
	}
	if r, ok := c.Resolver.(setMetrics); ok {
		r.SetMetrics(c.metrics)
	}
	if r, ok := c.Resolver.(setTimeout); ok {
		r.SetTimeout(c.config.Timeout)
	}
}

// DDNSClient is returned by New.
type DDNSClient interface {
	RunDDNS(ctx context.Context) (Outcome, error)
}

type client struct {
	Resolver
	session SessionFunc

	config     Config
	logger     *slog.Logger
	httpClient *http.Client
	metrics    *Metrics

	hostedZoneID string
	subdomain    string

	jitter       bool
	hostIdentity string
	sleep        Sleeper
}

// RunDDNS brings the record in line with the current public address.
//
// Either the record matches the resolved address when RunDDNS returns a nil error,
// or the returned error explains why it could not be brought in line.
func (c *client) RunDDNS(ctx context.Context) (outcome Outcome, err error) {
	defer func() { c.metrics.observeRun(outcome, err) }()

	if c.jitter {
		d := ComputeDelay(c.hostIdentity)
		c.metrics.observeJitter(d)
		c.logger.Info("sleeping before update", slog.Duration("delay", d))
		c.sleep(d)
	}

	addr, err := c.Resolve(ctx)
	if err != nil {
		return NoChangeNeeded, fmt.Errorf("error getting IP: %w", err)
	}
	c.logger.Info("got public IP", slog.String("ip", addr))

	zones, err := c.session(ctx)
	if err != nil {
		return NoChangeNeeded, fmt.Errorf("error opening DNS provider session: %w", err)
	}

	record, err := LocateRecord(ctx, zones, c.hostedZoneID, c.subdomain)
	if err != nil {
		return NoChangeNeeded, err
	}
	previous := CurrentValue(record)
	c.logger.Info("found record", slog.String("name", record.Name()), slog.String("ip", previous))

	outcome, err = Reconcile(ctx, record, addr)
	if err != nil {
		return outcome, err
	}
	switch outcome {
	case NoChangeNeeded:
		c.logger.Info("record is up to date", slog.String("name", record.Name()))
	case Updated:
		c.logger.Info("record updated", slog.String("name", record.Name()), slog.String("from", previous), slog.String("to", addr))
	}
	return outcome, nil
}

// RunDaemon starts ddnsClient as a goroutine that runs every interval until ctx is done.
//
// The scheduler model (cron running the binary) is preferred; this exists for programs that embed the client.
// A nil logger discards errors.
func RunDaemon(ddnsClient DDNSClient, ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval < minDaemonInterval {
		interval = minDaemonInterval
	}
	if logger == nil {
		logger = discard
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := ddnsClient.RunDDNS(ctx); err != nil {
					logger.Error("ddns.RunDaemon", slog.String("error", err.Error()))
				}
			}
		}
	}()
}
