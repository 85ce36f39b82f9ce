// Command r53ddns points one DNS address record at the public IP of the machine it runs on.
//
// It is meant to be started by cron every few minutes.
// Running it more often than the TTL of the record is pointless.
//
//	r53ddns --secrets-file ~/.r53_secrets --hosted-zone Z1D633PJN98FT9 --random-sleep
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Travis-Britz/r53ddns"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(newApp().execute(os.Args[1:]))
}

type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	hostname       func() (string, error)
	session        func(provider string, creds ddns.CredentialsFunc) (ddns.Option, error)
	verify         func(ctx context.Context, provider string, creds ddns.Credentials, endpoint string) (int, error)
	// extra options appended after the ones built from flags
	extra []ddns.Option
}

func newApp() *app {
	return &app{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		hostname: os.Hostname,
		session:  providerSession,
		verify:   verifyCredentials,
	}
}

// execute runs the command line and returns the process exit code.
func (a *app) execute(args []string) int {
	cmd := a.rootCommand(&options{})
	cmd.SetArgs(args)
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(a.stderr, "r53ddns: %s\n", err)
		return 1
	}
	return 0
}

func (a *app) rootCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "r53ddns",
		Short:         "Point a DNS address record at this machine's public IP",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.resolve(cmd); err != nil {
				return err
			}
			// from here on failures are not usage errors
			cmd.SilenceUsage = true
			return a.run(cmd.Context(), o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.SecretsFile, "secrets-file", "s", "", "JSON file with access_key and secret_key; must be mode 0600 or 0400 (env "+envSecretsFile+")")
	f.StringVarP(&o.HostedZone, "hosted-zone", "z", "", "hosted zone ID (env "+envHostedZone+")")
	f.StringVarP(&o.Subdomain, "subdomain", "d", "", "A record name prefix; if not specified, the zone must hold a single A record")
	f.BoolVarP(&o.RandomSleep, "random-sleep", "b", false, "sleep up to one minute, derived from the host name, before updating")
	f.BoolVar(&o.NoRandomSleep, "no-random-sleep", false, "disable --random-sleep")
	f.StringVar(&o.Provider, "provider", "route53", "DNS provider: route53 or cloudflare")
	f.StringVar(&o.Endpoint, "endpoint", ddns.DefaultConfig().Endpoint, "Route53 API endpoint")
	f.DurationVar(&o.Timeout, "timeout", ddns.DefaultConfig().Timeout, "timeout for each public IP lookup")
	f.StringVar(&o.IP, "ip", "", "use this IP instead of looking up the public IP")
	f.StringVar(&o.Interface, "interface", "", "use the IPv4 address of this network interface instead of looking up the public IP")
	f.StringVar(&o.MetricsTextfile, "metrics-textfile", "", "write run metrics to this file for the node_exporter textfile collector")
	f.StringVarP(&o.ConfigFile, "config", "c", "", "YAML file with default values for these flags")
	f.StringVar(&o.LogLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.StringVar(&o.LogFormat, "log-format", "auto", "log format: auto, text or json")
	cobra.CheckErr(f.MarkHidden("no-random-sleep"))

	cmd.AddCommand(a.setupCommand())
	return cmd
}

func (a *app) run(ctx context.Context, o *options) error {
	logger, err := setupLogger(o.LogLevel, o.LogFormat, a.stderr)
	if err != nil {
		return err
	}

	creds := func() (ddns.Credentials, error) { return readSecrets(o.SecretsFile) }
	session, err := a.session(o.Provider, creds)
	if err != nil {
		return err
	}

	opts := []ddns.Option{
		session,
		ddns.WithLogger(logger),
		ddns.WithSubdomain(o.Subdomain),
		ddns.WithConfig(ddns.Config{Endpoint: o.Endpoint, Timeout: o.Timeout}),
	}

	switch {
	case o.IP != "":
		r, err := ddns.FromString(o.IP)
		if err != nil {
			return fmt.Errorf("--ip: %w", err)
		}
		opts = append(opts, ddns.UsingResolver(r))
	case o.Interface != "":
		opts = append(opts, ddns.UsingResolver(ddns.InterfaceResolver(o.Interface)))
	case len(o.extraProviders) > 0:
		opts = append(opts, ddns.UsingWebResolver(append(ddns.DefaultAddressProviders(), o.extraProviders...)...))
	}

	if o.RandomSleep {
		host, err := a.hostname()
		if err != nil {
			return fmt.Errorf("error getting host name for --random-sleep: %w", err)
		}
		opts = append(opts, ddns.WithJitter(host))
	}

	var metrics *ddns.Metrics
	if o.MetricsTextfile != "" {
		metrics = ddns.NewMetrics()
		opts = append(opts, ddns.WithMetrics(metrics))
	}

	client, err := ddns.New(o.HostedZone, append(opts, a.extra...)...)
	if err != nil {
		return err
	}

	outcome, runErr := client.RunDDNS(ctx)
	if metrics != nil {
		if err := metrics.WriteTextfile(o.MetricsTextfile); err != nil {
			logger.Warn("error writing metrics textfile", slog.String("path", o.MetricsTextfile), slog.String("error", err.Error()))
		}
	}
	if runErr != nil {
		return runErr
	}

	switch outcome {
	case ddns.NoChangeNeeded:
		fmt.Fprintln(a.stdout, "Nothing to do.")
	case ddns.Updated:
		fmt.Fprintln(a.stdout, "Done")
	}
	return nil
}

func providerSession(provider string, creds ddns.CredentialsFunc) (ddns.Option, error) {
	switch strings.ToLower(provider) {
	case "", "route53":
		return ddns.UsingRoute53(creds), nil
	case "cloudflare":
		return ddns.UsingCloudflare(creds), nil
	}
	return nil, fmt.Errorf("unknown provider %q: must be route53 or cloudflare", provider)
}

func openSession(provider string, creds ddns.Credentials, endpoint string) (ddns.Zones, error) {
	switch strings.ToLower(provider) {
	case "", "route53":
		cfg := ddns.DefaultConfig()
		if endpoint != "" {
			cfg.Endpoint = endpoint
		}
		return ddns.OpenRoute53(creds, cfg)
	case "cloudflare":
		return ddns.OpenCloudflare(creds)
	}
	return nil, fmt.Errorf("unknown provider %q: must be route53 or cloudflare", provider)
}

// verifyCredentials lists the zones visible to creds and returns how many there are.
func verifyCredentials(ctx context.Context, provider string, creds ddns.Credentials, endpoint string) (int, error) {
	zones, err := openSession(provider, creds, endpoint)
	if err != nil {
		return 0, err
	}
	list, err := zones.ListZones(ctx)
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		return 0, errors.New("the credentials work but no zones are visible to them")
	}
	return len(list), nil
}
