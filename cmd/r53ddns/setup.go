package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Travis-Britz/r53ddns"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (a *app) setupCommand() *cobra.Command {
	var (
		secretsFile string
		provider    string
		endpoint    string
	)
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Prompt for credentials, check them, and write a new secrets file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secretsFile == "" {
				return errors.New("--secrets-file is required")
			}
			cmd.SilenceUsage = true
			return a.runSetup(cmd.Context(), secretsFile, provider, endpoint)
		},
	}
	cmd.Flags().StringVarP(&secretsFile, "secrets-file", "s", "", "path of the secrets file to create")
	cmd.Flags().StringVar(&provider, "provider", "route53", "DNS provider: route53 or cloudflare")
	cmd.Flags().StringVar(&endpoint, "endpoint", ddns.DefaultConfig().Endpoint, "Route53 API endpoint")
	return cmd
}

func (a *app) runSetup(ctx context.Context, secretsFile, provider, endpoint string) error {
	if _, err := os.Stat(secretsFile); err == nil {
		return fmt.Errorf("%q already exists; remove it first to replace it", secretsFile)
	}

	in := bufio.NewReader(a.stdin)
	var creds ddns.Credentials
	var err error
	if strings.EqualFold(provider, "cloudflare") {
		if creds.APIToken, err = a.prompt(in, "Enter Cloudflare API token: ", true); err != nil {
			return err
		}
	} else {
		if creds.AccessKey, err = a.prompt(in, "Enter access key: ", false); err != nil {
			return err
		}
		if creds.SecretKey, err = a.prompt(in, "Enter secret key: ", true); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	fmt.Fprintln(a.stderr, "verifying credentials...")
	n, err := a.verify(ctx, provider, creds, endpoint)
	if err != nil {
		return fmt.Errorf("unable to verify credentials: %w", err)
	}
	fmt.Fprintf(a.stderr, "credentials verified; %d zones visible\n", n)

	if err := writeSecrets(secretsFile, creds); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "credentials written to %q\n", secretsFile)
	return nil
}

// prompt reads one line. Secrets are read without echo when stdin is a terminal.
func (a *app) prompt(in *bufio.Reader, label string, secret bool) (string, error) {
	fmt.Fprint(a.stderr, label)
	var line string
	if f, ok := a.stdin.(*os.File); ok && secret && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stderr)
		if err != nil {
			return "", fmt.Errorf("error reading from stdin: %w", err)
		}
		line = string(b)
	} else {
		var err error
		line, err = in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("error reading from stdin: %w", err)
		}
	}
	value := strings.TrimSpace(line)
	if value == "" {
		return "", errors.New("empty value")
	}
	return value, nil
}
