package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Travis-Britz/r53ddns"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// options is everything the root command needs for one run.
type options struct {
	ConfigFile      string
	SecretsFile     string
	HostedZone      string
	Subdomain       string
	RandomSleep     bool
	NoRandomSleep   bool
	Provider        string
	Endpoint        string
	Timeout         time.Duration
	IP              string
	Interface       string
	MetricsTextfile string
	LogLevel        string
	LogFormat       string

	extraProviders []ddns.AddressProvider
}

// fileConfig is the optional YAML configuration file.
// Any value set on the command line wins over the file.
type fileConfig struct {
	SecretsFile      string          `yaml:"secrets_file"`
	HostedZone       string          `yaml:"hosted_zone"`
	Subdomain        string          `yaml:"subdomain"`
	RandomSleep      *bool           `yaml:"random_sleep"`
	Provider         string          `yaml:"provider"`
	Endpoint         string          `yaml:"endpoint"`
	Timeout          time.Duration   `yaml:"timeout"`
	Interface        string          `yaml:"interface"`
	MetricsTextfile  string          `yaml:"metrics_textfile"`
	LogLevel         string          `yaml:"log_level"`
	LogFormat        string          `yaml:"log_format"`
	AddressProviders []providerEntry `yaml:"extra_address_providers"`
}

type providerEntry struct {
	URL string `yaml:"url"`
	// JSONField is the gjson path of the address for services that answer with JSON.
	// Leave it empty for services that answer with the bare address.
	JSONField string `yaml:"json_field"`
}

const (
	envSecretsFile = "R53DDNS_SECRETS_FILE"
	envHostedZone  = "R53DDNS_HOSTED_ZONE"
)

var errUsage = errors.New("both a secrets file and a hosted zone are required")

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("error reading config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, fmt.Errorf("error parsing config file %q: %w", path, err)
	}
	for i, p := range fc.AddressProviders {
		if p.URL == "" {
			return fc, fmt.Errorf("config file %q: extra_address_providers[%d] has no url", path, i)
		}
	}
	return fc, nil
}

// resolve fills in values that were not given as flags, first from the environment and then from the config file.
func (o *options) resolve(cmd *cobra.Command) error {
	var fc fileConfig
	if o.ConfigFile != "" {
		var err error
		if fc, err = loadFileConfig(o.ConfigFile); err != nil {
			return err
		}
	}
	changed := cmd.Flags().Changed

	setString := func(flag string, dst *string, env, file string) {
		if changed(flag) {
			return
		}
		if env != "" {
			if v, ok := os.LookupEnv(env); ok && v != "" {
				*dst = v
				return
			}
		}
		if file != "" {
			*dst = file
		}
	}
	setString("secrets-file", &o.SecretsFile, envSecretsFile, fc.SecretsFile)
	setString("hosted-zone", &o.HostedZone, envHostedZone, fc.HostedZone)
	setString("subdomain", &o.Subdomain, "", fc.Subdomain)
	setString("provider", &o.Provider, "", fc.Provider)
	setString("endpoint", &o.Endpoint, "", fc.Endpoint)
	setString("interface", &o.Interface, "", fc.Interface)
	setString("metrics-textfile", &o.MetricsTextfile, "", fc.MetricsTextfile)
	setString("log-level", &o.LogLevel, "", fc.LogLevel)
	setString("log-format", &o.LogFormat, "", fc.LogFormat)

	if !changed("timeout") && fc.Timeout > 0 {
		o.Timeout = fc.Timeout
	}
	if !changed("random-sleep") && fc.RandomSleep != nil {
		o.RandomSleep = *fc.RandomSleep
	}
	if o.NoRandomSleep {
		o.RandomSleep = false
	}

	for _, p := range fc.AddressProviders {
		if p.JSONField != "" {
			o.extraProviders = append(o.extraProviders, ddns.JSONField(p.URL, p.JSONField))
		} else {
			o.extraProviders = append(o.extraProviders, ddns.PlainText(p.URL))
		}
	}

	if o.SecretsFile == "" || o.HostedZone == "" {
		return errUsage
	}
	if o.IP != "" && o.Interface != "" {
		return errors.New("--ip and --interface cannot be used together")
	}
	return nil
}
