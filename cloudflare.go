package ddns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cloudflare/cloudflare-go"
)

func newCloudflareZones(creds Credentials, httpClient *http.Client, baseURL string, logger *slog.Logger) (*cloudflareZones, error) {
	var opts []cloudflare.Option
	if httpClient != nil {
		opts = append(opts, cloudflare.HTTPClient(httpClient))
	}
	if baseURL != "" {
		opts = append(opts, cloudflare.BaseURL(baseURL))
	}

	var (
		api *cloudflare.API
		err error
	)
	switch {
	case creds.APIToken != "":
		api, err = cloudflare.NewWithAPIToken(creds.APIToken, opts...)
	case creds.AccessKey != "" && creds.SecretKey != "":
		// legacy global key: access_key holds the account email
		api, err = cloudflare.New(creds.SecretKey, creds.AccessKey, opts...)
	default:
		return nil, errors.New("cloudflare requires an api_token, or an access_key (email) and secret_key (global API key)")
	}
	if err != nil {
		return nil, fmt.Errorf("error creating cloudflare api client: %w", err)
	}
	return &cloudflareZones{api: api, logger: logger}, nil
}

// cloudflareZones implements ddns.Zones for Cloudflare.
//
// Zones are reported under the identifier path /zones/<zone id>,
// so the hosted zone ID given to ddns.New is the Cloudflare zone ID.
type cloudflareZones struct {
	api    *cloudflare.API
	logger *slog.Logger
}

func (cf *cloudflareZones) ListZones(ctx context.Context) ([]Zone, error) {
	zs, err := cf.api.ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing zones: %w", err)
	}
	zones := make([]Zone, 0, len(zs))
	for _, z := range zs {
		zones = append(zones, &cloudflareZone{api: cf.api, logger: cf.logger, id: z.ID, name: z.Name})
	}
	cf.logger.Debug("listed zones", slog.Int("count", len(zones)))
	return zones, nil
}

type cloudflareZone struct {
	api    *cloudflare.API
	logger *slog.Logger
	id     string
	name   string
}

func (z *cloudflareZone) IdentifierPath() string { return "/zones/" + z.id }
func (z *cloudflareZone) Name() string           { return z.name }

func (z *cloudflareZone) ListRecords(ctx context.Context, recordType string) ([]Record, error) {
	recs, _, err := z.api.ListDNSRecords(ctx, cloudflare.ZoneIdentifier(z.id), cloudflare.ListDNSRecordsParams{
		Type: recordType,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing DNS records: %w", err)
	}
	z.logger.Debug("listed DNS records", slog.String("zone", z.id), slog.String("type", recordType), slog.Int("count", len(recs)))
	records := make([]Record, 0, len(recs))
	for _, r := range recs {
		records = append(records, &cloudflareRecord{api: z.api, zoneID: z.id, rec: r})
	}
	return records, nil
}

// cloudflareRecord is a single Cloudflare DNS record.
// Cloudflare stores one address per record, so Values has at most one element.
type cloudflareRecord struct {
	api    *cloudflare.API
	zoneID string
	rec    cloudflare.DNSRecord
}

func (r *cloudflareRecord) Name() string { return r.rec.Name }

func (r *cloudflareRecord) Values() []string {
	if r.rec.Content == "" {
		return nil
	}
	return []string{r.rec.Content}
}

func (r *cloudflareRecord) Update(ctx context.Context, values []string) error {
	if len(values) != 1 {
		return fmt.Errorf("cloudflare records hold exactly one value; got %d", len(values))
	}
	rec, err := r.api.UpdateDNSRecord(ctx, cloudflare.ZoneIdentifier(r.zoneID), cloudflare.UpdateDNSRecordParams{
		ID:      r.rec.ID,
		Type:    r.rec.Type,
		Name:    r.rec.Name,
		Content: values[0],
		TTL:     r.rec.TTL,
		Proxied: r.rec.Proxied,
		Comment: r.rec.Comment,
	})
	if err != nil {
		return fmt.Errorf("unable to update DNS record %s: %w", r.rec.ID, err)
	}
	r.rec = rec
	return nil
}

// OpenCloudflare opens a Cloudflare session outside of a client, e.g. to check a token.
func OpenCloudflare(creds Credentials) (Zones, error) {
	return newCloudflareZones(creds, nil, "", discard)
}
