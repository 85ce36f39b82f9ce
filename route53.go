package ddns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/route53/types"
)

// route53Region is the signing region of the global Route53 API.
const route53Region = "us-east-1"

// route53API is the subset of *route53.Client used by the Route53 session.
type route53API interface {
	ListHostedZones(ctx context.Context, params *route53.ListHostedZonesInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesOutput, error)
	ListResourceRecordSets(ctx context.Context, params *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error)
	ChangeResourceRecordSets(ctx context.Context, params *route53.ChangeResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ChangeResourceRecordSetsOutput, error)
}

func newRoute53Zones(creds Credentials, cfg Config, httpClient *http.Client, logger *slog.Logger) (*route53Zones, error) {
	if creds.AccessKey == "" || creds.SecretKey == "" {
		return nil, errors.New("route53 requires both an access key and a secret key")
	}
	opts := route53.Options{
		Region:      route53Region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, "")),
		// a failed call ends the run; the scheduler runs us again later
		Retryer: aws.NopRetryer{},
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	if httpClient != nil {
		opts.HTTPClient = httpClient
	}
	return &route53Zones{api: route53.New(opts), logger: logger}, nil
}

// route53Zones implements ddns.Zones for Amazon Route53.
type route53Zones struct {
	api    route53API
	logger *slog.Logger
}

func (r *route53Zones) ListZones(ctx context.Context) ([]Zone, error) {
	var zones []Zone
	in := &route53.ListHostedZonesInput{}
	for {
		out, err := r.api.ListHostedZones(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("error listing hosted zones: %w", err)
		}
		for _, hz := range out.HostedZones {
			zones = append(zones, &route53Zone{
				api:    r.api,
				logger: r.logger,
				path:   aws.ToString(hz.Id),
				name:   aws.ToString(hz.Name),
			})
		}
		if !out.IsTruncated {
			break
		}
		in.Marker = out.NextMarker
	}
	r.logger.Debug("listed hosted zones", slog.Int("count", len(zones)))
	return zones, nil
}

type route53Zone struct {
	api    route53API
	logger *slog.Logger
	path   string // /hostedzone/<id>
	name   string
}

func (z *route53Zone) IdentifierPath() string { return z.path }
func (z *route53Zone) Name() string           { return z.name }

// ListRecords returns the record sets of the given type.
// Alias record sets carry no values of their own and are left out.
func (z *route53Zone) ListRecords(ctx context.Context, recordType string) ([]Record, error) {
	id, err := ParseZoneID(z.path)
	if err != nil {
		return nil, err
	}
	var records []Record
	in := &route53.ListResourceRecordSetsInput{HostedZoneId: aws.String(id)}
	for {
		out, err := z.api.ListResourceRecordSets(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("error listing record sets: %w", err)
		}
		for _, set := range out.ResourceRecordSets {
			if string(set.Type) != recordType || set.AliasTarget != nil {
				continue
			}
			records = append(records, &route53Record{api: z.api, zoneID: id, set: set})
		}
		if !out.IsTruncated {
			break
		}
		in.StartRecordName = out.NextRecordName
		in.StartRecordType = out.NextRecordType
		in.StartRecordIdentifier = out.NextRecordIdentifier
	}
	z.logger.Debug("listed record sets", slog.String("zone", id), slog.String("type", recordType), slog.Int("count", len(records)))
	return records, nil
}

type route53Record struct {
	api    route53API
	zoneID string
	set    types.ResourceRecordSet
}

func (r *route53Record) Name() string { return aws.ToString(r.set.Name) }

func (r *route53Record) Values() []string {
	values := make([]string, 0, len(r.set.ResourceRecords))
	for _, rr := range r.set.ResourceRecords {
		values = append(values, aws.ToString(rr.Value))
	}
	return values
}

// Update upserts a copy of the record set with only the resource records replaced,
// so TTL, set identifier and routing policy stay as they were.
func (r *route53Record) Update(ctx context.Context, values []string) error {
	set := r.set
	set.ResourceRecords = make([]types.ResourceRecord, 0, len(values))
	for _, v := range values {
		set.ResourceRecords = append(set.ResourceRecords, types.ResourceRecord{Value: aws.String(v)})
	}
	_, err := r.api.ChangeResourceRecordSets(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(r.zoneID),
		ChangeBatch: &types.ChangeBatch{
			Comment: aws.String("updated by r53ddns"),
			Changes: []types.Change{{
				Action:            types.ChangeActionUpsert,
				ResourceRecordSet: &set,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("error changing record set %s: %w", r.Name(), err)
	}
	r.set = set
	return nil
}

// OpenRoute53 opens a Route53 session outside of a client, e.g. to check a key pair.
func OpenRoute53(creds Credentials, cfg Config) (Zones, error) {
	return newRoute53Zones(creds, cfg, nil, discard)
}
