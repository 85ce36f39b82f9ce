package ddns

import (
	"context"
	"fmt"
	"strings"
)

// RecordTypeA is the only record type managed by this package.
const RecordTypeA = "A"

// Outcome reports what a reconciliation did.
type Outcome int

const (
	NoChangeNeeded Outcome = iota
	Updated
)

func (o Outcome) String() string {
	switch o {
	case NoChangeNeeded:
		return "NoChangeNeeded"
	case Updated:
		return "Updated"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// LocateRecord finds the single address record to manage.
//
// Exactly one zone must have the ID hostedZoneID, otherwise ErrZoneNotFound is returned.
// When subdomain is not empty, only records whose name starts with subdomain are considered;
// otherwise every address record in the zone is.
// Exactly one record must remain: none is ErrRecordNotFound and more than one is ErrAmbiguousRecord.
func LocateRecord(ctx context.Context, zones Zones, hostedZoneID, subdomain string) (Record, error) {
	all, err := zones.ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing zones: %w", err)
	}

	var matched []Zone
	for _, z := range all {
		id, err := ParseZoneID(z.IdentifierPath())
		if err != nil {
			continue
		}
		if id == hostedZoneID {
			matched = append(matched, z)
		}
	}
	if len(matched) != 1 {
		return nil, fmt.Errorf("%w: %d zones have ID %q", ErrZoneNotFound, len(matched), hostedZoneID)
	}

	records, err := matched[0].ListRecords(ctx, RecordTypeA)
	if err != nil {
		return nil, fmt.Errorf("error listing %s records of zone %q: %w", RecordTypeA, hostedZoneID, err)
	}

	var candidates []Record
	for _, r := range records {
		if subdomain == "" || strings.HasPrefix(r.Name(), subdomain) {
			candidates = append(candidates, r)
		}
	}

	switch {
	case len(candidates) == 0 && subdomain != "":
		return nil, fmt.Errorf("%w: no %s record with name %s in zone %q", ErrRecordNotFound, RecordTypeA, subdomain, hostedZoneID)
	case len(candidates) == 0:
		return nil, fmt.Errorf("%w: zone %q has no %s records", ErrRecordNotFound, hostedZoneID, RecordTypeA)
	case len(candidates) > 1 && subdomain != "":
		return nil, fmt.Errorf("%w: %d %s records with name %s; only one can be updated", ErrAmbiguousRecord, len(candidates), RecordTypeA, subdomain)
	case len(candidates) > 1:
		return nil, fmt.Errorf("%w: zone %q has %d %s records; use a subdomain to pick one", ErrAmbiguousRecord, hostedZoneID, len(candidates), RecordTypeA)
	}
	return candidates[0], nil
}

// CurrentValue returns the first value stored on the record, or "" if it has none.
func CurrentValue(r Record) string {
	values := r.Values()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Reconcile updates r to hold only desired, unless CurrentValue(r) already equals desired.
//
// The comparison is a plain string comparison, with no normalization of the address.
func Reconcile(ctx context.Context, r Record, desired string) (Outcome, error) {
	if CurrentValue(r) == desired {
		return NoChangeNeeded, nil
	}
	if err := r.Update(ctx, []string{desired}); err != nil {
		return NoChangeNeeded, fmt.Errorf("error updating record %s: %w", r.Name(), err)
	}
	return Updated, nil
}
