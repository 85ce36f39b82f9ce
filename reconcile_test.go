package ddns_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Travis-Britz/r53ddns"
)

func TestLocateRecord(t *testing.T) {
	zones := ddns.NewMemoryZones()
	zones.AddZone("Z999", "other.com.").AddRecord("other.com.", "A", 300, "9.9.9.9")
	z := zones.AddZone("Z123", "example.com.")
	z.AddRecord("home.example.com.", "A", 300, "1.2.3.4")
	z.AddRecord("office.example.com.", "A", 300, "1.2.3.5")
	z.AddRecord("office-backup.example.com.", "A", 300, "1.2.3.6")
	z.AddRecord("home.example.com.", "AAAA", 300, "2001:db8::1")
	z.AddRecord("example.com.", "MX", 300, "10 mail.example.com.")

	tests := []struct {
		name      string
		zone      string
		subdomain string
		want      string
		err       error
	}{
		{"unique prefix", "Z123", "home", "home.example.com.", nil},
		{"full name", "Z123", "office-backup.example.com.", "office-backup.example.com.", nil},
		{"no match", "Z123", "garage", "", ddns.ErrRecordNotFound},
		{"shared prefix", "Z123", "office", "", ddns.ErrAmbiguousRecord},
		{"no filter with many records", "Z123", "", "", ddns.ErrAmbiguousRecord},
		{"no filter with one record", "Z999", "", "other.com.", nil},
		{"unknown zone", "Z404", "home", "", ddns.ErrZoneNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ddns.LocateRecord(context.Background(), zones, tt.zone, tt.subdomain)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("Expected %q; got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LocateRecord failed: %s", err)
			}
			if r.Name() != tt.want {
				t.Fatalf("Expected %q; got %q", tt.want, r.Name())
			}
		})
	}
}

func TestLocateRecordDuplicateZone(t *testing.T) {
	zones := ddns.NewMemoryZones()
	zones.AddZone("Z123", "example.com.").AddRecord("home.example.com.", "A", 300, "1.2.3.4")
	zones.AddZone("Z123", "example.com.").AddRecord("home.example.com.", "A", 300, "1.2.3.4")

	_, err := ddns.LocateRecord(context.Background(), zones, "Z123", "")
	if !errors.Is(err, ddns.ErrZoneNotFound) {
		t.Fatalf("Expected ErrZoneNotFound; got %v", err)
	}
}

func TestLocateRecordEmptyZone(t *testing.T) {
	zones := ddns.NewMemoryZones()
	zones.AddZone("Z123", "example.com.")

	_, err := ddns.LocateRecord(context.Background(), zones, "Z123", "")
	if !errors.Is(err, ddns.ErrRecordNotFound) {
		t.Fatalf("Expected ErrRecordNotFound; got %v", err)
	}
}

func TestLocateRecordListError(t *testing.T) {
	boom := errors.New("throttled")
	zones := ddns.NewMemoryZones()
	zones.ListErr = boom

	_, err := ddns.LocateRecord(context.Background(), zones, "Z123", "")
	if !errors.Is(err, boom) {
		t.Fatalf("Expected the provider error to be returned; got %v", err)
	}
}

func TestCurrentValue(t *testing.T) {
	zones := ddns.NewMemoryZones()
	z := zones.AddZone("Z123", "example.com.")
	if got := ddns.CurrentValue(z.AddRecord("a.example.com.", "A", 60, "1.1.1.1", "2.2.2.2")); got != "1.1.1.1" {
		t.Fatalf("Expected %q; got %q", "1.1.1.1", got)
	}
	if got := ddns.CurrentValue(z.AddRecord("b.example.com.", "A", 60)); got != "" {
		t.Fatalf("Expected an empty value; got %q", got)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	zones := ddns.NewMemoryZones()
	r := zones.AddZone("Z123", "example.com.").AddRecord("home.example.com.", "A", 300, "1.2.3.4")

	outcome, err := ddns.Reconcile(context.Background(), r, "5.6.7.8")
	if err != nil {
		t.Fatalf("Reconcile failed: %s", err)
	}
	if outcome != ddns.Updated {
		t.Fatalf("Expected %s; got %s", ddns.Updated, outcome)
	}

	outcome, err = ddns.Reconcile(context.Background(), r, "5.6.7.8")
	if err != nil {
		t.Fatalf("Reconcile failed: %s", err)
	}
	if outcome != ddns.NoChangeNeeded {
		t.Fatalf("Expected %s; got %s", ddns.NoChangeNeeded, outcome)
	}
	if r.Updates() != 1 {
		t.Fatalf("Expected 1 update; got %d", r.Updates())
	}
}

func TestReconcileNoNormalization(t *testing.T) {
	zones := ddns.NewMemoryZones()
	r := zones.AddZone("Z123", "example.com.").AddRecord("home.example.com.", "A", 300, "10.0.0.1")

	outcome, err := ddns.Reconcile(context.Background(), r, "010.0.0.1")
	if err != nil {
		t.Fatalf("Reconcile failed: %s", err)
	}
	if outcome != ddns.Updated {
		t.Fatalf("Expected a literal comparison to see a difference; got %s", outcome)
	}
}

func TestReconcileUpdateError(t *testing.T) {
	boom := errors.New("access denied")
	zones := ddns.NewMemoryZones()
	r := zones.AddZone("Z123", "example.com.").AddRecord("home.example.com.", "A", 300, "1.2.3.4")
	r.UpdateErr = boom

	_, err := ddns.Reconcile(context.Background(), r, "5.6.7.8")
	if !errors.Is(err, boom) {
		t.Fatalf("Expected the provider error to be returned; got %v", err)
	}
	if got := r.Values(); len(got) != 1 || got[0] != "1.2.3.4" {
		t.Fatalf("Expected the record to be untouched; got %v", got)
	}
}

func TestOutcomeString(t *testing.T) {
	if got := ddns.NoChangeNeeded.String(); got != "NoChangeNeeded" {
		t.Fatalf("Expected %q; got %q", "NoChangeNeeded", got)
	}
	if got := ddns.Updated.String(); got != "Updated" {
		t.Fatalf("Expected %q; got %q", "Updated", got)
	}
}
