package ddns

import (
	"context"
	"slices"
	"sync"
)

// MemoryZones is an in-memory DNS provider.
// It is meant for tests and for trying out a configuration without touching a real zone.
type MemoryZones struct {
	mu    sync.Mutex
	zones []*MemoryZone
	// ListErr, when set, is returned by ListZones.
	ListErr error
}

func NewMemoryZones() *MemoryZones {
	return &MemoryZones{}
}

// AddZone adds a zone reported under /hostedzone/<id>.
func (m *MemoryZones) AddZone(id, name string) *MemoryZone {
	m.mu.Lock()
	defer m.mu.Unlock()
	z := &MemoryZone{mu: &m.mu, id: id, name: name}
	m.zones = append(m.zones, z)
	return z
}

// Session returns a SessionFunc that always hands out m.
func (m *MemoryZones) Session() SessionFunc {
	return func(context.Context) (Zones, error) { return m, nil }
}

func (m *MemoryZones) ListZones(context.Context) ([]Zone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	zones := make([]Zone, 0, len(m.zones))
	for _, z := range m.zones {
		zones = append(zones, z)
	}
	return zones, nil
}

// MemoryZone is a zone of MemoryZones.
type MemoryZone struct {
	mu      *sync.Mutex
	id      string
	name    string
	records []*MemoryRecord
}

// AddRecord adds a record set to the zone.
func (z *MemoryZone) AddRecord(name, recordType string, ttl int64, values ...string) *MemoryRecord {
	z.mu.Lock()
	defer z.mu.Unlock()
	r := &MemoryRecord{mu: z.mu, name: name, recordType: recordType, ttl: ttl, values: values}
	z.records = append(z.records, r)
	return r
}

func (z *MemoryZone) IdentifierPath() string { return "/hostedzone/" + z.id }
func (z *MemoryZone) Name() string           { return z.name }

func (z *MemoryZone) ListRecords(_ context.Context, recordType string) ([]Record, error) {
	z.mu.Lock()
	defer z.mu.Unlock()
	var records []Record
	for _, r := range z.records {
		if r.recordType == recordType {
			records = append(records, r)
		}
	}
	return records, nil
}

// MemoryRecord is a record set held by a MemoryZone.
type MemoryRecord struct {
	mu         *sync.Mutex
	name       string
	recordType string
	ttl        int64
	values     []string
	updates    int

	// UpdateErr, when set, is returned by Update and the record is left untouched.
	UpdateErr error
}

func (r *MemoryRecord) Name() string { return r.name }
func (r *MemoryRecord) Type() string { return r.recordType }
func (r *MemoryRecord) TTL() int64   { return r.ttl }

func (r *MemoryRecord) Values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.values)
}

// Updates reports how many times Update succeeded.
func (r *MemoryRecord) Updates() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates
}

func (r *MemoryRecord) Update(_ context.Context, values []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.values = slices.Clone(values)
	r.updates++
	return nil
}
