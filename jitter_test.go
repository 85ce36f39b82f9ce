package ddns_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/Travis-Britz/r53ddns"
)

func TestComputeDelay(t *testing.T) {
	tests := []struct {
		host string
		want time.Duration
	}{
		{"", 0},
		{"a", 27 * time.Second},     // crc32 0xe8b7be43
		{"hello", 10 * time.Second}, // crc32 0x3610a686
	}
	for _, tt := range tests {
		if got := ddns.ComputeDelay(tt.host); got != tt.want {
			t.Errorf("ComputeDelay(%q) = %s; want %s", tt.host, got, tt.want)
		}
	}
}

func TestComputeDelayRange(t *testing.T) {
	seen := map[time.Duration]bool{}
	for i := 0; i < 500; i++ {
		host := fmt.Sprintf("host-%d.example.com", i)
		d := ddns.ComputeDelay(host)
		if d < 0 || d >= time.Minute {
			t.Fatalf("Expected delay in [0, 60s) for %q; got %s", host, d)
		}
		if d%time.Second != 0 {
			t.Fatalf("Expected whole seconds for %q; got %s", host, d)
		}
		if again := ddns.ComputeDelay(host); again != d {
			t.Fatalf("Expected a stable delay for %q; got %s then %s", host, d, again)
		}
		seen[d] = true
	}
	if len(seen) < 30 {
		t.Fatalf("Expected delays to spread across the window; only saw %d distinct values", len(seen))
	}
}
