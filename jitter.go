package ddns

import (
	"hash/crc32"
	"time"
)

// jitterWindow is the upper bound (exclusive) of ComputeDelay, in seconds.
const jitterWindow = 60

// ComputeDelay returns how long to wait before contacting the DNS provider.
//
// The delay is the CRC-32 of hostIdentity modulo 60 seconds.
// It stays the same across runs on one host,
// while hosts running the same schedule land on different offsets.
func ComputeDelay(hostIdentity string) time.Duration {
	return time.Duration(crc32.ChecksumIEEE([]byte(hostIdentity))%jitterWindow) * time.Second
}

// Sleeper blocks for d.
// The jitter sleep is not interrupted by context cancellation.
type Sleeper func(d time.Duration)
