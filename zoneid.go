package ddns

import (
	"fmt"
	"strings"
)

// ParseZoneID extracts the zone ID from a zone identifier path.
//
// An identifier path has exactly the form /<collection>/<id>,
// for example /hostedzone/Z1D633PJN98FT9 for Route53 or /zones/023e105f4ecef8ad9ca31a8372d0c353 for Cloudflare.
// The ID is the segment following the second slash.
func ParseZoneID(identifierPath string) (string, error) {
	parts := strings.Split(identifierPath, "/")
	if len(parts) != 3 || parts[0] != "" || parts[1] == "" || parts[2] == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidZoneID, identifierPath)
	}
	return parts[2], nil
}
