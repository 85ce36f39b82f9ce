package ddns

import "errors"

var (
	// ErrNoUsableProvider is returned when every address provider failed.
	ErrNoUsableProvider = errors.New("cannot get current IP from any of the external services")

	// ErrZoneNotFound is returned when the hosted zone ID matches zero or several zones.
	ErrZoneNotFound = errors.New("cannot find hosted zone")

	// ErrRecordNotFound is returned when no address record survives the subdomain filter.
	ErrRecordNotFound = errors.New("address record not found")

	// ErrAmbiguousRecord is returned when more than one address record survives the subdomain filter.
	ErrAmbiguousRecord = errors.New("more than one address record matches")

	// ErrInvalidZoneID is returned by ParseZoneID.
	ErrInvalidZoneID = errors.New("invalid zone identifier path")
)
