// Package geoip resolves donor countries from client IPs using a MaxMind
// GeoIP2 database. Attribution is best effort: a missing database or an
// unknown IP yields an empty country, never a failed pledge.
package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

var ErrUnavailable = errors.New("geoip: resolver unavailable")

// CountryResolver resolves an ISO 3166-1 alpha-2 country code for an IP.
type CountryResolver interface {
	CountryCode(ip string) (string, error)
}

type Resolver struct {
	reader *geoip2.Reader
}

// NewResolver opens the database at path. An empty path disables attribution
// and returns a nil resolver without error.
func NewResolver(path string) (CountryResolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database %q: %w", path, err)
	}
	return &Resolver{reader: reader}, nil
}

// CountryCode looks up the country for ip. Addresses absent from the
// database resolve to an empty code with no error.
func (r *Resolver) CountryCode(ip string) (string, error) {
	if r == nil || r.reader == nil {
		return "", ErrUnavailable
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("geoip: invalid ip %q", ip)
	}
	record, err := r.reader.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup %s: %w", ip, err)
	}
	if record == nil {
		return "", nil
	}
	return record.Country.IsoCode, nil
}

func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}
