package usghole

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// Null-route addresses commonly used as the first field of hosts-style
// blacklists. Entries starting with one of these carry the domain in the
// second field.
var nullRouteSentinels = map[string]struct{}{
	"0.0.0.0":   {},
	"127.0.0.1": {},
}

// Default addresses blocked domains are resolved to.
const (
	DefaultTargetV4 = "0.0.0.0"
	DefaultTargetV6 = "::1"
)

// TransformOptions holds options for turning a normalized document into
// resolver rules.
type TransformOptions struct {
	// Address returned for blocked A lookups. Defaults to DefaultTargetV4.
	TargetV4 string

	// Address returned for blocked AAAA lookups. Defaults to DefaultTargetV6.
	TargetV6 string
}

// ParseHostEntry extracts the blocked domain from one blacklist line. Lines
// follow the hosts-file convention "<address> <domain>"; if the first field is
// a known null-route address the domain is the second field, otherwise the line
// is treated as a bare domain and the first field is used. The domain is
// lowercased and stripped of a trailing dot.
func ParseHostEntry(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", &MalformedEntryError{Line: line, Reason: "empty entry"}
	}
	domain := fields[0]
	if _, ok := nullRouteSentinels[fields[0]]; ok {
		if len(fields) < 2 {
			return "", &MalformedEntryError{Line: line, Reason: "no domain after null-route address"}
		}
		domain = fields[1]
	}
	domain = strings.TrimSuffix(strings.ToLower(domain), ".")
	if domain == "" {
		return "", &MalformedEntryError{Line: line, Reason: "empty domain"}
	}
	if _, ok := dns.IsDomainName(domain); !ok {
		return "", &MalformedEntryError{Line: line, Reason: "not a valid domain name"}
	}
	return domain, nil
}

// Transform emits one dnsmasq null-route directive per document line for each
// address family, formatted "address=/<domain>/<target>/". Lines that don't
// parse into a usable domain are logged and skipped.
func Transform(doc []string, opt TransformOptions) (v4 []string, v6 []string) {
	if opt.TargetV4 == "" {
		opt.TargetV4 = DefaultTargetV4
	}
	if opt.TargetV6 == "" {
		opt.TargetV6 = DefaultTargetV6
	}
	for _, line := range doc {
		domain, err := ParseHostEntry(line)
		if err != nil {
			Log.WithError(err).Warn("skipping blacklist entry")
			continue
		}
		v4 = append(v4, fmt.Sprintf("address=/%s/%s/", domain, opt.TargetV4))
		v6 = append(v6, fmt.Sprintf("address=/%s/%s/", domain, opt.TargetV6))
	}
	return v4, v6
}
