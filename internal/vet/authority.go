package vet

import (
	"net/url"
	"strings"
)

// Tier classifies how authoritative a cited source's host is. Supplementary
// data only; tiers never affect the credibility score.
type Tier int

const (
	TierUnknown   Tier = 0
	TierPrimary   Tier = 1 // government, academic, official records
	TierSecondary Tier = 2 // encyclopedias, major publishers, wire services
	TierTertiary  Tier = 3 // blogs, personal sites, everything else
)

func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

var secondaryHosts = map[string]bool{
	"wikipedia.org":  true,
	"britannica.com": true,
	"reuters.com":    true,
	"apnews.com":     true,
	"bbc.com":        true,
	"snopes.com":     true,
	"factcheck.org":  true,
	"politifact.com": true,
}

// ClassifyHost maps a source URL to an authority tier. Unparseable input is
// tertiary.
func ClassifyHost(rawURL string) Tier {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return TierTertiary
	}

	host := parsed.Host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}

	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") ||
		strings.HasSuffix(host, ".ac.uk") {
		return TierPrimary
	}

	for domain := range secondaryHosts {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return TierSecondary
		}
	}

	return TierTertiary
}
