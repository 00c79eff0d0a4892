package models

import "fmt"

// SiteEra identifies which generation of the publishing platform produced an
// access log record. Each era has its own URL scheme, so the era picks the
// resolver variant used to classify the access.
type SiteEra string

const (
	// EraClassic covers scielo.php-style URLs with script/pid query parameters.
	EraClassic SiteEra = "classic"
	// EraNew covers the /j/<acronym>/... template paths.
	EraNew SiteEra = "new"
	// EraPreprint covers the preprint server's numeric-identifier paths.
	EraPreprint SiteEra = "preprint"
	// EraSecondary covers the secondary-platform (ssp) template paths.
	EraSecondary SiteEra = "ssp"
)

func NewSiteEraFromString(s string) (SiteEra, error) {
	switch SiteEra(s) {
	case EraClassic, EraNew, EraPreprint, EraSecondary:
		return SiteEra(s), nil
	}
	return "", fmt.Errorf("invalid site era: %q", s)
}
