package resolvers

import (
	"strings"
	"sync"

	"usage-counter/internal/dictionaries"
	"usage-counter/internal/models"
	"usage-counter/internal/shared/loggers"
)

// defaultLanguage is the system-wide fallback when neither the URL nor the
// lookup tables can determine an access language.
const defaultLanguage = "pt"

// Resolution is the identity a resolver extracted from a raw action target.
// Unresolvable fields are left empty; resolvers never fail on malformed
// input, the downstream validity/trackability gates reject what could not be
// classified.
type Resolution struct {
	Collection        string
	PID               string
	ISSN              string
	ContentType       models.ContentType
	HitType           models.HitType
	Format            models.Format
	Language          string
	YearOfPublication string
}

// Resolver turns one raw access record into a Resolution. Implementations
// are pure per record (shared lookup tables are read-only), so records may
// be resolved in parallel.
type Resolver interface {
	Resolve(rec *models.RawAccessRecord) Resolution
}

// Set bundles the per-era resolver variants behind a single dispatch point.
type Set struct {
	classic   Resolver
	new       Resolver
	preprint  Resolver
	secondary Resolver
}

func NewSet(tables *dictionaries.Tables, logger loggers.Logger) *Set {
	return &Set{
		classic:   NewClassicResolver(tables, logger),
		new:       NewTemplateResolver(tables, logger),
		preprint:  NewPreprintResolver(tables, logger),
		secondary: NewSecondaryResolver(tables, logger),
	}
}

// ForEra returns the resolver variant for a site era. Unknown eras resolve
// with the classic variant, the broadest of the four.
func (s *Set) ForEra(era models.SiteEra) Resolver {
	switch era {
	case models.EraNew:
		return s.new
	case models.EraPreprint:
		return s.preprint
	case models.EraSecondary:
		return s.secondary
	}
	return s.classic
}

// base carries what every resolver variant needs.
type base struct {
	tables *dictionaries.Tables
	logger loggers.Logger
}

// resolveLanguage picks the access language for an article: the URL-supplied
// language when the item is known to be available in it for this format,
// else the item's registered default, else the system default.
func (b *base) resolveLanguage(collection, pid string, format models.Format, requested string) string {
	if requested != "" && b.tables.HasLanguage(collection, pid, format, requested) {
		return requested
	}
	if def := b.tables.DefaultLanguage(collection, pid); def != "" {
		return def
	}
	return defaultLanguage
}

// resolveYear prefers the dates table; failing that it falls back to the
// 4-digit segment embedded right after the PID marker.
func (b *base) resolveYear(collection, pid string) string {
	if year := b.tables.PublicationYear(collection, pid); models.IsPublicationYear(year) {
		return year
	}
	return models.YearFromPID(pid)
}

// resolveHitType derives the hit type primarily from the PID shape, falling
// back to the content type's numeric range when the PID is absent or does
// not match any known shape.
func resolveHitType(pid string, contentType models.ContentType) models.HitType {
	switch {
	case models.IsArticlePID(pid):
		return models.HitTypeArticle
	case models.IsIssueCode(pid):
		return models.HitTypeIssue
	case models.IsISSN(pid):
		return models.HitTypeJournal
	}
	if contentType == models.ContentOther {
		return models.HitTypeUndefined
	}
	return contentType.HitTypeForRange()
}

// sanitizeToken trims a raw parameter to its first whitespace-delimited
// token and strips a trailing period.
func sanitizeToken(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, ".")
}

// sanitizePID additionally strips every character that cannot occur in a
// PID (digits, the S marker, hyphen, and the X check digit) and upper-cases
// the survivors into canonical form.
func sanitizePID(s string) string {
	s = sanitizeToken(s)
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '-':
			sb.WriteRune(r)
		case r == 'S' || r == 's' || r == 'x' || r == 'X':
			sb.WriteRune(r)
		}
	}
	return strings.ToUpper(sb.String())
}

// splitPath returns the non-empty, lowercased segments of a URL path.
func splitPath(p string) []string {
	parts := strings.Split(strings.ToLower(p), "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// issnTracker records every distinct ISSN observed for a PID across a run.
// A PID accumulating more than two ISSNs is a data-quality signal (usually a
// moved or re-registered journal), logged as a warning and never fatal.
type issnTracker struct {
	mu    sync.Mutex
	byPID map[string]map[string]struct{}
}

func newISSNTracker() *issnTracker {
	return &issnTracker{byPID: make(map[string]map[string]struct{})}
}

// observe registers issn for pid and returns the number of distinct ISSNs
// seen for that pid so far.
func (t *issnTracker) observe(pid, issn string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	seen, ok := t.byPID[pid]
	if !ok {
		seen = make(map[string]struct{}, 1)
		t.byPID[pid] = seen
	}
	seen[issn] = struct{}{}
	return len(seen)
}
