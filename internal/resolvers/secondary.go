package resolvers

import (
	"net/url"
	"strings"

	"usage-counter/internal/dictionaries"
	"usage-counter/internal/models"
	"usage-counter/internal/shared/loggers"
)

// SecondaryResolver handles the secondary platform's template. The path
// families mirror the main template's /j/<acronym>/... scheme with separate
// HTML, PDF and media-asset branches, but acronyms resolve through the
// platform's own registry.
type SecondaryResolver struct {
	base
}

func NewSecondaryResolver(tables *dictionaries.Tables, logger loggers.Logger) *SecondaryResolver {
	return &SecondaryResolver{base: base{tables: tables, logger: logger}}
}

func (r *SecondaryResolver) Resolve(rec *models.RawAccessRecord) Resolution {
	target := strings.ToLower(strings.TrimSpace(rec.ActionTarget))
	collection := r.tables.CollectionForHost(strings.ToLower(rec.Host))

	parsed, err := url.Parse(target)
	if err != nil {
		return Resolution{Collection: collection, Format: models.FormatUndefined}
	}
	if parsed.Host != "" {
		collection = r.tables.CollectionForHost(parsed.Host)
	}

	res := r.resolvePath(collection, splitPath(parsed.Path), parsed.Path)
	res.Collection = collection
	res.HitType = resolveHitType(res.PID, res.ContentType)
	if res.Format == "" {
		res.Format = res.ContentType.Format()
	}

	if res.HitType == models.HitTypeArticle && res.PID != "" {
		res.YearOfPublication = r.resolveYear(collection, res.PID)
		res.Language = r.resolveLanguage(collection, res.PID, res.Format, sanitizeToken(parsed.Query().Get("lang")))
	}

	if res.ContentType == models.ContentOther && res.PID == "" {
		metricUnresolvedTotal.WithLabelValues(string(models.EraSecondary)).Inc()
	} else {
		metricResolvedTotal.WithLabelValues(string(models.EraSecondary), res.HitType.String()).Inc()
	}

	return res
}

func (r *SecondaryResolver) resolvePath(collection string, segments []string, rawPath string) Resolution {
	switch {
	case len(segments) >= 2 && segments[0] == "j":
		issn := r.tables.SecondaryISSNFromAcronym(segments[1])
		if issn == "" {
			r.logger.Warn().
				Str(loggers.FieldCollection, collection).
				Str("acronym", segments[1]).
				Msg("secondary platform acronym has no issn mapping")
		}
		return r.resolveJournalPath(issn, segments)

	case len(segments) >= 1 && segments[0] == "pdf":
		return Resolution{
			ContentType: models.ContentPDFDirect,
			Format:      models.FormatPDF,
			PID:         r.tables.PIDFromPDFPath(collection, normalizePDFPath(rawPath)),
		}

	case len(segments) >= 2 && segments[0] == "media" && segments[1] == "assets":
		// Media assets (figures, supplements) are not countable content.
		return Resolution{ContentType: models.ContentOther, Format: models.FormatUndefined}
	}

	return Resolution{ContentType: models.ContentOther, Format: models.FormatUndefined}
}

func (r *SecondaryResolver) resolveJournalPath(issn string, segments []string) Resolution {
	switch {
	case len(segments) >= 4 && segments[2] == "a":
		pid := sanitizePID(segments[3])
		if len(segments) >= 5 && segments[4] == "pdf" {
			return Resolution{PID: pid, ISSN: issn, ContentType: models.ContentPDFRequest, Format: models.FormatPDF}
		}
		if len(segments) >= 5 && segments[4] == "abstract" {
			return Resolution{PID: pid, ISSN: issn, ContentType: models.ContentAbstract, Format: models.FormatHTML}
		}
		return Resolution{PID: pid, ISSN: issn, ContentType: models.ContentFullText, Format: models.FormatHTML}

	case len(segments) >= 3 && segments[2] == "grid":
		return Resolution{ISSN: issn, ContentType: models.ContentJournalIssueGrid}

	case len(segments) >= 4 && segments[2] == "i":
		return Resolution{PID: segments[3], ISSN: issn, ContentType: models.ContentIssueTOC}

	case len(segments) == 2:
		return Resolution{ISSN: issn, ContentType: models.ContentJournalHome}
	}

	return Resolution{ISSN: issn, ContentType: models.ContentOther, Format: models.FormatUndefined}
}
