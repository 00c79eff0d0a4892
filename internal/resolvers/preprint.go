package resolvers

import (
	"net/url"
	"strings"

	"usage-counter/internal/dictionaries"
	"usage-counter/internal/models"
	"usage-counter/internal/shared/loggers"
)

// PreprintISSN is the fixed placeholder journal identifier assigned to every
// preprint access: the preprint server has no per-journal ISSNs.
const PreprintISSN = "9999-9999"

// PreprintResolver handles the preprint server's URL scheme. Preprints carry
// a native numeric identifier, a single default language per item, and no
// per-record format negotiation.
type PreprintResolver struct {
	base
}

func NewPreprintResolver(tables *dictionaries.Tables, logger loggers.Logger) *PreprintResolver {
	return &PreprintResolver{base: base{tables: tables, logger: logger}}
}

func (r *PreprintResolver) Resolve(rec *models.RawAccessRecord) Resolution {
	target := strings.ToLower(strings.TrimSpace(rec.ActionTarget))
	collection := r.tables.CollectionForHost(strings.ToLower(rec.Host))

	parsed, err := url.Parse(target)
	if err != nil {
		return Resolution{Collection: collection, Format: models.FormatUndefined}
	}
	if parsed.Host != "" {
		collection = r.tables.CollectionForHost(parsed.Host)
	}

	res := Resolution{
		Collection:  collection,
		ContentType: models.ContentOther,
		Format:      models.FormatUndefined,
	}

	segments := splitPath(parsed.Path)
	for i, segment := range segments {
		if segment != "preprint" || i+1 >= len(segments) {
			continue
		}
		switch segments[i+1] {
		case "view":
			res.ContentType = models.ContentFullText
			res.Format = models.FormatHTML
		case "download":
			res.ContentType = models.ContentPDFDirect
			res.Format = models.FormatPDF
		default:
			return res
		}
		if i+2 < len(segments) && isNumeric(segments[i+2]) {
			res.PID = segments[i+2]
		}
		break
	}

	if res.PID != "" {
		res.HitType = models.HitTypeArticle
		res.ISSN = PreprintISSN
		// One default language per preprint; no embedded year to fall back on.
		if lang := r.tables.DefaultLanguage(collection, res.PID); lang != "" {
			res.Language = lang
		} else {
			res.Language = defaultLanguage
		}
		res.YearOfPublication = r.tables.PublicationYear(collection, res.PID)
		metricResolvedTotal.WithLabelValues(string(models.EraPreprint), res.HitType.String()).Inc()
	} else {
		res.ContentType = models.ContentOther
		res.Format = models.FormatUndefined
		metricUnresolvedTotal.WithLabelValues(string(models.EraPreprint)).Inc()
	}

	return res
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
