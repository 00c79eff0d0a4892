package resolvers

import (
	"net/url"
	"path"
	"strings"

	"usage-counter/internal/dictionaries"
	"usage-counter/internal/models"
	"usage-counter/internal/shared/loggers"
)

// maxISSNsPerPID is the tolerated number of distinct ISSNs observed for one
// PID in a run before the data-quality warning fires.
const maxISSNsPerPID = 2

// TemplateResolver handles the /j/<acronym>/... path family of the current
// site template. Resource identity lives in path segments; the acronym is
// translated to an ISSN through the lookup tables.
type TemplateResolver struct {
	base
	tracker *issnTracker
}

func NewTemplateResolver(tables *dictionaries.Tables, logger loggers.Logger) *TemplateResolver {
	return &TemplateResolver{
		base:    base{tables: tables, logger: logger},
		tracker: newISSNTracker(),
	}
}

func (r *TemplateResolver) Resolve(rec *models.RawAccessRecord) Resolution {
	target := strings.ToLower(strings.TrimSpace(rec.ActionTarget))
	collection := r.tables.CollectionForHost(strings.ToLower(rec.Host))

	parsed, err := url.Parse(target)
	if err != nil {
		return Resolution{Collection: collection, Format: models.FormatUndefined}
	}
	if parsed.Host != "" {
		collection = r.tables.CollectionForHost(parsed.Host)
	}

	query := parsed.Query()
	segments := splitPath(parsed.Path)

	res := r.resolvePath(collection, segments, query, parsed.Path)
	res.Collection = collection
	res.HitType = resolveHitType(res.PID, res.ContentType)
	if res.Format == "" {
		res.Format = res.ContentType.Format()
	}

	if res.HitType == models.HitTypeArticle && res.PID != "" {
		if res.ISSN == "" {
			res.ISSN = models.ISSNFromArticlePID(res.PID)
		}
		res.YearOfPublication = r.resolveYear(collection, res.PID)
		res.Language = r.resolveLanguage(collection, res.PID, res.Format, sanitizeToken(query.Get("lang")))
		r.trackISSN(res.PID, res.ISSN)
	}

	if res.ContentType == models.ContentOther && res.PID == "" {
		metricUnresolvedTotal.WithLabelValues(string(models.EraNew)).Inc()
	} else {
		metricResolvedTotal.WithLabelValues(string(models.EraNew), res.HitType.String()).Inc()
	}

	return res
}

func (r *TemplateResolver) resolvePath(collection string, segments []string, query url.Values, rawPath string) Resolution {
	switch {
	case len(segments) >= 2 && segments[0] == "j":
		return r.resolveJournalPath(collection, segments, query)

	case len(segments) >= 3 && segments[0] == "journal" && segments[2] == "feed":
		return Resolution{
			ContentType: models.ContentJournalFeed,
			ISSN:        r.acronymISSN(collection, segments[1]),
		}

	case len(segments) >= 2 && segments[0] == "journals" && segments[1] == "alpha":
		return Resolution{ContentType: models.ContentPlatformAlphabeticList}

	case len(segments) >= 2 && segments[0] == "journals" && segments[1] == "thematic":
		return Resolution{ContentType: models.ContentPlatformThematicList}

	case len(segments) >= 4 && segments[0] == "article" && segments[1] == "ssm" &&
		segments[2] == "content" && segments[3] == "raw":
		return r.resolveRawContent(collection, segments, rawPath)
	}

	return Resolution{ContentType: models.ContentOther, Format: models.FormatUndefined}
}

func (r *TemplateResolver) resolveJournalPath(collection string, segments []string, query url.Values) Resolution {
	acronym := segments[1]
	issn := r.acronymISSN(collection, acronym)

	switch {
	case len(segments) >= 4 && segments[2] == "a":
		pid := sanitizePID(segments[3])
		contentType := models.ContentFullText
		format := models.FormatHTML
		if len(segments) >= 5 && segments[4] == "abstract" {
			contentType = models.ContentAbstract
		} else if sanitizeToken(query.Get("format")) == "pdf" {
			contentType = models.ContentPDFRequest
			format = models.FormatPDF
		}
		return Resolution{PID: pid, ISSN: issn, ContentType: contentType, Format: format}

	case len(segments) >= 3 && segments[2] == "grid":
		return Resolution{ISSN: issn, ContentType: models.ContentJournalIssueGrid}

	case len(segments) >= 4 && segments[2] == "i":
		// Issue labels on this template (e.g. 2021.v43n2) are not PID-shaped,
		// so the segment is kept verbatim as the issue code.
		return Resolution{PID: segments[3], ISSN: issn, ContentType: models.ContentIssueTOC}

	case len(segments) == 2:
		return Resolution{ISSN: issn, ContentType: models.ContentJournalHome}
	}

	return Resolution{ISSN: issn, ContentType: models.ContentOther, Format: models.FormatUndefined}
}

// resolveRawContent classifies /article/ssm/content/raw/... document-store
// targets. The file extension determines the content; the PDF-path table can
// still recover the owning article's PID for PDF files.
func (r *TemplateResolver) resolveRawContent(collection string, segments []string, rawPath string) Resolution {
	res := Resolution{ContentType: models.ContentOther, Format: models.FormatUndefined}

	for i, segment := range segments {
		if segment != "documentstore" || i+1 >= len(segments) {
			continue
		}
		if issn := models.NormalizeISSN(segments[i+1]); models.IsISSN(issn) {
			res.ISSN = issn
		}
		break
	}

	switch path.Ext(segments[len(segments)-1]) {
	case ".pdf":
		res.ContentType = models.ContentPDFDirect
		res.Format = models.FormatPDF
		res.PID = r.tables.PIDFromPDFPath(collection, normalizePDFPath(rawPath))
	case ".xml":
		res.ContentType = models.ContentFullTextXML
		res.Format = models.FormatHTML
	default:
		// Media assets (figures, thumbnails) stay unclassified.
	}

	return res
}

func (r *TemplateResolver) acronymISSN(collection, acronym string) string {
	issn := r.tables.ISSNFromAcronym(collection, acronym)
	if issn == "" {
		r.logger.Warn().
			Str(loggers.FieldCollection, collection).
			Str("acronym", acronym).
			Msg("journal acronym has no issn mapping")
	}
	return issn
}

// trackISSN registers the pid/issn pairing and warns once a PID has been
// observed under more than two distinct ISSNs in this run.
func (r *TemplateResolver) trackISSN(pid, issn string) {
	if pid == "" || issn == "" {
		return
	}
	if count := r.tracker.observe(pid, issn); count > maxISSNsPerPID {
		metricMultiISSNPIDTotal.Inc()
		r.logger.Warn().
			Str(loggers.FieldPid, pid).
			Str(loggers.FieldIssn, issn).
			Int("issn_count", count).
			Msg("pid observed with more than two distinct issns")
	}
}
