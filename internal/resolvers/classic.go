package resolvers

import (
	"net/url"
	"strings"

	"usage-counter/internal/dictionaries"
	"usage-counter/internal/models"
	"usage-counter/internal/shared/loggers"
)

// classicRule classifies one family of classic-era targets. Rules are
// evaluated in order, first match wins, so the table itself documents the
// classification priority and tests can enumerate it directly.
type classicRule struct {
	name    string
	match   func(path string, query url.Values) bool
	content models.ContentType
}

func pathContains(needle string) func(string, url.Values) bool {
	return func(path string, _ url.Values) bool {
		return strings.Contains(path, needle)
	}
}

func script(value string) func(string, url.Values) bool {
	return func(path string, query url.Values) bool {
		return strings.Contains(path, "scielo.php") && sanitizeToken(query.Get("script")) == value
	}
}

func classicRules() []classicRule {
	return []classicRule{
		{name: "press release", match: script("sci_arttext_pr"), content: models.ContentPressRelease},
		{name: "full text", match: script("sci_arttext"), content: models.ContentFullText},
		{name: "full text plus", match: script("sci_arttext_plus"), content: models.ContentFullTextPlus},
		{name: "abstract", match: script("sci_abstract"), content: models.ContentAbstract},
		{name: "pdf request", match: script("sci_pdf"), content: models.ContentPDFRequest},
		{name: "how to cite", match: script("sci_isoref"), content: models.ContentHowToCite},
		{name: "journal home", match: script("sci_serial"), content: models.ContentJournalHome},
		{name: "issue toc", match: script("sci_issuetoc"), content: models.ContentIssueTOC},
		{name: "issue grid", match: script("sci_issues"), content: models.ContentJournalIssueGrid},
		{name: "alphabetic list", match: script("sci_alphabetic"), content: models.ContentPlatformAlphabeticList},
		{name: "thematic list", match: script("sci_subject"), content: models.ContentPlatformThematicList},
		{name: "platform home", match: script("sci_home"), content: models.ContentPlatformHome},
		{name: "article xml", match: pathContains("/articlexml.php"), content: models.ContentFullTextXML},
		{name: "translation", match: pathContains("/translate.php"), content: models.ContentTranslation},
		{name: "cited by", match: pathContains("/citedscielo.php"), content: models.ContentRelatedContent},
		{name: "related articles", match: pathContains("/related.php"), content: models.ContentRelatedContent},
		{name: "citation export", match: pathContains("/scieloorg/php/export"), content: models.ContentCitationExport},
		{name: "direct pdf", match: pathContains("/pdf/"), content: models.ContentPDFDirect},
		{name: "journal about", match: pathContains("/iaboutj.htm"), content: models.ContentJournalAbout},
		{name: "editorial board", match: pathContains("/iedboard.htm"), content: models.ContentJournalEditorialBoard},
		{name: "author instructions", match: pathContains("/iinstruc.htm"), content: models.ContentJournalInstructions},
		{name: "subscription", match: pathContains("/isubscrp.htm"), content: models.ContentJournalSubscription},
	}
}

// ClassicResolver handles scielo.php-style targets: resource identity is
// carried in query parameters and a small set of auxiliary PHP endpoints.
type ClassicResolver struct {
	base
	rules []classicRule
}

func NewClassicResolver(tables *dictionaries.Tables, logger loggers.Logger) *ClassicResolver {
	return &ClassicResolver{
		base:  base{tables: tables, logger: logger},
		rules: classicRules(),
	}
}

func (r *ClassicResolver) Resolve(rec *models.RawAccessRecord) Resolution {
	target := strings.ToLower(strings.TrimSpace(rec.ActionTarget))
	collection := r.tables.CollectionForHost(strings.ToLower(rec.Host))

	parsed, err := url.Parse(target)
	if err != nil {
		// Malformed targets resolve to empty fields; the gates drop them.
		return Resolution{Collection: collection, Format: models.FormatUndefined}
	}
	if parsed.Host != "" {
		collection = r.tables.CollectionForHost(parsed.Host)
	}

	query := parsed.Query()
	pid := sanitizePID(query.Get("pid"))
	issnParam := models.NormalizeISSN(sanitizeToken(query.Get("issn")))
	requestedLang := sanitizeToken(query.Get("tlng"))

	if pid == "" {
		pdfPath := normalizePDFPath(parsed.Path, parsed.Host, rec.Host)
		pid = r.tables.PIDFromPDFPath(collection, pdfPath)
	}

	contentType := r.classify(parsed.Path, query)
	hitType := resolveHitType(pid, contentType)
	format := contentType.Format()

	res := Resolution{
		Collection:  collection,
		PID:         pid,
		ContentType: contentType,
		HitType:     hitType,
		Format:      format,
	}

	switch hitType {
	case models.HitTypeArticle:
		res.ISSN = models.ISSNFromArticlePID(pid)
		if res.ISSN == "" {
			res.ISSN = issnParam
		}
		res.YearOfPublication = r.resolveYear(collection, pid)
		res.Language = r.resolveLanguage(collection, pid, format, requestedLang)
	case models.HitTypeIssue:
		res.ISSN = models.ISSNFromIssueCode(pid)
		if res.ISSN == "" {
			res.ISSN = issnParam
		}
	case models.HitTypeJournal:
		res.ISSN = r.journalISSN(collection, pid, issnParam, parsed.Path)
	}

	if res.ContentType == models.ContentOther && res.PID == "" {
		metricUnresolvedTotal.WithLabelValues(string(models.EraClassic)).Inc()
	} else {
		metricResolvedTotal.WithLabelValues(string(models.EraClassic), res.HitType.String()).Inc()
	}

	return res
}

func (r *ClassicResolver) classify(path string, query url.Values) models.ContentType {
	for _, rule := range r.rules {
		if rule.match(path, query) {
			return rule.content
		}
	}
	return models.ContentOther
}

// journalISSN resolves the journal identity of a journal-level access from,
// in order: an ISSN-shaped pid parameter, the issn parameter, or the journal
// acronym embedded in /revistas/<acronym>/... paths.
func (r *ClassicResolver) journalISSN(collection, pid, issnParam, path string) string {
	if models.IsISSN(pid) {
		return models.NormalizeISSN(pid)
	}
	if issnParam != "" {
		return issnParam
	}
	segments := splitPath(path)
	for i, segment := range segments {
		if segment == "revistas" && i+1 < len(segments) {
			if issn := r.tables.ISSNFromAcronym(collection, segments[i+1]); issn != "" {
				return issn
			}
			r.logger.Warn().
				Str(loggers.FieldCollection, collection).
				Str("acronym", segments[i+1]).
				Msg("journal acronym has no issn mapping")
			return ""
		}
	}
	return ""
}

// normalizePDFPath canonicalizes a direct-PDF path before the lookup table
// is consulted: trailing slash stripped, .pdf suffix ensured, and any host
// prefix that leaked into the path removed.
func normalizePDFPath(path string, hosts ...string) string {
	path = strings.TrimSuffix(strings.TrimSpace(path), "/")
	for _, host := range hosts {
		host = strings.ToLower(strings.TrimSpace(host))
		if host == "" {
			continue
		}
		path = strings.TrimPrefix(path, host)
		path = strings.TrimPrefix(path, "/"+host)
	}
	if path == "" {
		return ""
	}
	if !strings.HasSuffix(path, ".pdf") {
		path += ".pdf"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
