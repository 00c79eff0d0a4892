package dictionaries

import (
	"usage-counter/internal/models"
)

// LanguageEntry records which languages an item is available in, per format,
// plus the item's registered default language.
type LanguageEntry struct {
	Default  string                     `json:"default"`
	ByFormat map[models.Format][]string `json:"byFormat"`
}

// DatesEntry records the publication dates known for an item. Only the year
// is consumed by the aggregation core today.
type DatesEntry struct {
	PublicationYear string `json:"publicationYear"`
}

// Tables is the set of pre-built lookup tables the resolvers consult. All
// tables are keyed first by collection acronym and all lookups are total:
// a missing key at any level yields a zero value, never an error. Tables are
// built once per processing run and are read-only afterwards, so concurrent
// resolver fan-out needs no locking here.
type Tables struct {
	pdfPaths           map[string]map[string]string
	issnByAcronym      map[string]map[string]string
	acronymByISSN      map[string]map[string]string
	languages          map[string]map[string]LanguageEntry
	dates              map[string]map[string]DatesEntry
	secondaryAcronyms  map[string]string
	collectionByDomain map[string]string
	defaultCollection  string
	aliases            map[string]string
}

// TableData is the raw, serializable content Tables are built from.
type TableData struct {
	// PDFPaths maps collection -> normalized pdf path -> article PID.
	PDFPaths map[string]map[string]string `json:"pdfPaths"`
	// Acronyms maps collection -> journal acronym -> ISSN.
	Acronyms map[string]map[string]string `json:"acronyms"`
	// Languages maps collection -> PID -> language availability.
	Languages map[string]map[string]LanguageEntry `json:"languages"`
	// Dates maps collection -> PID -> publication dates.
	Dates map[string]map[string]DatesEntry `json:"dates"`
	// SecondaryAcronyms maps journal acronym -> ISSN for the secondary
	// platform, which keeps its own acronym registry.
	SecondaryAcronyms map[string]string `json:"secondaryAcronyms"`
	// Domains maps host name -> collection acronym.
	Domains map[string]string `json:"domains"`
	// Aliases maps a collection acronym to an alternate acronym under which
	// the same collection's journals may be registered.
	Aliases map[string]string `json:"aliases"`
}

// New builds read-only Tables from raw table data. The acronym table is
// inverted once here so ISSN->acronym lookups need no scan.
func New(data TableData, defaultCollection string) *Tables {
	t := &Tables{
		pdfPaths:           data.PDFPaths,
		issnByAcronym:      data.Acronyms,
		acronymByISSN:      make(map[string]map[string]string, len(data.Acronyms)),
		languages:          data.Languages,
		dates:              data.Dates,
		secondaryAcronyms:  data.SecondaryAcronyms,
		collectionByDomain: data.Domains,
		defaultCollection:  defaultCollection,
		aliases:            data.Aliases,
	}
	for collection, byAcronym := range data.Acronyms {
		inverted := make(map[string]string, len(byAcronym))
		for acronym, issn := range byAcronym {
			inverted[models.NormalizeISSN(issn)] = acronym
		}
		t.acronymByISSN[collection] = inverted
	}
	return t
}

// CollectionForHost resolves a host name to a collection acronym, falling
// back to the run's default collection.
func (t *Tables) CollectionForHost(host string) string {
	if collection, ok := t.collectionByDomain[host]; ok {
		return collection
	}
	return t.defaultCollection
}

// DefaultCollection returns the run's default collection acronym.
func (t *Tables) DefaultCollection() string {
	return t.defaultCollection
}

// PIDFromPDFPath looks up the article PID a direct PDF path belongs to.
func (t *Tables) PIDFromPDFPath(collection, path string) string {
	return t.pdfPaths[collection][path]
}

// ISSNFromAcronym resolves a journal acronym to its ISSN, retrying under the
// collection's alias when the primary collection has no entry.
func (t *Tables) ISSNFromAcronym(collection, acronym string) string {
	if issn := t.issnByAcronym[collection][acronym]; issn != "" {
		return models.NormalizeISSN(issn)
	}
	if alias := t.aliases[collection]; alias != "" {
		if issn := t.issnByAcronym[alias][acronym]; issn != "" {
			return models.NormalizeISSN(issn)
		}
	}
	return ""
}

// AcronymFromISSN is the reverse direction of ISSNFromAcronym.
func (t *Tables) AcronymFromISSN(collection, issn string) string {
	issn = models.NormalizeISSN(issn)
	if acronym := t.acronymByISSN[collection][issn]; acronym != "" {
		return acronym
	}
	if alias := t.aliases[collection]; alias != "" {
		if acronym := t.acronymByISSN[alias][issn]; acronym != "" {
			return acronym
		}
	}
	return ""
}

// SecondaryISSNFromAcronym resolves an acronym on the secondary platform.
func (t *Tables) SecondaryISSNFromAcronym(acronym string) string {
	return models.NormalizeISSN(t.secondaryAcronyms[acronym])
}

// DefaultLanguage returns the registered default language of an item, or "".
func (t *Tables) DefaultLanguage(collection, pid string) string {
	return t.languages[collection][pid].Default
}

// HasLanguage reports whether an item is known to be available in lang for
// the given format.
func (t *Tables) HasLanguage(collection, pid string, format models.Format, lang string) bool {
	entry, ok := t.languages[collection][pid]
	if !ok {
		return false
	}
	for _, known := range entry.ByFormat[format] {
		if known == lang {
			return true
		}
	}
	return false
}

// PublicationYear returns the registered publication year of an item, or "".
func (t *Tables) PublicationYear(collection, pid string) string {
	return t.dates[collection][pid].PublicationYear
}
