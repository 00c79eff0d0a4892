package models

// ContentType is the fine-grained classification of the page or resource an
// access targeted. Values are grouped in numeric ranges so that an access
// whose PID could not be resolved can still be assigned a HitType from its
// content classification alone:
//
//	1–99    article content
//	100–119 issue content
//	120–159 journal content
//	160–199 platform content
//	0       other / unclassified
type ContentType int

const (
	ContentOther ContentType = 0

	// Article range.
	ContentFullText       ContentType = 1  // full text HTML page
	ContentFullTextPlus   ContentType = 2  // enriched full text page
	ContentFullTextXML    ContentType = 3  // machine-readable full text
	ContentPDFRequest     ContentType = 4  // PDF rendered through the site
	ContentPDFDirect      ContentType = 5  // direct PDF file download
	ContentAbstract       ContentType = 10 // abstract page
	ContentTranslation    ContentType = 11 // on-the-fly translation page
	ContentHowToCite      ContentType = 12 // how-to-cite / ISO reference page
	ContentCitationExport ContentType = 13 // citation export download
	ContentPressRelease   ContentType = 14 // press-release page
	ContentRelatedContent ContentType = 15 // cited-by / related articles page

	// Issue range.
	ContentIssueTOC ContentType = 100 // table of contents of one issue

	// Journal range.
	ContentJournalHome           ContentType = 120
	ContentJournalIssueGrid      ContentType = 121 // list/grid of a journal's issues
	ContentJournalAbout          ContentType = 122
	ContentJournalEditorialBoard ContentType = 123
	ContentJournalInstructions   ContentType = 124
	ContentJournalSubscription   ContentType = 125
	ContentJournalFeed           ContentType = 126

	// Platform range.
	ContentPlatformHome           ContentType = 160
	ContentPlatformAlphabeticList ContentType = 161
	ContentPlatformThematicList   ContentType = 162
)

// HitTypeForRange maps a content type to the hit type implied by its numeric
// range. Used as the fallback when the PID shape is absent or ambiguous.
func (c ContentType) HitTypeForRange() HitType {
	switch {
	case c >= 1 && c < 100:
		return HitTypeArticle
	case c >= 100 && c < 120:
		return HitTypeIssue
	case c >= 120 && c < 160:
		return HitTypeJournal
	case c >= 160 && c < 200:
		return HitTypePlatform
	}
	return HitTypeOther
}

// Format returns the access format implied by the content type.
func (c ContentType) Format() Format {
	switch c {
	case ContentPDFRequest, ContentPDFDirect:
		return FormatPDF
	case ContentOther:
		return FormatUndefined
	}
	return FormatHTML
}

// HitType is the coarse classification of what kind of resource was accessed.
type HitType int

const (
	HitTypeUndefined HitType = iota
	HitTypeArticle
	HitTypeIssue
	HitTypeJournal
	HitTypePlatform
	HitTypeOther
)

func (t HitType) String() string {
	switch t {
	case HitTypeArticle:
		return "article"
	case HitTypeIssue:
		return "issue"
	case HitTypeJournal:
		return "journal"
	case HitTypePlatform:
		return "platform"
	case HitTypeOther:
		return "other"
	}
	return "undefined"
}

// Format is the delivery format of an access.
type Format string

const (
	FormatHTML      Format = "html"
	FormatPDF       Format = "pdf"
	FormatUndefined Format = "undefined"
)
