package aggregators

import (
	"usage-counter/internal/models"
)

// itemRequestContentTypes lists the content types that deliver the item
// itself. Accesses to them count as Item Requests. Every counted access,
// request or not, also counts as an Item Investigation, so the Requests
// counters can never exceed the Investigations counters.
var itemRequestContentTypes = map[models.ContentType]struct{}{
	models.ContentFullText:     {},
	models.ContentFullTextPlus: {},
	models.ContentFullTextXML:  {},
	models.ContentPDFRequest:   {},
	models.ContentPDFDirect:    {},
}

// isItemRequest reports whether the content type delivers the item itself
// rather than material about it (abstracts, citation pages, press releases).
func isItemRequest(contentType models.ContentType) bool {
	_, ok := itemRequestContentTypes[contentType]
	return ok
}
