package dictionaries

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"usage-counter/internal/models"
	"usage-counter/internal/shared/filestorages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables() *Tables {
	return New(TableData{
		PDFPaths: map[string]map[string]string{
			"scl": {"/pdf/ab/v1n1/01.pdf": "S0100-19651997000200001"},
		},
		Acronyms: map[string]map[string]string{
			"scl": {"ab": "0100-1965"},
			"nbr": {"bjb": "1519-6984"},
		},
		Languages: map[string]map[string]LanguageEntry{
			"scl": {
				"S0100-19651997000200001": {
					Default: "pt",
					ByFormat: map[models.Format][]string{
						models.FormatHTML: {"pt", "en"},
						models.FormatPDF:  {"pt"},
					},
				},
			},
		},
		Dates: map[string]map[string]DatesEntry{
			"scl": {"S0100-19651997000200001": {PublicationYear: "1997"}},
		},
		SecondaryAcronyms: map[string]string{"ssp-j": "2236-9996"},
		Domains: map[string]string{
			"www.scielo.br": "scl",
			"scielo.isciii.es": "esp",
		},
		Aliases: map[string]string{"scl": "nbr", "nbr": "scl"},
	}, "scl")
}

func TestTables_CollectionForHost(t *testing.T) {
	t.Parallel()

	tables := testTables()
	assert.Equal(t, "scl", tables.CollectionForHost("www.scielo.br"))
	assert.Equal(t, "esp", tables.CollectionForHost("scielo.isciii.es"))
	assert.Equal(t, "scl", tables.CollectionForHost("unknown.example.org"), "unknown host falls back to default")
	assert.Equal(t, "scl", tables.CollectionForHost(""))
}

func TestTables_PIDFromPDFPath(t *testing.T) {
	t.Parallel()

	tables := testTables()
	assert.Equal(t, "S0100-19651997000200001", tables.PIDFromPDFPath("scl", "/pdf/ab/v1n1/01.pdf"))
	assert.Empty(t, tables.PIDFromPDFPath("scl", "/pdf/missing.pdf"))
	assert.Empty(t, tables.PIDFromPDFPath("unknown", "/pdf/ab/v1n1/01.pdf"))
}

func TestTables_ISSNFromAcronym_AliasFallback(t *testing.T) {
	t.Parallel()

	tables := testTables()
	assert.Equal(t, "0100-1965", tables.ISSNFromAcronym("scl", "ab"))
	assert.Equal(t, "1519-6984", tables.ISSNFromAcronym("scl", "bjb"), "falls back to the aliased collection")
	assert.Empty(t, tables.ISSNFromAcronym("scl", "nope"))
	assert.Empty(t, tables.ISSNFromAcronym("esp", "ab"), "collections without alias do not fall back")
}

func TestTables_AcronymFromISSN(t *testing.T) {
	t.Parallel()

	tables := testTables()
	assert.Equal(t, "ab", tables.AcronymFromISSN("scl", "0100-1965"))
	assert.Equal(t, "bjb", tables.AcronymFromISSN("scl", "1519-6984"))
	assert.Empty(t, tables.AcronymFromISSN("scl", "9999-9999"))
}

func TestTables_SecondaryISSNFromAcronym(t *testing.T) {
	t.Parallel()

	tables := testTables()
	assert.Equal(t, "2236-9996", tables.SecondaryISSNFromAcronym("ssp-j"))
	assert.Empty(t, tables.SecondaryISSNFromAcronym("nope"))
}

func TestTables_Languages(t *testing.T) {
	t.Parallel()

	tables := testTables()
	pid := "S0100-19651997000200001"

	assert.Equal(t, "pt", tables.DefaultLanguage("scl", pid))
	assert.True(t, tables.HasLanguage("scl", pid, models.FormatHTML, "en"))
	assert.False(t, tables.HasLanguage("scl", pid, models.FormatPDF, "en"))
	assert.False(t, tables.HasLanguage("scl", "S9999-99992020000100001", models.FormatHTML, "pt"),
		"missing pid yields false, never an error")
	assert.Empty(t, tables.DefaultLanguage("scl", "S9999-99992020000100001"))
}

func TestTables_PublicationYear(t *testing.T) {
	t.Parallel()

	tables := testTables()
	assert.Equal(t, "1997", tables.PublicationYear("scl", "S0100-19651997000200001"))
	assert.Empty(t, tables.PublicationYear("scl", "S9999-99992020000100001"))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fileStorage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	data := TableData{
		Acronyms: map[string]map[string]string{"scl": {"ab": "0100-1965"}},
		Domains:  map[string]string{"www.scielo.br": "scl"},
	}
	raw, err := json.Marshal(data)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = fileStorage.Put(ctx, "dictionaries/tables.json", bytes.NewReader(raw), filestorages.PutOptions{AllowOverwrite: true})
	require.NoError(t, err)

	tables, err := Load(ctx, fileStorage, "dictionaries", "scl")
	require.NoError(t, err)
	assert.Equal(t, "0100-1965", tables.ISSNFromAcronym("scl", "ab"))
	assert.Equal(t, "scl", tables.CollectionForHost("www.scielo.br"))
}

func TestLoad_MissingTablesIsFatal(t *testing.T) {
	t.Parallel()

	fileStorage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	tables, err := Load(context.Background(), fileStorage, "dictionaries", "scl")
	assert.Nil(t, tables)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open dictionary tables")
}
