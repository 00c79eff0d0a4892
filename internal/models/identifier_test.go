package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsArticlePID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pid  string
		want bool
	}{
		{name: "canonical article pid", pid: "S0100-19651997000200001", want: true},
		{name: "lowercase marker accepted", pid: "s0100-19651997000200001", want: true},
		{name: "issue code is too short", pid: "S0100-196519970002", want: false},
		{name: "wrong leading character", pid: "X0100-19651997000200001", want: false},
		{name: "empty", pid: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsArticlePID(tt.pid))
		})
	}
}

func TestIsIssueCode(t *testing.T) {
	t.Parallel()

	assert.True(t, IsIssueCode("S0100-196519970002"))
	assert.False(t, IsIssueCode("S0100-19651997000200001"))
	assert.False(t, IsIssueCode("0100-1965"))
}

func TestIsISSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		issn string
		want bool
	}{
		{issn: "0100-1965", want: true},
		{issn: "2595-282X", want: true},
		{issn: "2595-282x", want: true},
		{issn: "0100-19651", want: false},
		{issn: "01001965", want: false},
		{issn: "abcd-efgh", want: false},
		{issn: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.issn, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsISSN(tt.issn))
		})
	}
}

func TestISSNFromArticlePID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0100-1965", ISSNFromArticlePID("S0100-19651997000200001"))
	assert.Equal(t, "2595-282X", ISSNFromArticlePID("S2595-282x2021000100200"))
	assert.Empty(t, ISSNFromArticlePID("S0100-196519970002"), "issue codes embed no full issn")
	assert.Empty(t, ISSNFromArticlePID("Sabcd-efgh1997000200001"), "segment must be issn-shaped")
}

func TestYearFromPID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2021", YearFromPID("S2021xxxx"))
	assert.Empty(t, YearFromPID("S20x1xxxx"))
	assert.Empty(t, YearFromPID("S20"))
}

func TestIsPublicationYear(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPublicationYear("1997"))
	assert.False(t, IsPublicationYear("97"))
	assert.False(t, IsPublicationYear("199x"))
}
