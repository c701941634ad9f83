package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	p := FromRequest(req)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_CustomValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?page=3&per_page=50", nil)
	p := FromRequest(req)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PerPage)
	assert.Equal(t, 100, p.Offset)
}

func TestFromRequest_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"negative page", "page=-1"},
		{"zero page", "page=0"},
		{"non-numeric page", "page=abc"},
		{"zero per_page", "per_page=0"},
		{"per_page over cap", "per_page=500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/products?"+tt.query, nil)
			p := FromRequest(req)

			assert.Equal(t, 1, p.Page)
			assert.Equal(t, DefaultPerPage, p.PerPage)
		})
	}
}

func TestFromRequest_PerPageAtCap(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products?per_page=100", nil)
	p := FromRequest(req)

	assert.Equal(t, MaxPerPage, p.PerPage)
}

func TestNewResult(t *testing.T) {
	result := NewResult([]string{"a", "b"}, 5, Params{Page: 1, PerPage: 2})

	assert.Equal(t, 5, result.TotalCount)
	assert.Equal(t, 3, result.TotalPages)
	assert.True(t, result.HasNext)
	assert.False(t, result.HasPrev)
}

func TestNewResult_LastPage(t *testing.T) {
	result := NewResult([]string{"e"}, 5, Params{Page: 3, PerPage: 2})

	assert.Equal(t, 3, result.TotalPages)
	assert.False(t, result.HasNext)
	assert.True(t, result.HasPrev)
}

func TestNewResult_NilDataBecomesEmptySlice(t *testing.T) {
	result := NewResult[string](nil, 0, Params{Page: 1, PerPage: 20})

	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
}
