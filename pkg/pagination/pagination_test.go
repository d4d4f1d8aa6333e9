package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{"defaults", "", Params{Page: 1, PerPage: 20}},
		{"custom", "?page=3&per_page=50", Params{Page: 3, PerPage: 50}},
		{"negative page", "?page=-1", Params{Page: 1, PerPage: 20}},
		{"non-numeric", "?page=abc&per_page=x", Params{Page: 1, PerPage: 20}},
		{"per page capped", "?per_page=500", Params{Page: 1, PerPage: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders"+tt.query, nil)
			assert.Equal(t, tt.want, FromRequest(req))
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, DefaultParams().Offset())
	assert.Equal(t, 100, Params{Page: 3, PerPage: 50}.Offset())
}

func TestPaginate(t *testing.T) {
	all := []string{"RD-A", "RD-B", "RD-C", "RD-D", "RD-E"}

	first := Paginate(all, Params{Page: 1, PerPage: 2})
	assert.Equal(t, []string{"RD-A", "RD-B"}, first.Items)
	assert.Equal(t, 5, first.TotalCount)
	assert.Equal(t, 3, first.TotalPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrev)

	last := Paginate(all, Params{Page: 3, PerPage: 2})
	assert.Equal(t, []string{"RD-E"}, last.Items)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	beyond := Paginate(all, Params{Page: 9, PerPage: 2})
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]int(nil), DefaultParams())
	assert.Empty(t, p.Items)
	assert.Zero(t, p.TotalPages)
	assert.False(t, p.HasNext)
}

func TestPaginate_DoesNotAlias(t *testing.T) {
	all := []int{1, 2, 3}
	p := Paginate(all, Params{Page: 1, PerPage: 2})
	p.Items[0] = 99
	assert.Equal(t, 1, all[0])
}
