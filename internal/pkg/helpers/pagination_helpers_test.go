package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/trips?"+query, nil)
	return ctx
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", 1, 10},
		{"explicit values", "page=3&per_page=25", 3, 25},
		{"zero page falls back", "page=0", 1, 10},
		{"negative page falls back", "page=-2", 1, 10},
		{"non-numeric page falls back", "page=abc", 1, 10},
		{"per_page over cap falls back", "per_page=500", 1, 10},
		{"zero per_page falls back", "per_page=0", 1, 10},
		{"max per_page accepted", "per_page=100", 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage := ParsePaginationParams(paginationContext(t, tt.query))
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 10)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(10), limit)

	offset, limit = CalculateOffsetLimit(4, 25)
	assert.Equal(t, uint64(75), offset)
	assert.Equal(t, uint64(25), limit)

	// Out-of-range inputs collapse to the defaults
	offset, limit = CalculateOffsetLimit(0, 1000)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(10), limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(95, 2, 10)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 10, info.PerPage)
	assert.Equal(t, int64(95), info.Total)
	assert.Equal(t, 10, info.TotalPages)

	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)

	info = NewPaginationInfo(10, 1, 10)
	assert.Equal(t, 1, info.TotalPages)
}
