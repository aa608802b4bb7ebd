package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/traveltogether/api/internal/app/models/dto"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
	DefaultPage    = 1
)

// ParsePaginationParams extracts and validates page/per_page query parameters
func ParsePaginationParams(c *gin.Context) (page, perPage int) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	perPageStr := c.DefaultQuery("per_page", "10")
	perPage, err = strconv.Atoi(perPageStr)
	if err != nil || perPage <= 0 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}

	return page, perPage
}

// CalculateOffsetLimit converts a 1-based page number to a SQL offset/limit pair
func CalculateOffsetLimit(page, perPage int) (offset uint64, limit uint64) {
	if perPage <= 0 || perPage > MaxPerPage {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = DefaultPage
	}

	return uint64((page - 1) * perPage), uint64(perPage)
}

// NewPaginationInfo creates the paging metadata for a listing response
func NewPaginationInfo(total int64, page, perPage int) dto.PaginationInfo {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(perPage)))
	} else if page == 1 {
		totalPages = 1
	}

	return dto.PaginationInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
