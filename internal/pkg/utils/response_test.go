package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPaginationResponse(t *testing.T) {
	t.Run("middle page links both ways", func(t *testing.T) {
		pagination := BuildPaginationResponse(45, 2, 20, "/api/v1/requests")

		assert.Equal(t, 3, pagination.TotalPages)
		assert.Equal(t, "/api/v1/requests?page=3&page_size=20", pagination.NextURL)
		assert.Equal(t, "/api/v1/requests?page=1&page_size=20", pagination.PrevURL)
	})

	t.Run("single page has no links", func(t *testing.T) {
		pagination := BuildPaginationResponse(5, 1, 20, "/api/v1/requests")

		assert.Equal(t, 1, pagination.TotalPages)
		assert.Empty(t, pagination.NextURL)
		assert.Empty(t, pagination.PrevURL)
	})

	t.Run("empty listing", func(t *testing.T) {
		pagination := BuildPaginationResponse(0, 1, 20, "/api/v1/requests")

		assert.Zero(t, pagination.TotalPages)
		assert.Empty(t, pagination.NextURL)
	})
}
