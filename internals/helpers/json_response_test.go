// file: internals/helpers/json_response_test.go
package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestResolvePaging_Defaults(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		p := ResolvePaging(c, 25, 200)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 25, p.PerPage)
		assert.Equal(t, 0, p.Offset)
		return c.SendString("ok")
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestResolvePaging_ClampsAndOffsets(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		p := ResolvePaging(c, 25, 200)
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 200, p.PerPage, "per_page clamps to the max")
		assert.Equal(t, 400, p.Offset)
		return c.SendString("ok")
	})
	req := httptest.NewRequest("GET", "/x?page=3&per_page=9999", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestBuildPaginationFromPage(t *testing.T) {
	pg := BuildPaginationFromPage(101, 2, 25)
	assert.Equal(t, 5, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = BuildPaginationFromPage(0, 1, 25)
	assert.Equal(t, 1, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrev)
}

func TestStatusToErrorCode(t *testing.T) {
	assert.Equal(t, "MAINTENANCE", statusToErrorCode(fiber.StatusServiceUnavailable))
	assert.Equal(t, "NOT_FOUND", statusToErrorCode(fiber.StatusNotFound))
	assert.Equal(t, "INTERNAL_ERROR", statusToErrorCode(fiber.StatusBadGateway))
}
