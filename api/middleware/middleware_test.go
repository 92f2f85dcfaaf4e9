package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover(t *testing.T) {
	app := fiber.New()
	app.Use(Recover())
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestAllowOrigins(t *testing.T) {
	a, b, empty := "http://localhost:3000", "https://easycert.example", ""

	assert.Equal(t, "*", allowOrigins(nil))
	assert.Equal(t, "*", allowOrigins([]*string{&empty, nil}))
	assert.Equal(t, "http://localhost:3000,https://easycert.example", allowOrigins([]*string{&a, nil, &b}))
}
