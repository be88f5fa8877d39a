package api

import (
	"github.com/gofiber/fiber/v2"
)

// The page handlers serve minimal shells; the real client is whatever
// frontend talks to the JSON API. They exist so the route gate has page
// routes to guard.

func homePage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!doctype html>
<html><head><title>Todos</title></head>
<body><h1>My Todos</h1><div id="app" data-endpoint="/todos"></div></body></html>`)
}

func loginPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!doctype html>
<html><head><title>Log in</title></head>
<body><h1>Log in</h1><div id="app" data-endpoint="/auth/login"></div></body></html>`)
}

func signupPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!doctype html>
<html><head><title>Sign up</title></head>
<body><h1>Sign up</h1><div id="app" data-endpoint="/auth/signup"></div></body></html>`)
}
