// Package gateway is a small local web front. It evaluates the session gate
// on every navigation and handles login/logout with cookie-mirrored tokens;
// content rendering stays out of scope.
package gateway

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/api"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/logger"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/sessiongate"
	"github.com/Ujjwal-Sharma-BingMine/bingmine-client/internal/tokenstore"
)

const accessCookie = "access_token"

type Server struct {
	app    *fiber.App
	client *api.Client
	store  tokenstore.Store
	logger logger.Logger
}

func New(client *api.Client, store tokenstore.Store, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	s := &Server{
		app:    fiber.New(fiber.Config{DisableStartupMessage: true}),
		client: client,
		store:  store,
		logger: log,
	}

	s.app.Use(s.gateMiddleware)

	s.app.Get("/", s.home)
	s.app.Get("/login", s.loginPage)
	s.app.Post("/login", s.login)
	s.app.Post("/logout", s.logout)
	s.app.Get("/feed", s.placeholder("feed"))
	s.app.Get("/profile", s.placeholder("profile"))
	s.app.Get("/settings", s.placeholder("settings"))
	s.app.Get("/notifications", s.placeholder("notifications"))
	s.app.Get("/messages", s.placeholder("messages"))

	return s
}

// gateMiddleware runs the redirect decision before any content is produced.
// Static assets are exempt, everything else is classified per navigation.
func (s *Server) gateMiddleware(c *fiber.Ctx) error {
	path := c.Path()
	if sessiongate.IsStaticAsset(path) {
		return c.Next()
	}

	hasToken := c.Cookies(accessCookie) != ""
	decision := sessiongate.Decide(path, hasToken)
	if decision != sessiongate.Allow {
		s.logger.Debug("Gate redirect", "path", path, "decision", decision.String())
		return c.Redirect(decision.Target(), fiber.StatusFound)
	}

	return c.Next()
}

func (s *Server) home(c *fiber.Ctx) error {
	return c.SendString("bingmine")
}

func (s *Server) loginPage(c *fiber.Ctx) error {
	return c.SendString("login")
}

func (s *Server) login(c *fiber.Ctx) error {
	var form struct {
		Identifier string `form:"identifier"`
		Password   string `form:"password"`
	}
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}

	result, err := s.client.Login(c.UserContext(), api.LoginInput{
		Identifier: form.Identifier,
		Password:   form.Password,
		DeviceInfo: c.Get(fiber.HeaderUserAgent),
		IPAddress:  c.IP(),
	})
	if err != nil {
		s.logger.Warn("Login failed", "error", err)
		return fiber.NewError(fiber.StatusUnauthorized, "login failed")
	}

	// Mirror the token into a cookie so the gate sees the session on the
	// next navigation
	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    result.Credentials.AccessToken,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.Redirect(sessiongate.FeedPath, fiber.StatusSeeOther)
}

func (s *Server) logout(c *fiber.Ctx) error {
	if err := s.client.Logout(c.UserContext()); err != nil {
		s.logger.Error("Failed to clear session", "error", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     accessCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.Redirect(sessiongate.LoginPath, fiber.StatusSeeOther)
}

func (s *Server) placeholder(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString(name)
	}
}

// Listen serves until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
