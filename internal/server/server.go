// Package server exposes the gallery over HTTP. Routing, status mapping
// and input sanitization live here; every domain rule stays in gallery.
package server

import (
	"errors"
	"strings"

	"github.com/artopia/artopia-go/auth"
	"github.com/artopia/artopia-go/gallery"
	"github.com/artopia/artopia-go/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type Server struct {
	app       *fiber.App
	gallery   *gallery.Gallery
	verifier  auth.Verifier
	sanitizer *bluemonday.Policy
	log       *zap.SugaredLogger
}

func New(g *gallery.Gallery, verifier auth.Verifier, log *zap.SugaredLogger, origins []string) *Server {
	s := &Server{
		gallery:   g,
		verifier:  verifier,
		sanitizer: bluemonday.StrictPolicy(),
		log:       log,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: s.errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins(origins),
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Artopia server is running")
	})

	app.Get("/artworks/featured", s.featured)
	app.Get("/artworks/search", s.searchArtworks)
	app.Get("/artworks", s.publicArtworks)

	authed := app.Use(s.authenticate)

	authed.Get("/artworks/all", s.allArtworks)
	authed.Get("/artworks/:id", s.artwork)
	authed.Post("/artworks", s.createArtwork)
	authed.Put("/artworks/:id", s.updateArtwork)
	authed.Delete("/artworks/:id", s.deleteArtwork)
	authed.Patch("/artworks/:id/like", s.likeArtwork)

	authed.Get("/favorites/artworks", s.favoritedArtworks)
	authed.Get("/favorites/:id", s.favorite)
	authed.Get("/favorites", s.favorites)
	authed.Post("/favorites", s.addFavorite)
	authed.Delete("/favorites/:id", s.removeFavorite)

	s.app = app
	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// authenticate resolves the bearer credential before any store access.
// The verified email ends up in the request locals under "email".
func (s *Server) authenticate(c *fiber.Ctx) error {
	token, err := auth.TokenFromHeader(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	email, err := s.verifier.Verify(c.Context(), token)
	if err != nil {
		return err
	}

	c.Locals("email", email)
	return c.Next()
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return message(c, fiber.StatusUnauthorized, "unauthorized access")
	case errors.Is(err, store.ErrArtworkNotFound),
		errors.Is(err, store.ErrFavoriteNotFound):
		return message(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidID):
		return message(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrAlreadyLiked),
		errors.Is(err, store.ErrAlreadyFavorited):
		return message(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &fiberErr):
		return message(c, fiberErr.Code, fiberErr.Message)
	}

	s.log.Errorw("request failed", "path", c.Path(), "error", err)
	return message(c, fiber.StatusInternalServerError, "internal server error")
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

func identity(c *fiber.Ctx) string {
	email, _ := c.Locals("email").(string)
	return email
}

func allowOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}

	return strings.Join(origins, ",")
}
