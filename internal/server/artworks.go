package server

import (
	"github.com/artopia/artopia-go/store"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) featured(c *fiber.Ctx) error {
	artworks, err := s.gallery.Featured(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(artworks)
}

func (s *Server) publicArtworks(c *fiber.Ctx) error {
	artworks, err := s.gallery.PublicArtworks(c.Context(), c.Query("email"))
	if err != nil {
		return err
	}

	return c.JSON(artworks)
}

func (s *Server) searchArtworks(c *fiber.Ctx) error {
	artworks, err := s.gallery.SearchArtworks(c.Context(), c.Query("title"))
	if err != nil {
		return err
	}

	return c.JSON(artworks)
}

func (s *Server) allArtworks(c *fiber.Ctx) error {
	artworks, err := s.gallery.AllArtworks(c.Context(), identity(c), c.Query("email"))
	if err != nil {
		return err
	}

	return c.JSON(artworks)
}

func (s *Server) artwork(c *fiber.Ctx) error {
	artwork, err := s.gallery.Artwork(c.Context(), identity(c), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(artwork)
}

func (s *Server) createArtwork(c *fiber.Ctx) error {
	payload := &store.Artwork{}
	if err := c.BodyParser(payload); err != nil {
		return fiber.ErrBadRequest
	}

	s.sanitize(payload)

	artwork, err := s.gallery.CreateArtwork(c.Context(), identity(c), payload)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(artwork)
}

func (s *Server) updateArtwork(c *fiber.Ctx) error {
	payload := &store.Artwork{}
	if err := c.BodyParser(payload); err != nil {
		return fiber.ErrBadRequest
	}

	s.sanitize(payload)

	artwork, err := s.gallery.UpdateArtwork(c.Context(), identity(c), c.Params("id"), payload)
	if err != nil {
		return err
	}

	return c.JSON(artwork)
}

func (s *Server) deleteArtwork(c *fiber.Ctx) error {
	if err := s.gallery.DeleteArtwork(c.Context(), identity(c), c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) likeArtwork(c *fiber.Ctx) error {
	artwork, err := s.gallery.LikeArtwork(c.Context(), identity(c), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(artwork)
}

// sanitize strips markup from the free-text fields before they reach the
// store. Image stays untouched; it is a URL, not display text.
func (s *Server) sanitize(a *store.Artwork) {
	a.Title = s.sanitizer.Sanitize(a.Title)
	a.Category = s.sanitizer.Sanitize(a.Category)
	a.Medium = s.sanitizer.Sanitize(a.Medium)
	a.Description = s.sanitizer.Sanitize(a.Description)
	a.Dimensions = s.sanitizer.Sanitize(a.Dimensions)
	a.Price = s.sanitizer.Sanitize(a.Price)
}
