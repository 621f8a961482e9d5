package server

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) favorites(c *fiber.Ctx) error {
	favorites, err := s.gallery.Favorites(c.Context(), identity(c))
	if err != nil {
		return err
	}

	return c.JSON(favorites)
}

func (s *Server) favorite(c *fiber.Ctx) error {
	fav, err := s.gallery.Favorite(c.Context(), identity(c), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fav)
}

func (s *Server) addFavorite(c *fiber.Ctx) error {
	payload := struct {
		ID string `json:"id"`
	}{}

	if err := c.BodyParser(&payload); err != nil {
		return fiber.ErrBadRequest
	}

	fav, err := s.gallery.AddFavorite(c.Context(), identity(c), payload.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fav)
}

func (s *Server) removeFavorite(c *fiber.Ctx) error {
	if err := s.gallery.RemoveFavorite(c.Context(), identity(c), c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) favoritedArtworks(c *fiber.Ctx) error {
	artworks, err := s.gallery.FavoritedArtworks(c.Context(), identity(c))
	if err != nil {
		return err
	}

	return c.JSON(artworks)
}
