package store

import (
	"context"
	"errors"
)

type Store interface {
	ArtworkStore
	FavoriteStore
	Init(context.Context) error
	Close(context.Context) error
}

var (
	ErrArtworkNotFound  = errors.New("artwork not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrAlreadyLiked     = errors.New("artwork already liked")
	ErrAlreadyFavorited = errors.New("artwork already favorited")
	ErrInvalidID        = errors.New("invalid artwork id")
)
