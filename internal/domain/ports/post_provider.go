package ports

import (
	"context"

	"page-relay/internal/domain/model"
)

// PostProvider reads page posts from the content API.
type PostProvider interface {
	GetPost(ctx context.Context, postID string) (*model.Post, error)
}
