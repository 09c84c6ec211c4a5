package ports

import "context"

// PageIdentity is what the access token resolves to.
type PageIdentity struct {
	ID   string
	Name string
}

// TokenInspector checks that the configured page access token still works.
type TokenInspector interface {
	InspectToken(ctx context.Context) (*PageIdentity, error)
}
