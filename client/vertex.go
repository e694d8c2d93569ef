package client

import (
	"context"

	"google.golang.org/api/option"
	"google.golang.org/api/transport"

	"github.com/taipm/siumai/provider"
)

// NewAnthropicVertexBuilder builds a Builder over Anthropic-on-Vertex,
// minting bearer tokens from Google's ambient credential chain
// (Application Default Credentials) instead of a static key. scopes
// defaults to the cloud-platform scope Vertex's rawPredict routes
// require.
func NewAnthropicVertexBuilder(ctx context.Context, project, location string, scopes ...string) (*Builder, error) {
	if len(scopes) == 0 {
		scopes = []string{"https://www.googleapis.com/auth/cloud-platform"}
	}
	creds, err := transport.Creds(ctx, option.WithScopes(scopes...))
	if err != nil {
		return nil, err
	}
	tokenSource := func() (string, error) {
		tok, err := creds.TokenSource.Token()
		if err != nil {
			return "", err
		}
		return tok.AccessToken, nil
	}
	return New(provider.NewAnthropicVertex(project, location, tokenSource)), nil
}
