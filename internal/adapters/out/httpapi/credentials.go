package httpapi

import "context"

// StaticCredentialProvider supplies a fixed API token. Used by the admin
// console deployment where the token comes from configuration; interactive
// surfaces plug in their own session-backed provider instead.
type StaticCredentialProvider struct {
	token string
}

// NewStaticCredentialProvider creates a provider returning the given token.
func NewStaticCredentialProvider(token string) *StaticCredentialProvider {
	return &StaticCredentialProvider{token: token}
}

// Token returns the configured token.
func (p *StaticCredentialProvider) Token(context.Context) (string, error) {
	return p.token, nil
}
