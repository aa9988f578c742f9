package ports

import "context"

// CredentialProvider supplies the auth token attached to every remote call.
// Each presentation surface plugs in its own token source, which keeps the
// engine free of ambient session state and testable without one.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}
