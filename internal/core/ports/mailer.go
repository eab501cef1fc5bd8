package ports

import "context"

// Mailer is the outbound email collaborator. SendVerificationEmail is
// fire-and-forget from the caller's perspective; SendPasswordResetEmail must
// report delivery failure so that reset issuance can roll back.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, name, token string) error
	SendPasswordResetEmail(ctx context.Context, to, name, token string) error
}
