package flows

import "context"

// LoginFailureKind classifies login flow failures for root-level mapping.
type LoginFailureKind int

const (
	LoginFailureNone LoginFailureKind = iota
	LoginFailureCall
	LoginFailureDecodeRole
	LoginFailureRoleDenied
	LoginFailurePersistCredential
	LoginFailurePersistIdentity
)

// LoginResult carries either the established session material or failure metadata.
type LoginResult struct {
	Failure      LoginFailureKind
	Err          error
	Role         string
	AccessToken  string
	RefreshToken string
	Identity     []byte
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	CallLogin         func(ctx context.Context, email, password string) (access, refresh string, identity []byte, err error)
	RoleFromToken     func(token string) (string, error)
	RoleAllowed       func(role string) bool
	PersistCredential func(ctx context.Context, access, refresh string) error
	PersistIdentity   func(ctx context.Context, raw []byte, role string) error
}

// RunLogin executes credential exchange and role gating without root package
// dependencies. Nothing is persisted unless the role gate passes; the
// credential is persisted before the identity so a crash between the two
// leaves a usable session.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) LoginResult {
	access, refresh, identity, err := deps.CallLogin(ctx, email, password)
	if err != nil {
		return LoginResult{
			Failure: LoginFailureCall,
			Err:     err,
		}
	}

	role, err := deps.RoleFromToken(access)
	if err != nil {
		return LoginResult{
			Failure: LoginFailureDecodeRole,
			Err:     err,
		}
	}

	if !deps.RoleAllowed(role) {
		return LoginResult{
			Failure: LoginFailureRoleDenied,
			Role:    role,
		}
	}

	if err := deps.PersistCredential(ctx, access, refresh); err != nil {
		return LoginResult{
			Failure: LoginFailurePersistCredential,
			Err:     err,
			Role:    role,
		}
	}

	if err := deps.PersistIdentity(ctx, identity, role); err != nil {
		return LoginResult{
			Failure: LoginFailurePersistIdentity,
			Err:     err,
			Role:    role,
		}
	}

	return LoginResult{
		Failure:      LoginFailureNone,
		Role:         role,
		AccessToken:  access,
		RefreshToken: refresh,
		Identity:     identity,
	}
}
