package flows

import "context"

// RefreshFailureKind classifies refresh flow failures for root-level mapping.
type RefreshFailureKind int

const (
	RefreshFailureNone RefreshFailureKind = iota
	RefreshFailureNoToken
	RefreshFailureCall
	RefreshFailurePersist
)

// RefreshResult carries either the rotated token pair or failure metadata.
type RefreshResult struct {
	Failure      RefreshFailureKind
	Err          error
	AccessToken  string
	RefreshToken string
}

// RefreshDeps captures refresh flow dependencies.
type RefreshDeps struct {
	CurrentRefreshToken func(ctx context.Context) (string, bool)
	CallRefresh         func(ctx context.Context, refreshToken string) (access, refresh string, err error)
	PersistCredential   func(ctx context.Context, access, refresh string) error
	Warn                func(msg string, args ...any)
}

// RunRefresh exchanges the stored refresh token for a new pair and persists
// the rotation. A persist failure is surfaced even though the exchange
// succeeded: the rotated pair would otherwise be lost on restart.
func RunRefresh(ctx context.Context, deps RefreshDeps) RefreshResult {
	current, ok := deps.CurrentRefreshToken(ctx)
	if !ok || current == "" {
		return RefreshResult{Failure: RefreshFailureNoToken}
	}

	access, refresh, err := deps.CallRefresh(ctx, current)
	if err != nil {
		return RefreshResult{
			Failure: RefreshFailureCall,
			Err:     err,
		}
	}

	if err := deps.PersistCredential(ctx, access, refresh); err != nil {
		if deps.Warn != nil {
			deps.Warn("goAdmin: rotated credential persist failed")
		}
		return RefreshResult{
			Failure:      RefreshFailurePersist,
			Err:          err,
			AccessToken:  access,
			RefreshToken: refresh,
		}
	}

	return RefreshResult{
		Failure:      RefreshFailureNone,
		AccessToken:  access,
		RefreshToken: refresh,
	}
}
