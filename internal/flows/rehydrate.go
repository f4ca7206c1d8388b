package flows

import "context"

// RehydrateOutcome classifies the result of restoring a session from storage.
type RehydrateOutcome int

const (
	RehydrateEmpty RehydrateOutcome = iota
	RehydrateAuthenticated
	RehydrateCorrupt
)

// RehydrateResult carries the restored session material, if any.
type RehydrateResult struct {
	Outcome     RehydrateOutcome
	Err         error
	AccessToken string
	Identity    []byte
}

// RehydrateDeps captures rehydrate flow dependencies.
type RehydrateDeps struct {
	LoadCredential func(ctx context.Context) (access string, ok bool)
	LoadIdentity   func(ctx context.Context) ([]byte, bool)
	DecodeIdentity func(raw []byte) error
	ClearAll       func(ctx context.Context) error
}

// RunRehydrate restores a previously persisted session. A stored credential
// with a missing or undecodable identity is treated as corrupt storage: the
// store is cleared and the caller starts unauthenticated.
func RunRehydrate(ctx context.Context, deps RehydrateDeps) RehydrateResult {
	access, ok := deps.LoadCredential(ctx)
	if !ok || access == "" {
		return RehydrateResult{Outcome: RehydrateEmpty}
	}

	raw, ok := deps.LoadIdentity(ctx)
	if !ok {
		_ = deps.ClearAll(ctx)
		return RehydrateResult{Outcome: RehydrateCorrupt}
	}

	if err := deps.DecodeIdentity(raw); err != nil {
		_ = deps.ClearAll(ctx)
		return RehydrateResult{
			Outcome: RehydrateCorrupt,
			Err:     err,
		}
	}

	return RehydrateResult{
		Outcome:     RehydrateAuthenticated,
		AccessToken: access,
		Identity:    raw,
	}
}
