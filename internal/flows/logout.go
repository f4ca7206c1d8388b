package flows

import "context"

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	ClearAll func(ctx context.Context) error
	Warn     func(msg string, args ...any)
}

// RunLogout clears persisted session material. Logout is local only — the
// backend holds no revocable session state for this client — so a storage
// failure is logged and swallowed rather than blocking sign-out.
func RunLogout(ctx context.Context, deps LogoutDeps) {
	if err := deps.ClearAll(ctx); err != nil && deps.Warn != nil {
		deps.Warn("goAdmin: credential clear failed on logout")
	}
}
