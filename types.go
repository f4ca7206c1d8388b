package goAdmin

import (
	"io"
	"time"

	internalaudit "github.com/AnonymousWall/goAdmin/internal/audit"
)

// Role represents the access level decoded from a credential's claims.
//
//	Docs: docs/session.md
type Role string

const (
	// RoleUser is an exported constant or variable used by the moderation client engine.
	RoleUser Role = "USER"
	// RoleAdmin is an exported constant or variable used by the moderation client engine.
	RoleAdmin Role = "ADMIN"
	// RoleModerator is an exported constant or variable used by the moderation client engine.
	RoleModerator Role = "MODERATOR"
)

// SessionState is the tri-state lifecycle of the authenticated session.
//
//	Docs: docs/session.md
type SessionState uint8

const (
	// SessionUnauthenticated is an exported constant or variable used by the moderation client engine.
	SessionUnauthenticated SessionState = iota
	// SessionLoading is an exported constant or variable used by the moderation client engine.
	SessionLoading
	// SessionAuthenticated is an exported constant or variable used by the moderation client engine.
	SessionAuthenticated
)

// SessionEventType defines a public type used by goAdmin APIs.
//
// SessionEventType instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionEventType uint8

const (
	// SessionEventLogin is an exported constant or variable used by the moderation client engine.
	SessionEventLogin SessionEventType = iota
	// SessionEventLogout is an exported constant or variable used by the moderation client engine.
	SessionEventLogout
	// SessionEventRehydrated is an exported constant or variable used by the moderation client engine.
	SessionEventRehydrated
	// SessionEventInvalidated is an exported constant or variable used by the moderation client engine.
	SessionEventInvalidated
)

// SessionEvent is delivered to observers registered through
// [Client.Subscribe]. Reason is non-nil only for SessionEventInvalidated and
// wraps [ErrSessionInvalidated]; the embedding application reacts to it
// (typically by navigating to its login surface) — the library never does.
type SessionEvent struct {
	Type     SessionEventType
	State    SessionState
	Identity *Identity
	Reason   error
}

// Identity is the decoded moderator record attached to a credential. Role is
// merged in from the access token's own claims at login time; the login
// response's user object does not reliably carry it.
type Identity struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	ProfileName  string `json:"profileName"`
	SchoolDomain string `json:"schoolDomain,omitempty"`
	Role         Role   `json:"role,omitempty"`
	Blocked      bool   `json:"blocked"`
	Verified     bool   `json:"verified"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// SortOrder defines a public type used by goAdmin APIs.
//
// SortOrder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SortOrder string

const (
	// SortAsc is an exported constant or variable used by the moderation client engine.
	SortAsc SortOrder = "asc"
	// SortDesc is an exported constant or variable used by the moderation client engine.
	SortDesc SortOrder = "desc"
)

// Pagination mirrors the backend's pagination envelope. Absent fields decode
// to zero; the shape is never trusted beyond that.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is the generic paginated list envelope `{data, pagination}` returned
// by every LIST endpoint.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// User defines a public type used by goAdmin APIs.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	ProfileName  string `json:"profileName"`
	SchoolDomain string `json:"schoolDomain"`
	Role         Role   `json:"role,omitempty"`
	Blocked      bool   `json:"blocked"`
	Verified     bool   `json:"verified"`
	PasswordSet  bool   `json:"passwordSet"`
	ReportCount  int    `json:"reportCount"`
	CreatedAt    string `json:"createdAt"`
}

// Post defines a public type used by goAdmin APIs.
type Post struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	ProfileName  string `json:"profileName"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Wall         string `json:"wall"`
	SchoolDomain string `json:"schoolDomain"`
	LikeCount    int    `json:"likeCount"`
	CommentCount int    `json:"commentCount"`
	Hidden       bool   `json:"hidden"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// Comment defines a public type used by goAdmin APIs.
type Comment struct {
	ID          string `json:"id"`
	PostID      string `json:"postId"`
	UserID      string `json:"userId"`
	ProfileName string `json:"profileName"`
	Text        string `json:"text"`
	Hidden      bool   `json:"hidden"`
	CreatedAt   string `json:"createdAt"`
}

// ReportType distinguishes the two report collections.
type ReportType string

const (
	// ReportTypePost is an exported constant or variable used by the moderation client engine.
	ReportTypePost ReportType = "POST"
	// ReportTypeComment is an exported constant or variable used by the moderation client engine.
	ReportTypeComment ReportType = "COMMENT"
)

// ReportStatus defines a public type used by goAdmin APIs.
type ReportStatus string

const (
	// ReportPending is an exported constant or variable used by the moderation client engine.
	ReportPending ReportStatus = "PENDING"
	// ReportResolved is an exported constant or variable used by the moderation client engine.
	ReportResolved ReportStatus = "RESOLVED"
	// ReportRejected is an exported constant or variable used by the moderation client engine.
	ReportRejected ReportStatus = "REJECTED"
)

// PostReport defines a public type used by goAdmin APIs.
type PostReport struct {
	ID             string       `json:"id"`
	PostID         string       `json:"postId"`
	ReporterUserID string       `json:"reporterUserId"`
	Reason         string       `json:"reason"`
	Status         ReportStatus `json:"status,omitempty"`
	CreatedAt      string       `json:"createdAt"`
}

// CommentReport defines a public type used by goAdmin APIs.
type CommentReport struct {
	ID             string       `json:"id"`
	CommentID      string       `json:"commentId"`
	ReporterUserID string       `json:"reporterUserId"`
	Reason         string       `json:"reason"`
	Status         ReportStatus `json:"status,omitempty"`
	CreatedAt      string       `json:"createdAt"`
}

// ReportsPage is the reports LIST envelope. Unlike other entities it carries
// two collections, one per report type, under a shared pagination block.
type ReportsPage struct {
	PostReports    []PostReport    `json:"postReports"`
	CommentReports []CommentReport `json:"commentReports"`
	Pagination     Pagination      `json:"pagination"`
}

// Internship defines a public type used by goAdmin APIs.
type Internship struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	ProfileName string `json:"profileName,omitempty"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Hidden      bool   `json:"hidden"`
	CreatedAt   string `json:"createdAt"`
}

// MarketplaceItem defines a public type used by goAdmin APIs.
type MarketplaceItem struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	ProfileName string  `json:"profileName,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Hidden      bool    `json:"hidden"`
	CreatedAt   string  `json:"createdAt"`
}

// Conversation defines a public type used by goAdmin APIs.
type Conversation struct {
	ID            string   `json:"id"`
	ParticipantID []string `json:"participantIds,omitempty"`
	MessageCount  int      `json:"messageCount"`
	LastMessageAt string   `json:"lastMessageAt,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

// Message defines a public type used by goAdmin APIs.
type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	Text           string `json:"text"`
	CreatedAt      string `json:"createdAt"`
}

// SchoolDomain defines a public type used by goAdmin APIs.
type SchoolDomain struct {
	ID         string `json:"id"`
	Domain     string `json:"domain"`
	SchoolName string `json:"schoolName"`
	CreatedAt  string `json:"createdAt"`
}

// DashboardStats is the aggregate counters block rendered on the dashboard
// landing page.
type DashboardStats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalPosts     int `json:"totalPosts"`
	TotalComments  int `json:"totalComments"`
	TotalReports   int `json:"totalReports"`
	BlockedUsers   int `json:"blockedUsers"`
	HiddenPosts    int `json:"hiddenPosts"`
	HiddenComments int `json:"hiddenComments"`
}

// actionResponse is the `{message}` body returned by every action endpoint.
type actionResponse struct {
	Message string `json:"message"`
}

// loginResponse is the auth endpoint body. The user object is untrusted for
// role purposes; role comes from the token claims.
type loginResponse struct {
	User         Identity `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken,omitempty"`
}

// refreshResponse is the refresh endpoint body. Some deployments rotate the
// refresh token alongside the access token.
type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// QueryStatus is the observable state of one cache entry.
//
//	Docs: docs/cache.md
type QueryStatus uint8

const (
	// QueryPending is an exported constant or variable used by the moderation client engine.
	QueryPending QueryStatus = iota
	// QuerySuccess is an exported constant or variable used by the moderation client engine.
	QuerySuccess
	// QueryError is an exported constant or variable used by the moderation client engine.
	QueryError
)

// CacheEntryInfo is a read-only view of one cached query, exposed so a
// consumer can distinguish a first load from a refetch after invalidation.
type CacheEntryInfo struct {
	Kind    ResourceKind
	Key     string
	Status  QueryStatus
	Refetch bool
	Stale   bool
	Age     time.Duration
}

// AuditEvent is a structured audit record emitted by the client.
//
//	Docs: docs/audit.md
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the client's audit dispatcher.
//
//	Docs: docs/audit.md
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
//
//	Docs: docs/audit.md
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
//
//	Docs: docs/audit.md
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
//
//	Docs: docs/audit.md
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
//
//	Docs: docs/audit.md
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
