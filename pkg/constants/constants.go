// pkg/constants/constants.go
package constants

//============== UPLOAD CONTEXTS ==============

// UploadContext names a set of upload rules in config.UploadContexts.
type UploadContext string

const (
	// UploadContextRequestAttachment is the image/PDF attached to a service request.
	UploadContextRequestAttachment UploadContext = "request_attachment"
)

func (uc UploadContext) String() string {
	return string(uc)
}

//============== CACHE KEYS ==============

const (
	// Monotonic counter bumped on every request mutation. Polling clients
	// compare it with the last value they saw before refetching the list.
	// Format: requests:revision -> int
	CacheKeyRequestsRevision = "requests:revision"

	// Failed logins per login name, expires after the lockout window.
	// Format: auth:login_attempts:{login} -> int
	CacheKeyLoginAttempts = "auth:login_attempts:%s"
)

//============== LIST SCOPES ==============

type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeMine     Scope = "mine"
	ScopeAssigned Scope = "assigned"
	ScopePool     Scope = "pool"
)

func ParseScope(raw string) (Scope, bool) {
	switch Scope(raw) {
	case "":
		return ScopeAll, true
	case ScopeAll, ScopeMine, ScopeAssigned, ScopePool:
		return Scope(raw), true
	}
	return "", false
}
