package domain

import "errors"

var (
	// ErrRemoteUnavailable marks any transport-level failure or non-success
	// status from the remote service. The gateway treats every wrapped
	// instance identically: trip the breaker and fall back to the cache.
	ErrRemoteUnavailable = errors.New("remote service unavailable")

	// ErrInvalidCredentials is the negative login result.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound marks an update/delete whose target does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation marks a malformed entity rejected before persistence.
	ErrValidation = errors.New("validation failed")

	// ErrOpenEntry is returned when a user tries to clock in while an
	// entry is still open.
	ErrOpenEntry = errors.New("user already has an open time entry")

	// ErrNoOpenEntry is returned when a clock-out or overtime intent finds
	// no open entry to act on.
	ErrNoOpenEntry = errors.New("no open time entry")

	// ErrEntryClosed rejects mutations that are only legal while an entry
	// is open (setting clock-out again, accumulating overtime).
	ErrEntryClosed = errors.New("time entry already clocked out")

	// ErrForbidden rejects an intent the current role is not allowed to
	// perform.
	ErrForbidden = errors.New("operation not permitted for role")

	// ErrSelfManagement rejects edit/delete of the authenticated account
	// through the user-management path.
	ErrSelfManagement = errors.New("cannot manage own account")

	// ErrNotAuthenticated is returned by session intents before login.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrPasswordChangeRequired gates every intent except the password
	// change itself while ForcePasswordChange is set.
	ErrPasswordChangeRequired = errors.New("password change required")
)
