// internal/errors/errors.go
package errors

import "fmt"

type sentinelError string

func (e sentinelError) Error() string { return string(e) }

// ErrNotFound marks a resource (config file, repository, language map) that
// does not exist upstream. Recoverable per repository; never fatal to a run.
const ErrNotFound = sentinelError("not found")

// ErrIgnoredProject marks a config whose project section sets ignore = true.
// The read path maps it to a 403.
const ErrIgnoredProject = sentinelError("ignored project")

// FetchError is a transport or HTTP-level failure against a resource the sync
// run cannot proceed without (exclusion list, repository list). Fatal to the
// whole run.
type FetchError struct {
	Resource   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s: status %d", e.Resource, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ResolveConfigError is a per-repository resolution failure: the config file
// is absent or its content does not parse. Callers treat it as "no config".
type ResolveConfigError struct {
	Reason string
	Err    error
}

func (e *ResolveConfigError) Error() string {
	return fmt.Sprintf("resolve config error: %s", e.Reason)
}

func (e *ResolveConfigError) Unwrap() error { return e.Err }
