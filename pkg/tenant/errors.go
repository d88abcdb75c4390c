package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a tenant cannot be found.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInactiveTenant is returned when trying to use an inactive tenant.
	ErrInactiveTenant = errors.New("tenant is inactive")

	// ErrInvalidIdentifier is returned when an identifier format is invalid.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrNoTenantInContext is returned when a required tenant is missing
	// from the request context.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrNoBinding is returned when the unit of work has no binding at all,
	// i.e. the initializer middleware never ran.
	ErrNoBinding = errors.New("no tenant binding in context")

	// ErrAlreadyResolved is returned when code tries to re-resolve a binding
	// that already reached a terminal state. The binding of a unit of work
	// resolves exactly once.
	ErrAlreadyResolved = errors.New("tenant binding already resolved")

	// ErrNotBound is returned when an override is attempted on a binding
	// that holds no tenant.
	ErrNotBound = errors.New("tenant binding holds no tenant")

	// ErrAlreadyOverridden is returned when a second override is attempted
	// within the same unit of work.
	ErrAlreadyOverridden = errors.New("tenant binding already overridden")

	// ErrInvalidSlug is returned when provisioning with a malformed slug.
	ErrInvalidSlug = errors.New("invalid tenant slug")

	// ErrReservedSlug is returned when provisioning with a reserved label.
	ErrReservedSlug = errors.New("tenant slug is reserved")

	// ErrSlugTaken is returned when provisioning with a slug already in use.
	ErrSlugTaken = errors.New("tenant slug already taken")
)
