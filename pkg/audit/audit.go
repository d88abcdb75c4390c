package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEventValidation is returned when a logged event misses required fields.
	ErrEventValidation = errors.New("audit: event validation failed")
)

// Result represents the outcome of an audited action.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Event is a single audit trail entry. Privileged tenancy operations
// (superadmin overrides, escape-hatch queries, tenant provisioning) are
// recorded as events so cross-tenant access stays reviewable.
type Event struct {
	ID        uuid.UUID      `json:"id"`
	Action    string         `json:"action"`
	ActorID   string         `json:"actor_id,omitempty"`
	TenantID  string         `json:"tenant_id,omitempty"`
	Result    Result         `json:"result"`
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Validate checks required fields.
func (e *Event) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrEventValidation)
	}
	return nil
}

// Storage persists audit events.
type Storage interface {
	Store(ctx context.Context, event Event) error
}

// ContextExtractor pulls a string value (actor id, tenant id) from context.
type ContextExtractor func(ctx context.Context) (string, bool)

// Logger records audit events, auto-populating actor and tenant from context.
type Logger struct {
	storage         Storage
	actorExtractor  ContextExtractor
	tenantExtractor ContextExtractor
}

// Option configures a Logger.
type Option func(*Logger)

// WithActorExtractor registers the function that derives the acting
// principal's id from context.
func WithActorExtractor(fn ContextExtractor) Option {
	return func(l *Logger) { l.actorExtractor = fn }
}

// WithTenantExtractor registers the function that derives the current
// tenant id from context.
func WithTenantExtractor(fn ContextExtractor) Option {
	return func(l *Logger) { l.tenantExtractor = fn }
}

// NewLogger creates an audit logger. Panics on nil storage: an audit trail
// that silently drops events is worse than no audit trail.
func NewLogger(storage Storage, opts ...Option) *Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}
	l := &Logger{storage: storage}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log records a successful action.
func (l *Logger) Log(ctx context.Context, action string, opts ...EventOption) error {
	return l.log(ctx, action, ResultSuccess, "", opts...)
}

// LogError records a failed action.
func (l *Logger) LogError(ctx context.Context, action string, err error, opts ...EventOption) error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return l.log(ctx, action, ResultFailure, msg, opts...)
}

func (l *Logger) log(ctx context.Context, action string, result Result, errMsg string, opts ...EventOption) error {
	event := Event{
		ID:        uuid.New(),
		Action:    action,
		Result:    result,
		Error:     errMsg,
		CreatedAt: time.Now(),
	}
	if l.actorExtractor != nil {
		if actor, ok := l.actorExtractor(ctx); ok {
			event.ActorID = actor
		}
	}
	if l.tenantExtractor != nil {
		if tenantID, ok := l.tenantExtractor(ctx); ok {
			event.TenantID = tenantID
		}
	}
	for _, opt := range opts {
		opt(&event)
	}
	if err := event.Validate(); err != nil {
		return err
	}
	return l.storage.Store(ctx, event)
}

// EventOption applies per-event configuration during logging.
type EventOption func(*Event)

// WithMetadata adds a metadata key to the event.
func WithMetadata(key string, value any) EventOption {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any)
		}
		e.Metadata[key] = value
	}
}

// WithTenant pins the event's tenant id, overriding context extraction.
func WithTenant(id string) EventOption {
	return func(e *Event) { e.TenantID = id }
}

// WithActor pins the event's actor id, overriding context extraction.
func WithActor(id string) EventOption {
	return func(e *Event) { e.ActorID = id }
}
