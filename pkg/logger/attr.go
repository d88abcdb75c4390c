package logger

import (
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// TenantID records a tenant identifier under the key "tenant_id".
func TenantID(id int64) slog.Attr {
	return slog.Int64("tenant_id", id)
}

// TenantSlug records a tenant slug under the key "tenant_slug".
func TenantSlug(s string) slog.Attr {
	return slog.String("tenant_slug", s)
}

// PrincipalID records the acting principal under the key "principal_id".
// If id is nil, it returns an empty Attr.
func PrincipalID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("principal_id", id)
}

// Source records which resolution strategy produced a tenant match under
// the key "source".
func Source(s string) slog.Attr {
	return slog.String("source", s)
}
