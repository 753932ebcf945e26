// Package constants defines shared constants used across the application.
package constants

// Environment names.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Database table names.
const (
	TableNumbers             = "numbers"
	TableAssignments         = "assignments"
	TableAssignmentRevisions = "assignment_revisions"
)

// Request context keys set by the auth middleware.
const (
	ContextKeyVendorID  = "vendor_id"
	ContextKeyAccountID = "account_id"
	ContextKeyAdmin     = "admin"
)

// Pagination defaults.
const (
	DefaultPageSize      = 50
	MaxPageSize          = 100
	DefaultAuditPageSize = 50
)

// DefaultGracePeriodDays is the fallback reservation window after a
// number is disassociated.
const DefaultGracePeriodDays = 30
