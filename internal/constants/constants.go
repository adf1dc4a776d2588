package constants

import "time"

// Context and session keys
const (
	ContextKeyUserID  = "user_id"
	ContextKeyClaims  = "token_claims"
	SessionCookieName = "organiz_session"
)

// APIPrefix is the route prefix of every versioned endpoint.
const APIPrefix = "/api/v1"

// Account defaults
const (
	DefaultRole           = "USER"
	DefaultTokenTTL       = time.Hour
	PasswordSaltBytes     = 16
	MinPasswordLength     = 14
	MaxPasswordLength     = 80
	MaxAccountNameLength  = 25
	MaxEmailLength        = 35
	MaxCategoryNameLength = 35
	MaxStatusNameLength   = 25
	MaxProjectNameLength  = 55
	MaxTaskNameLength     = 35
)

// Status names seeded the first time a project is created.
const (
	StatusNew       = "New"
	StatusAccepted  = "Accepted"
	StatusOnGoing   = "OnGoing"
	StatusCompleted = "Completed"
)

// DefaultStatuses lists the seeded statuses in creation order.
var DefaultStatuses = []string{StatusNew, StatusAccepted, StatusOnGoing, StatusCompleted}

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
