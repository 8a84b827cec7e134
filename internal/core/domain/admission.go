package domain

import "time"

// DenyReason classifies why the admission backend rejected a request.
type DenyReason string

const (
	DenyNone      DenyReason = ""
	DenyBot       DenyReason = "bot"
	DenyShield    DenyReason = "shield"
	DenyRateLimit DenyReason = "rate_limit"
)

// Decision is the outcome of an admission check. When more than one deny
// condition applies, Reason carries only the highest-priority one
// (bot > shield > rate limit).
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Rule is a role-scoped sliding-window quota handed to the admission backend.
type Rule struct {
	Name     string
	Interval time.Duration
	Max      int
}

// RequestInfo carries the request attributes the admission backend needs to
// classify a caller. It is also the logging identity for denied requests.
type RequestInfo struct {
	IP        string
	Method    string
	Path      string
	Query     string
	UserAgent string
}

const rateLimitInterval = time.Minute

// RuleForRole returns the sliding-window quota for a caller role:
// guest=5, user=10, admin=20 requests per minute. Unknown roles are
// treated as guests.
func RuleForRole(role string) Rule {
	max := 5
	switch role {
	case RoleAdmin:
		max = 20
	case RoleUser:
		max = 10
	default:
		role = RoleGuest
	}
	return Rule{
		Name:     role + "-rate-limit",
		Interval: rateLimitInterval,
		Max:      max,
	}
}
