package ports

import (
	"context"

	"github.com/acquisitions/identity-api/internal/core/domain"
)

// AdmissionService is the narrow capability the security middleware
// delegates to: classify a request against a role-scoped quota rule and
// return an allow/deny decision. Any sliding-window counter backend
// satisfies the contract.
type AdmissionService interface {
	Protect(ctx context.Context, req domain.RequestInfo, rule domain.Rule) (domain.Decision, error)
}
