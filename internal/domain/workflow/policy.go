package workflow

import "eventflow-backend/internal/domain/event"

// BranchPolicy decides where a monetary event goes once it leaves the admin
// stage. Only the isMonetary flag is consulted, never the budget amount.
type BranchPolicy int

const (
	// BranchDirectToSenior: ADMIN approval of a monetary event at VP_APPROVED
	// lands on ADMIN_PENDING_SENIOR; non-monetary events go to ADMIN_PENDING.
	BranchDirectToSenior BranchPolicy = iota

	// BranchViaAdminPending: every event goes to ADMIN_PENDING; SENIOR_ADMIN
	// approval there escalates monetary events to ADMIN_PENDING_SENIOR.
	BranchViaAdminPending
)

// MonetaryBranch is the policy the service runs with.
const MonetaryBranch = BranchDirectToSenior

func (p BranchPolicy) String() string {
	switch p {
	case BranchDirectToSenior:
		return "direct-to-senior"
	case BranchViaAdminPending:
		return "via-admin-pending"
	default:
		return "unknown"
	}
}

// route rewrites the table's next status for monetary events.
func (p BranchPolicy) route(from, next event.Status, isMonetary bool) event.Status {
	if !isMonetary {
		return next
	}
	switch p {
	case BranchDirectToSenior:
		if from == event.StatusVPApproved {
			return event.StatusAdminPendingSenior
		}
	case BranchViaAdminPending:
		if from == event.StatusAdminPending {
			return event.StatusAdminPendingSenior
		}
	}
	return next
}
