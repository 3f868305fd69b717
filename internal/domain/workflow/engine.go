package workflow

import (
	"errors"
	"sort"
	"strings"

	"eventflow-backend/internal/domain/actor"
	"eventflow-backend/internal/domain/event"
)

var (
	ErrPermissionDenied = errors.New("role not permitted to act on this stage")
	ErrMissingReason    = errors.New("rejection requires a reason")
	ErrTerminalState    = errors.New("event is closed to further transitions")
	ErrUnknownAction    = errors.New("unknown action")
	ErrUnknownStatus    = errors.New("unknown event status")
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func (a Action) Valid() bool { return a == ActionApprove || a == ActionReject }

// transitions maps a stage to the roles allowed to act on it and the status
// each role's approval leads to. Rejection always leads to REJECTED.
var transitions = map[event.Status]map[actor.Role]event.Status{
	event.StatusSubmitted: {
		actor.RoleVPClubs: event.StatusVPApproved,
	},
	event.StatusVPApproved: {
		actor.RoleAdmin: event.StatusAdminPending,
	},
	event.StatusAdminPending: {
		actor.RoleSeniorAdmin: event.StatusApproved,
	},
	event.StatusAdminPendingSenior: {
		actor.RoleSeniorAdmin: event.StatusApproved,
	},
	event.StatusApproved: {
		actor.RoleOpsComm:   event.StatusCompleted,
		actor.RoleMarketing: event.StatusClosed,
	},
}

// Decision is the accepted effect of an action.
type Decision struct {
	From   event.Status `json:"from"`
	Next   event.Status `json:"next"`
	Action Action       `json:"action"`
}

// Engine is the stateless transition function. The zero value runs
// BranchDirectToSenior.
type Engine struct {
	policy BranchPolicy
}

func NewEngine(p BranchPolicy) Engine { return Engine{policy: p} }

func (e Engine) Policy() BranchPolicy { return e.policy }

// Decide validates action by role against ev's current stage and returns the
// resulting status. Checks run in order: terminal stage, missing rejection
// reason, role permission.
func (e Engine) Decide(ev *event.Event, role actor.Role, action Action, comments string) (Decision, error) {
	if ev == nil {
		return Decision{}, event.ErrNotFound
	}
	if !action.Valid() {
		return Decision{}, ErrUnknownAction
	}
	if ev.Status.Terminal() {
		return Decision{}, ErrTerminalState
	}
	if action == ActionReject && strings.TrimSpace(comments) == "" {
		return Decision{}, ErrMissingReason
	}
	stage, ok := transitions[ev.Status]
	if !ok {
		return Decision{}, ErrUnknownStatus
	}
	next, ok := stage[role]
	if !ok {
		return Decision{}, ErrPermissionDenied
	}
	if action == ActionReject {
		next = event.StatusRejected
	} else {
		next = e.policy.route(ev.Status, next, ev.IsMonetary)
	}
	return Decision{From: ev.Status, Next: next, Action: action}, nil
}

// Decide runs the service policy.
func Decide(ev *event.Event, role actor.Role, action Action, comments string) (Decision, error) {
	return NewEngine(MonetaryBranch).Decide(ev, role, action, comments)
}

// RolesFor returns the roles allowed to act on status, sorted.
func RolesFor(status event.Status) []actor.Role {
	stage := transitions[status]
	out := make([]actor.Role, 0, len(stage))
	for r := range stage {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StatusesFor is the inverse of RolesFor: the stages role may act on, in
// workflow order.
func StatusesFor(role actor.Role) []event.Status {
	var out []event.Status
	for _, s := range event.Statuses() {
		if _, ok := transitions[s][role]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Path is the approval route an event takes from SUBMITTED to APPROVED under
// the engine's policy.
func (e Engine) Path(isMonetary bool) []event.Status {
	cur := event.StatusSubmitted
	out := []event.Status{cur}
	for cur != event.StatusApproved {
		roles := RolesFor(cur)
		if len(roles) == 0 {
			break
		}
		cur = e.policy.route(cur, transitions[cur][roles[0]], isMonetary)
		out = append(out, cur)
	}
	return out
}
