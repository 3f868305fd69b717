package workflow

import "eventflow-backend/internal/domain/event"

type StageState string

const (
	StageDone     StageState = "done"
	StageCurrent  StageState = "current"
	StageUpcoming StageState = "upcoming"
	StageSkipped  StageState = "skipped"
)

type Stage struct {
	Status event.Status `json:"status"`
	Label  string       `json:"label"`
	State  StageState   `json:"state"`
}

type Timeline struct {
	Current  event.Status `json:"current"`
	Rejected bool         `json:"rejected"`
	Stages   []Stage      `json:"stages"`
}

var stageLabels = map[event.Status]string{
	event.StatusSubmitted:          "Form Submitted",
	event.StatusVPApproved:         "VP Approved",
	event.StatusAdminPending:       "Admin Review",
	event.StatusAdminPendingSenior: "Senior Confirmation",
	event.StatusApproved:           "Approved",
	event.StatusCompleted:          "Event Done",
	event.StatusClosed:             "Marketing Done",
}

// Timeline lays out the stages an event passes through for its monetary
// flag and marks progress against current. The two post-approval outcomes are
// alternatives: reaching one marks the other skipped.
func (e Engine) Timeline(current event.Status, isMonetary bool) Timeline {
	statuses := append(e.Path(isMonetary), event.StatusCompleted, event.StatusClosed)
	tl := Timeline{Current: current, Rejected: current == event.StatusRejected}

	idx := -1
	for i, s := range statuses {
		if s == current {
			idx = i
			break
		}
	}

	for i, s := range statuses {
		st := Stage{Status: s, Label: stageLabels[s], State: StageUpcoming}
		switch {
		case tl.Rejected:
		case current == event.StatusClosed && s == event.StatusCompleted,
			current == event.StatusCompleted && s == event.StatusClosed:
			st.State = StageSkipped
		case i == idx:
			st.State = StageCurrent
		case idx >= 0 && i < idx:
			st.State = StageDone
		}
		tl.Stages = append(tl.Stages, st)
	}
	return tl
}
