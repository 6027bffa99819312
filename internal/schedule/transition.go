package schedule

import (
	"time"

	"github.com/dedatech/workplan/internal/domain"
)

// Clock supplies the current time. Injected so transitions are deterministic
// under test.
type Clock func() time.Time

// TransitionInput carries everything the state machine needs: the stored
// status and actual dates, the requested status, and any caller-supplied
// overrides. A non-nil override is applied verbatim and wins over every
// derived behavior.
type TransitionInput struct {
	Current   domain.TaskStatus
	Requested domain.TaskStatus

	ActualStart *time.Time
	ActualEnd   *time.Time

	OverrideStart *time.Time
	OverrideEnd   *time.Time
}

// TransitionResult is the derived status and actual dates to persist.
type TransitionResult struct {
	Status      domain.TaskStatus
	ActualStart *time.Time
	ActualEnd   *time.Time
}

// ApplyStatusTransition derives the next actual start/end dates for a status
// change. Transitions themselves are unrestricted; the machine's only job is
// the two date fields. Start and end resolve independently:
//
//   - an explicit override is used verbatim;
//   - otherwise the date is set to today, cleared, or carried forward based
//     on the (current, requested) pair.
//
// A direct TODO -> DONE jump still records a start date. Reopening DONE work
// clears the end date; going all the way back to TODO clears both.
func ApplyStatusTransition(in TransitionInput, now time.Time) TransitionResult {
	today := domain.DateOnly(now)
	res := TransitionResult{Status: in.Requested}

	switch {
	case in.OverrideStart != nil:
		res.ActualStart = in.OverrideStart
	case in.Requested == domain.TaskInProgress && in.Current != domain.TaskInProgress,
		in.Requested == domain.TaskDone && in.Current == domain.TaskTodo:
		res.ActualStart = &today
	case in.Requested == domain.TaskTodo &&
		(in.Current == domain.TaskInProgress || in.Current == domain.TaskDone):
		res.ActualStart = nil
	default:
		res.ActualStart = in.ActualStart
	}

	switch {
	case in.OverrideEnd != nil:
		res.ActualEnd = in.OverrideEnd
	case in.Requested == domain.TaskDone && in.Current != domain.TaskDone:
		res.ActualEnd = &today
	case in.Requested != domain.TaskDone && in.Current == domain.TaskDone:
		res.ActualEnd = nil
	default:
		res.ActualEnd = in.ActualEnd
	}

	return res
}
