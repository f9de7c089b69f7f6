package view

import "github.com/google/uuid"

// Status is the lifecycle stage of a view.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is an immutable snapshot of one view. Reduce returns new values
// instead of modifying existing ones.
type State[T any] struct {
	Status  Status    `json:"status"`
	Data    T         `json:"data"`
	Message string    `json:"message,omitempty"` // user-facing error text
	Token   uuid.UUID `json:"-"`
	Err     error     `json:"-"` // underlying cause of StatusError
}

// ActionKind identifies a state transition.
type ActionKind int

const (
	ActionStart ActionKind = iota
	ActionSucceed
	ActionFail
	ActionReset
)

// Action is one input to Reduce.
type Action[T any] struct {
	Kind    ActionKind
	Token   uuid.UUID
	Data    T
	Message string
	Err     error
}

// Start begins a load identified by token.
func Start[T any](token uuid.UUID) Action[T] {
	return Action[T]{Kind: ActionStart, Token: token}
}

// Succeed completes the load identified by token with data.
func Succeed[T any](token uuid.UUID, data T) Action[T] {
	return Action[T]{Kind: ActionSucceed, Token: token, Data: data}
}

// Fail completes the load identified by token with a user-facing message.
func Fail[T any](token uuid.UUID, message string, err error) Action[T] {
	return Action[T]{Kind: ActionFail, Token: token, Message: message, Err: err}
}

// Reduce applies a to s. Completions whose token does not match the
// in-flight load, or that arrive when nothing is loading, leave s unchanged.
func Reduce[T any](s State[T], a Action[T]) State[T] {
	switch a.Kind {
	case ActionStart:
		return State[T]{Status: StatusLoading, Data: s.Data, Token: a.Token}
	case ActionSucceed:
		if s.Status != StatusLoading || s.Token != a.Token {
			return s
		}
		return State[T]{Status: StatusSuccess, Data: a.Data, Token: a.Token}
	case ActionFail:
		if s.Status != StatusLoading || s.Token != a.Token {
			return s
		}
		var zero T
		return State[T]{Status: StatusError, Data: zero, Message: a.Message, Token: a.Token, Err: a.Err}
	case ActionReset:
		return State[T]{Status: StatusIdle}
	}
	return s
}
