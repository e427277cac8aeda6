// Package action holds the outcome type returned by editing operations.
package action

// Status classifies an operation outcome
type Status int

const (
	// Success means the operation changed something
	Success Status = iota
	// Failure means there was nothing to do
	Failure
	// Canceled means the operation was aborted before it changed anything
	Canceled
	// NoSelection means the operation needs a selection and there was none
	NoSelection
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Canceled:
		return "canceled"
	case NoSelection:
		return "no selection"
	default:
		return "unknown"
	}
}

// Result reports whether an operation did anything and a message for the user
type Result struct {
	Status  Status
	Message string
}

// NewSuccess creates a successful result
func NewSuccess(message string) Result {
	return Result{Status: Success, Message: message}
}

// NewFailure creates a "nothing to do" result
func NewFailure(message string) Result {
	return Result{Status: Failure, Message: message}
}

// NoSelectionResult is returned when an operation has no elements to work on
var NoSelectionResult = Result{Status: NoSelection, Message: "Nothing Selected"}

// Ok reports whether the operation succeeded
func (r Result) Ok() bool {
	return r.Status == Success
}

func (r Result) String() string {
	if r.Message == "" {
		return r.Status.String()
	}
	return r.Status.String() + ": " + r.Message
}
