package booking

import "fmt"

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusConfirmed Status = "CONFIRMED"
	StatusDeclined  Status = "DECLINED"
	StatusCancelled Status = "CANCELLED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusPending, StatusAccepted, StatusRejected, StatusConfirmed, StatusDeclined, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

var allowedTransitions = map[Status]map[Status]bool{
	StatusOpen:      {StatusPending: true, StatusCancelled: true},
	StatusPending:   {StatusAccepted: true, StatusRejected: true, StatusConfirmed: true, StatusDeclined: true, StatusCancelled: true},
	StatusAccepted:  {StatusConfirmed: true, StatusDeclined: true, StatusCancelled: true},
	StatusRejected:  {},
	StatusConfirmed: {}, // terminal for the request; spawns a residency
	StatusDeclined:  {},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

func IsTerminal(s Status) bool {
	return len(allowedTransitions[s]) == 0
}
