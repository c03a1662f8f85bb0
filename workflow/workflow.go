package workflow

import (
	"fmt"
	"strings"
)

// Status is the lifecycle stage of a QHSE form or plan item.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusSubmitted Status = "Submitted"
	StatusApproved  Status = "Approved"
)

// next maps each status to the only status it may move to.
var next = map[Status]Status{
	StatusDraft:     StatusSubmitted,
	StatusSubmitted: StatusApproved,
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved:
		return true
	}
	return false
}

// CanTransition reports whether from may move directly to to.
// Transitions never skip a stage and never move backward.
func CanTransition(from, to Status) bool {
	return next[from] == to
}

// Guard returns nil when the document is currently in the required status,
// otherwise an error naming the violated gate. noun names the document kind
// in the message ("forms", "records", "plan items").
func Guard(current, required Status, noun, action string) error {
	if current == required {
		return nil
	}
	return fmt.Errorf("Only %s %s can be %s", strings.ToLower(string(required)), noun, action)
}
