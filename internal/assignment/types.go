package assignment

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of an assignment.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "inprogress"
	StatusCompleted  Status = "completed"
)

var statusRank = map[Status]int{
	StatusNew:        0,
	StatusInProgress: 1,
	StatusCompleted:  2,
}

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusRank[st]; !ok {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// CanMoveTo reports whether s may change to next. Status only moves
// forward and completed is terminal.
func (s Status) CanMoveTo(next Status) bool {
	from, ok1 := statusRank[s]
	to, ok2 := statusRank[next]
	return ok1 && ok2 && to > from
}

// Assignment is a homework quest created by a parent.
type Assignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      Status    `json:"status"`
	Stars       int       `json:"stars"`
}

// Document is the persisted form of the whole collection.
type Document struct {
	Assignments []Assignment `json:"assignments"`
}

func (d *Document) index(id string) int {
	for i := range d.Assignments {
		if d.Assignments[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateInput is what a parent supplies for a new assignment.
type CreateInput struct {
	Title   string
	Content string
	Stars   int
}
