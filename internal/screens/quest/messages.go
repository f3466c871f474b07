package quest

import (
	"time"

	"github.com/abhisek/homeworkpal/internal/play"
)

// startedMsg is sent when the session has produced its first turn.
type startedMsg struct {
	Driver *play.Driver
	Reply  play.Reply
	Err    error
}

// replyMsg is sent when the tutor has answered a submission.
type replyMsg struct {
	Reply play.Reply
	Err   error
}

// spinnerTickMsg animates the thinking indicator.
type spinnerTickMsg time.Time
