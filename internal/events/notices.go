package events

import (
	"time"
)

// NoticeType enumerates supported notice identifiers.
type NoticeType string

const (
	// NoticeLoadFailed reports a list fetch that failed; the prior page is
	// still on screen.
	NoticeLoadFailed NoticeType = "load_failed"
	// NoticeToggleFailed reports an optimistic activity flip the server
	// rejected; the next successful load is the reconciliation point.
	NoticeToggleFailed NoticeType = "toggle_failed"
)

// Notice is surfaced to exactly one session's user.
type Notice struct {
	ID        string     `json:"id"`
	Type      NoticeType `json:"type"`
	SessionID string     `json:"-"`
	Resource  string     `json:"resource"`
	ItemKey   string     `json:"item_key,omitempty"`
	OpID      string     `json:"op_id,omitempty"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
}
