package domain

import (
	"database/sql/driver"
	"encoding/json"
)

type CommentStatus string

const (
	CommentStatusApproved       CommentStatus = "APPROVED"
	CommentStatusNone           CommentStatus = "NONE"
	CommentStatusPremod         CommentStatus = "PREMOD"
	CommentStatusRejected       CommentStatus = "REJECTED"
	CommentStatusSystemWithheld CommentStatus = "SYSTEM_WITHHELD"
)

// StatusCounts counts comments per status. The set of statuses is closed, so
// every key is always present.
type StatusCounts struct {
	Approved       int64 `json:"APPROVED"`
	None           int64 `json:"NONE"`
	Premod         int64 `json:"PREMOD"`
	Rejected       int64 `json:"REJECTED"`
	SystemWithheld int64 `json:"SYSTEM_WITHHELD"`
}

type ModerationQueues struct {
	Unmoderated int64 `json:"unmoderated"`
	Reported    int64 `json:"reported"`
	Pending     int64 `json:"pending"`
}

// ModerationQueueCounts tracks the unresolved moderation workload. Total must
// equal or exceed the sum of the queues.
type ModerationQueueCounts struct {
	Total  int64            `json:"total"`
	Queues ModerationQueues `json:"queues"`
}

// ActionCounts is sparse: a missing key means zero.
type ActionCounts map[string]int64

type CommentCounts struct {
	Status          StatusCounts          `json:"status"`
	ModerationQueue ModerationQueueCounts `json:"moderationQueue"`
	Action          ActionCounts          `json:"action"`
}

func (c CommentCounts) Value() (driver.Value, error) {
	if c.Action == nil {
		c.Action = ActionCounts{}
	}
	return json.Marshal(c)
}

func (c *CommentCounts) Scan(src any) error {
	if err := scanJSON(src, c); err != nil {
		return err
	}
	if c.Action == nil {
		c.Action = ActionCounts{}
	}
	return nil
}
