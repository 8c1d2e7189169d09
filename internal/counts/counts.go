// Package counts builds and combines the comment count structures embedded in
// stories. Every merge is a coordinate-wise sum over the union of keys, so it is
// associative and commutative and never mutates its inputs.
package counts

import (
	"fmt"

	"story_aggregator/internal/domain"
)

func EmptyStatus() domain.StatusCounts {
	return domain.StatusCounts{}
}

func EmptyModerationQueue() domain.ModerationQueueCounts {
	return domain.ModerationQueueCounts{}
}

// EmptyRelated returns zeroed counts with a non-nil action map, the value a
// freshly created story starts with.
func EmptyRelated() domain.CommentCounts {
	return domain.CommentCounts{
		Status:          EmptyStatus(),
		ModerationQueue: EmptyModerationQueue(),
		Action:          domain.ActionCounts{},
	}
}

func MergeStatus(counts ...domain.StatusCounts) domain.StatusCounts {
	merged := EmptyStatus()
	for _, c := range counts {
		merged.Approved += c.Approved
		merged.None += c.None
		merged.Premod += c.Premod
		merged.Rejected += c.Rejected
		merged.SystemWithheld += c.SystemWithheld
	}
	return merged
}

func MergeModerationQueue(counts ...domain.ModerationQueueCounts) domain.ModerationQueueCounts {
	merged := EmptyModerationQueue()
	for _, c := range counts {
		merged.Total += c.Total
		merged.Queues.Unmoderated += c.Queues.Unmoderated
		merged.Queues.Reported += c.Queues.Reported
		merged.Queues.Pending += c.Queues.Pending
	}
	return merged
}

func MergeActions(counts ...domain.ActionCounts) domain.ActionCounts {
	merged := domain.ActionCounts{}
	for _, c := range counts {
		for key, n := range c {
			merged[key] += n
		}
	}
	return merged
}

// Merge combines full count structures.
func Merge(counts ...domain.CommentCounts) domain.CommentCounts {
	status := make([]domain.StatusCounts, len(counts))
	queues := make([]domain.ModerationQueueCounts, len(counts))
	actions := make([]domain.ActionCounts, len(counts))
	for i, c := range counts {
		status[i] = c.Status
		queues[i] = c.ModerationQueue
		actions[i] = c.Action
	}

	return domain.CommentCounts{
		Status:          MergeStatus(status...),
		ModerationQueue: MergeModerationQueue(queues...),
		Action:          MergeActions(actions...),
	}
}

// TotalComments gates destructive operations: a story with any counted
// comment is considered to have moderation history.
func TotalComments(status domain.StatusCounts) int64 {
	return status.Approved + status.None + status.Premod + status.Rejected + status.SystemWithheld
}

// Validate rejects counts with a negative field or a moderation queue total
// smaller than the sum of its queues.
func Validate(c domain.CommentCounts) error {
	fields := map[string]int64{
		"status.APPROVED":             c.Status.Approved,
		"status.NONE":                 c.Status.None,
		"status.PREMOD":               c.Status.Premod,
		"status.REJECTED":             c.Status.Rejected,
		"status.SYSTEM_WITHHELD":      c.Status.SystemWithheld,
		"moderationQueue.total":       c.ModerationQueue.Total,
		"moderationQueue.unmoderated": c.ModerationQueue.Queues.Unmoderated,
		"moderationQueue.reported":    c.ModerationQueue.Queues.Reported,
		"moderationQueue.pending":     c.ModerationQueue.Queues.Pending,
	}
	for key, n := range c.Action {
		fields["action."+key] = n
	}

	for name, n := range fields {
		if n < 0 {
			return fmt.Errorf("%w: %s=%d", domain.ErrNegativeCounts, name, n)
		}
	}

	q := c.ModerationQueue
	if sum := q.Queues.Unmoderated + q.Queues.Reported + q.Queues.Pending; q.Total < sum {
		return fmt.Errorf("%w: total=%d queues=%d", domain.ErrQueueTotalTooLow, q.Total, sum)
	}
	return nil
}
