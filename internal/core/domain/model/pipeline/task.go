// Package pipeline contains the durable processing task: the outbox row
// written in the order creation transaction that drives the post-creation
// workflow. Tasks survive restarts; a background job claims pending tasks
// and runs the workflow to completion or exhaustion.
package pipeline

import (
	"errors"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// TaskStatus is a processing task's lifecycle state.
type TaskStatus int

const (
	TaskStatusUnknown TaskStatus = iota
	TaskStatusPending
	TaskStatusCompleted
	TaskStatusFailed
)

var taskStatusNames = map[TaskStatus]string{
	TaskStatusPending:   "pending",
	TaskStatusCompleted: "completed",
	TaskStatusFailed:    "failed",
}

// String implements fmt.Stringer.
func (s TaskStatus) String() string {
	if name, ok := taskStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ErrTaskIsNotConstructed is returned when a Task instance was not created
// through NewTask or RestoreTask.
var ErrTaskIsNotConstructed = errors.New("Task must be created via NewTask or RestoreTask")

// DefaultMaxAttempts bounds how often a task is retried before it is
// parked as failed.
const DefaultMaxAttempts = 5

// ClaimLease is how long a claimed task stays invisible to pending reads.
// It must outlast a full workflow run, confirmation wait and offer rounds
// included, so a slow run is not handed to a second worker mid-flight.
const ClaimLease = 5 * time.Minute

// Task is one order's durable processing ticket.
type Task struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    TaskStatus
	attempts  int
	lastError string
	createdAt time.Time
	claimedAt *time.Time

	isConstructed bool
}

// NewTask creates a pending task for a freshly created order.
func NewTask(id, orderID kernel.UUID) (*Task, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &Task{
		id:            id,
		orderID:       orderID,
		status:        TaskStatusPending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreTask reconstructs a task from persistence.
func RestoreTask(
	id, orderID kernel.UUID,
	status TaskStatus,
	attempts int,
	lastError string,
	createdAt time.Time,
	claimedAt *time.Time,
) (*Task, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &Task{
		id:            id,
		orderID:       orderID,
		status:        status,
		attempts:      attempts,
		lastError:     lastError,
		createdAt:     createdAt,
		claimedAt:     claimedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Task was created through a constructor.
func (t *Task) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTaskIsNotConstructed
	}
	return nil
}

// ID returns the task's unique identifier.
func (t *Task) ID() kernel.UUID { return t.id }

// OrderID returns the order this task processes.
func (t *Task) OrderID() kernel.UUID { return t.orderID }

// Status returns the task's lifecycle state.
func (t *Task) Status() TaskStatus { return t.status }

// Attempts returns how many runs have failed so far.
func (t *Task) Attempts() int { return t.attempts }

// LastError returns the failure message of the most recent attempt.
func (t *Task) LastError() string { return t.lastError }

// CreatedAt returns when the task was enqueued.
func (t *Task) CreatedAt() time.Time { return t.createdAt }

// ClaimedAt returns when the current lease was taken, or nil when the task
// is unclaimed.
func (t *Task) ClaimedAt() *time.Time { return t.claimedAt }

// IsPending reports whether the task still wants a run.
func (t *Task) IsPending() bool { return t.status == TaskStatusPending }

// Claim leases the task to one worker. Pending reads skip claimed tasks
// until the lease expires, so a run that spans several ticks is not
// started a second time.
func (t *Task) Claim(now time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}

	claimed := now.UTC()
	t.claimedAt = &claimed
	return nil
}

// MarkCompleted finishes the task after a successful run.
func (t *Task) MarkCompleted() error {
	if err := t.Validate(); err != nil {
		return err
	}

	t.status = TaskStatusCompleted
	t.claimedAt = nil
	return nil
}

// RecordFailure counts a failed run. The task stays pending until
// maxAttempts runs have failed, then parks as failed.
func (t *Task) RecordFailure(cause error, maxAttempts int) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	t.attempts++
	if cause != nil {
		t.lastError = cause.Error()
	}
	// releasing the lease lets the next poll retry right away
	t.claimedAt = nil
	if t.attempts >= maxAttempts {
		t.status = TaskStatusFailed
	}
	return nil
}
