package ports

import (
	"context"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/pipeline"
)

// TaskRepository defines the persistence contract for order processing
// tasks. Tasks are the durable outbox rows that drive the post-creation
// workflow.
type TaskRepository interface {
	// Add persists a new task. Alongside the order in the same
	// transaction when created through the unit of work.
	Add(ctx context.Context, aggregate *pipeline.Task) error

	// Update persists changes to an existing task.
	Update(ctx context.Context, aggregate *pipeline.Task) error

	// Get retrieves a task by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pipeline.Task, error)

	// GetPending retrieves up to limit pending tasks, oldest first.
	GetPending(ctx context.Context, limit int) ([]*pipeline.Task, error)
}
