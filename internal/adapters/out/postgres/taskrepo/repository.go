// Package taskrepo persists workflow tasks. The tasks table doubles as the
// outbox the pipeline job polls, so pending reads lock rows with SKIP
// LOCKED to keep concurrent pollers off each other's batches.
package taskrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/pipeline"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// TaskDTO represents the database structure for persisting workflow tasks.
type TaskDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    int       `gorm:"index"`
	Attempts  int
	LastError string
	CreatedAt time.Time
	ClaimedAt *time.Time
}

// TableName overrides GORM's default naming to use "tasks".
func (TaskDTO) TableName() string {
	return "tasks"
}

func fromDomain(task *pipeline.Task) TaskDTO {
	return TaskDTO{
		ID:        task.ID().Bytes(),
		OrderID:   task.OrderID().Bytes(),
		Status:    int(task.Status()),
		Attempts:  task.Attempts(),
		LastError: task.LastError(),
		CreatedAt: task.CreatedAt(),
		ClaimedAt: task.ClaimedAt(),
	}
}

func toDomain(dto TaskDTO) (*pipeline.Task, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return pipeline.RestoreTask(
		id, orderID, pipeline.TaskStatus(dto.Status),
		dto.Attempts, dto.LastError, dto.CreatedAt, dto.ClaimedAt)
}

// GormTaskRepository implements TaskRepository using GORM.
type GormTaskRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTaskRepository creates a new GORM task repository.
func NewGormTaskRepository(db *gorm.DB, tracker aggregateTracker) *GormTaskRepository {
	return &GormTaskRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new task to the database.
func (r *GormTaskRepository) Add(ctx context.Context, task *pipeline.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

// Update saves an existing task to the database.
func (r *GormTaskRepository) Update(ctx context.Context, task *pipeline.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	dto := fromDomain(task)
	result := r.db.WithContext(ctx).Model(&TaskDTO{}).
		Where("id = ?", dto.ID).
		Select("Status", "Attempts", "LastError", "ClaimedAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("taskId", task.ID().String())
	}

	r.tracker.TrackAggregate(task.ID(), task)
	return nil
}

// Get retrieves a task by ID.
func (r *GormTaskRepository) Get(ctx context.Context, id kernel.UUID) (*pipeline.Task, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TaskDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("taskId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPending retrieves up to limit pending tasks, oldest first. Tasks
// holding a live claim lease are skipped so an in-flight run is not
// handed out again; an expired lease makes the task eligible once more.
func (r *GormTaskRepository) GetPending(ctx context.Context, limit int) ([]*pipeline.Task, error) {
	var dtos []TaskDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", int(pipeline.TaskStatusPending)).
		Where("claimed_at IS NULL OR claimed_at < ?", time.Now().UTC().Add(-pipeline.ClaimLease)).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]*pipeline.Task, 0, len(dtos))
	for _, dto := range dtos {
		task, taskErr := toDomain(dto)
		if taskErr != nil {
			return nil, taskErr
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}
