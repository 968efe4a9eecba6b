package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/application/usecases/commands"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/pipeline"
)

// pipelineBatchSize bounds how many pending tasks one tick picks up.
const pipelineBatchSize = 10

// OrderPipelineJob drives the durable post-creation workflow. Every second
// it claims a batch of pending tasks from the outbox and runs the pipeline
// handler for each; tasks a crashed run left behind get picked up the same
// way.
type OrderPipelineJob struct {
	uowFactory commands.ProcessOrderUoWFactory
	handler    commands.ProcessOrderCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOrderPipelineJob creates the outbox polling job.
func NewOrderPipelineJob(
	uowFactory commands.ProcessOrderUoWFactory,
	handler commands.ProcessOrderCommandHandler,
	logger *slog.Logger,
) *OrderPipelineJob {
	return &OrderPipelineJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "order_pipeline_job"),
	}
}

// Start begins polling the outbox every second.
func (j *OrderPipelineJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", j.tick)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order pipeline job started (running every second)")
	return nil
}

// Stop stops the outbox polling.
func (j *OrderPipelineJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order pipeline job stopped")
}

func (j *OrderPipelineJob) tick() {
	ctx := context.Background()

	tasks, err := j.claimBatch(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to claim pending pipeline tasks", "error", err)
		return
	}

	for _, task := range tasks {
		cmd, err := commands.NewProcessOrderCommand(task.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build pipeline command",
				"taskId", task.ID().String(), "error", err)
			continue
		}

		// The handler owns the task's outcome: it records failures on the
		// task row itself, so an error here is only worth a log line.
		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Pipeline task failed",
				"taskId", task.ID().String(), "orderId", task.OrderID().String(), "error", err)
		}
	}
}

// claimBatch leases a batch of pending tasks in a short transaction. Each
// task's claim is written before the row locks are released, so later ticks
// and other pollers skip these tasks until the lease expires or the handler
// settles them.
func (j *OrderPipelineJob) claimBatch(ctx context.Context) ([]*pipeline.Task, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.TaskRepository().GetPending(ctx, pipelineBatchSize)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, task := range pending {
		if err := task.Claim(now); err != nil {
			return nil, err
		}
		if err := uow.TaskRepository().Update(ctx, task); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return pending, nil
}
