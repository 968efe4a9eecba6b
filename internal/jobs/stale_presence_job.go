package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

// DefaultPresenceTTL is how long a driver may stay silent before being
// treated as gone.
const DefaultPresenceTTL = 90 * time.Second

// OfferDropper removes a driver from open delivery offers.
type OfferDropper interface {
	DropDriver(driverID kernel.UUID)
}

// StalePresenceJob sweeps drivers whose telemetry stopped arriving. A
// swept driver leaves open offers the same way a clean disconnect does.
type StalePresenceJob struct {
	presence ports.DriverPresence
	offers   OfferDropper
	ttl      time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStalePresenceJob creates the presence sweeping job.
func NewStalePresenceJob(
	presence ports.DriverPresence,
	offers OfferDropper,
	ttl time.Duration,
	logger *slog.Logger,
) *StalePresenceJob {
	if ttl <= 0 {
		ttl = DefaultPresenceTTL
	}
	return &StalePresenceJob{
		presence: presence,
		offers:   offers,
		ttl:      ttl,
		cron:     cron.New(),
		logger:   logger.With("component", "stale_presence_job"),
	}
}

// Start begins sweeping every minute.
func (j *StalePresenceJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		swept := j.presence.SweepStale(time.Now(), j.ttl)
		for _, record := range swept {
			j.offers.DropDriver(record.ID())
			j.logger.InfoContext(ctx, "Swept stale driver", "driverId", record.ID().String())
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale presence job started (running every minute)")
	return nil
}

// Stop stops the sweeping.
func (j *StalePresenceJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale presence job stopped")
}
