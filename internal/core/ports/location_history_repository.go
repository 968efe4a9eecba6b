package ports

import (
	"context"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/driver"
)

// LocationHistoryRepository defines the append-only audit trail for driver
// telemetry. It lives outside the unit of work: history writes are not part
// of any business transaction.
type LocationHistoryRepository interface {
	// Append stores an accepted telemetry report.
	Append(ctx context.Context, entry driver.LocationHistoryEntry) error
}
