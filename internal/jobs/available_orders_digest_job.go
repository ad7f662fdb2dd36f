package jobs

import (
	"context"

	"swiftserve/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Broadcaster pushes a frame to every client on the global live channel.
// The websocket hub satisfies it.
type Broadcaster interface {
	Announce(message map[string]any)
}

// AvailableOrdersReader supplies the claimable order snapshot. The
// GetAvailableOrders query handler satisfies it.
type AvailableOrdersReader interface {
	Handle(ctx context.Context, query queries.GetAvailableOrdersQuery) ([]queries.GetAvailableOrdersQueryResponse, error)
}

// AvailableOrdersDigestJob periodically snapshots the claimable order pool
// and broadcasts it as an available_orders frame, so agent dashboards
// refresh without polling. The same digest is logged for operators to spot
// orders sitting Ready with no agent taking them.
type AvailableOrdersDigestJob struct {
	reader      AvailableOrdersReader
	broadcaster Broadcaster
	cron        *cron.Cron
	schedule    string
	logger      *zap.Logger
}

// NewAvailableOrdersDigestJob creates the digest job with the given cron
// schedule, e.g. "@every 1m".
func NewAvailableOrdersDigestJob(
	reader AvailableOrdersReader,
	broadcaster Broadcaster,
	schedule string,
	logger *zap.Logger,
) *AvailableOrdersDigestJob {
	return &AvailableOrdersDigestJob{
		reader:      reader,
		broadcaster: broadcaster,
		cron:        cron.New(),
		schedule:    schedule,
		logger:      logger.With(zap.String("component", "available_orders_digest_job")),
	}
}

// Start schedules the digest.
func (j *AvailableOrdersDigestJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("available orders digest job started",
		zap.String("schedule", j.schedule))
	return nil
}

// runOnce takes one snapshot. Nothing is broadcast when the snapshot cannot
// be retrieved or the pool is empty.
func (j *AvailableOrdersDigestJob) runOnce() {
	ctx := context.Background()
	query := queries.NewGetAvailableOrdersQuery()

	orders, err := j.reader.Handle(ctx, query)
	if err != nil {
		j.logger.Error("available orders digest failed", zap.Error(err))
		return
	}

	if len(orders) == 0 {
		return
	}

	j.broadcaster.Announce(digestFrame(orders))

	oldest := orders[0]
	j.logger.Info("claimable orders waiting for an agent",
		zap.Int("count", len(orders)),
		zap.String("oldest_order_id", oldest.ID.String()),
		zap.Time("oldest_created_at", oldest.CreatedAt),
	)
}

// digestFrame renders the snapshot in the shape agent dashboards consume.
// The pool arrives oldest-first and the frame preserves that order.
func digestFrame(orders []queries.GetAvailableOrdersQueryResponse) map[string]any {
	items := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		items = append(items, map[string]any{
			"order_id":           o.ID.String(),
			"restaurant_name":    o.RestaurantName,
			"restaurant_address": o.RestaurantAddress,
			"delivery_address":   o.DeliveryAddress,
			"total_cents":        o.Total.Cents(),
			"created_at":         o.CreatedAt,
		})
	}
	return map[string]any{
		"type":   "available_orders",
		"count":  len(orders),
		"orders": items,
	}
}

// Stop stops the digest job.
func (j *AvailableOrdersDigestJob) Stop() {
	j.cron.Stop()
	j.logger.Info("available orders digest job stopped")
}
