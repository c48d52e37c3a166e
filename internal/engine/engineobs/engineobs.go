package engineobs

import (
	"context"
	"time"

	"github.com/speq1/speq-backend/internal/interfaces"
	"github.com/speq1/speq-backend/internal/logger"
	"github.com/speq1/speq-backend/internal/trace"
	"github.com/speq1/speq-backend/internal/types"
)

type observableAggregator struct {
	agg interfaces.Aggregator
}

var _ interfaces.Aggregator = (*observableAggregator)(nil)

func Wrap(agg interfaces.Aggregator) interfaces.Aggregator {
	return &observableAggregator{
		agg: agg,
	}
}

func (oa *observableAggregator) Run(ctx context.Context) (*types.AggregateResponse, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Run")
	defer span.End()

	start := time.Now()

	logger.Info(ctx, "Starting aggregation run")

	result, err := oa.agg.Run(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Aggregation run failed", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.Info(ctx, "Aggregation run completed",
		"users", len(result.Users),
		"groups", len(result.Groups),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}
