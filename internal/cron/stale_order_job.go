package cron

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sapradeep123/do-good-hub-backend/pkg/logger"
)

const staleOrderExpirationDays = 3

// StaleOrderJobParams configure the pending order expiration job.
type StaleOrderJobParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository staleOrderRepo
	Expiration int
}

type staleOrderRepo interface {
	CancelPendingOrdersBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

// NewStaleOrderJob builds the job that cancels payment orders the donor
// opened but never completed.
func NewStaleOrderJob(params StaleOrderJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("order repository required")
	}
	expiration := params.Expiration
	if expiration <= 0 {
		expiration = staleOrderExpirationDays
	}
	return &staleOrderJob{
		logg:       params.Logger,
		db:         params.DB,
		repo:       params.Repository,
		expiration: expiration,
		now:        time.Now,
	}, nil
}

type staleOrderJob struct {
	logg       *logger.Logger
	db         txRunner
	repo       staleOrderRepo
	expiration int
	now        func() time.Time
}

func (j *staleOrderJob) Name() string { return "stale-order-expiry" }

func (j *staleOrderJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.expiration) * 24 * time.Hour)
	var cancelled int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := j.repo.CancelPendingOrdersBefore(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		cancelled = rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("stale order expiry: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":          cutoff,
		"expiration_days": j.expiration,
		"rows_cancelled":  cancelled,
	})
	j.logg.Info(logCtx, "stale order expiry complete")
	return nil
}
