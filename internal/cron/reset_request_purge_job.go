package cron

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sapradeep123/do-good-hub-backend/pkg/logger"
)

const resetRequestRetentionDays = 7

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ResetRequestPurgeJobParams configure the password reset purge job.
type ResetRequestPurgeJobParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository resetRequestPurgeRepo
	Retention  int
}

type resetRequestPurgeRepo interface {
	DeleteSpentResetRequests(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

// NewResetRequestPurgeJob builds the job that drops used and expired
// password reset requests after the retention window.
func NewResetRequestPurgeJob(params ResetRequestPurgeJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("reset request repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = resetRequestRetentionDays
	}
	return &resetRequestPurgeJob{
		logg:      params.Logger,
		db:        params.DB,
		repo:      params.Repository,
		retention: retention,
		now:       time.Now,
	}, nil
}

type resetRequestPurgeJob struct {
	logg      *logger.Logger
	db        txRunner
	repo      resetRequestPurgeRepo
	retention int
	now       func() time.Time
}

func (j *resetRequestPurgeJob) Name() string { return "reset-request-purge" }

func (j *resetRequestPurgeJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	var deleted int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := j.repo.DeleteSpentResetRequests(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		deleted = rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset request purge: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	})
	j.logg.Info(logCtx, "reset request purge complete")
	return nil
}
