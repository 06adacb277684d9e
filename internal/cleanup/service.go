package cleanup

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/sapradeep123/do-good-hub-backend/pkg/logger"
	"github.com/sapradeep123/do-good-hub-backend/pkg/metrics"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const taskClearAllData = "clear-all-data"

// tableDeleteOrder is hand-ordered to satisfy foreign keys without
// database-level CASCADE. Profiles go last, handled separately with the
// admin allow-list.
var tableDeleteOrder = []string{
	"transactions",
	"donations",
	"orders",
	"vendor_package_assignments",
	"package_assignments",
	"packages",
	"vendors",
	"ngos",
	"password_reset_requests",
	"admin_audit_log",
	"tickets",
	"page_content",
}

// statusTables drives the data-status report; the superset of the delete
// order plus profiles.
var statusTables = []string{
	"profiles", "ngos", "vendors", "packages", "package_assignments",
	"vendor_package_assignments", "orders", "donations", "transactions",
	"tickets", "page_content", "password_reset_requests", "admin_audit_log",
}

// resettableSequences lists sequences restarted after a full wipe. Only the
// vendor link table carries a serial key; the rest are legacy names kept
// for databases migrated from older schemas.
var resettableSequences = []string{
	"vendor_package_assignments_id_seq",
	"profiles_id_seq",
	"ngos_id_seq",
	"vendors_id_seq",
	"packages_id_seq",
}

// defaultAdminAllowlist preserves the seeded admin accounts during a wipe.
var defaultAdminAllowlist = []string{
	"admin@example.com",
	"admin@test.com",
	"admin@dogoodhub.com",
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ClearResult reports what a full wipe removed.
type ClearResult struct {
	DeletedCounts map[string]int64 `json:"deleted_counts"`
	TotalDeleted  int64            `json:"total_deleted"`
	Preserved     string           `json:"preserved"`
}

// DataStatus reports current row counts per table.
type DataStatus struct {
	Counts       map[string]int64 `json:"counts"`
	TotalRecords int64            `json:"total_records"`
}

// Service defines the admin bulk-reset operations.
type Service interface {
	ClearAllData(ctx context.Context) (*ClearResult, error)
	DataStatus(ctx context.Context) (*DataStatus, error)
}

// Params collects the service dependencies.
type Params struct {
	Logger     *logger.Logger
	Repository Repository
	DB         txRunner
	Metrics    *metrics.TaskMetrics
	KeepEmails []string
}

type service struct {
	logg       *logger.Logger
	repo       Repository
	tx         txRunner
	metrics    *metrics.TaskMetrics
	keepEmails []string
	now        func() time.Time
}

// NewService builds a cleanup service with the required dependencies.
func NewService(params Params) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("cleanup repository required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	keep := params.KeepEmails
	if len(keep) == 0 {
		keep = defaultAdminAllowlist
	}
	return &service{
		logg:       params.Logger,
		repo:       params.Repository,
		tx:         params.DB,
		metrics:    params.Metrics,
		keepEmails: keep,
		now:        time.Now,
	}, nil
}

// ClearAllData wipes every domain table in one transaction. Any table
// failure rolls back the whole wipe; partial resets never commit.
func (s *service) ClearAllData(ctx context.Context) (*ClearResult, error) {
	start := s.now()
	counts := make(map[string]int64, len(tableDeleteOrder)+1)
	var total int64

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, table := range tableDeleteOrder {
			if table == "packages" {
				if err := repo.ClearPackageNGORefs(ctx); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear package ngo refs")
				}
			}
			deleted, err := repo.DeleteAllRows(ctx, table)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("clear %s", table))
			}
			counts[table] = deleted
			total += deleted
		}
		deleted, err := repo.DeleteNonAdminProfiles(ctx, s.keepEmails)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear non-admin profiles")
		}
		counts["profiles"] = deleted
		total += deleted
		return nil
	})

	elapsed := s.now().Sub(start)
	s.metrics.ObserveDuration(taskClearAllData, elapsed)
	if err != nil {
		s.metrics.IncFailure(taskClearAllData)
		return nil, err
	}
	s.metrics.IncSuccess(taskClearAllData)

	// Sequence resets happen outside the wipe transaction and are best
	// effort; a missing sequence is not a failed cleanup.
	var resetErrs error
	for _, sequence := range resettableSequences {
		if err := s.repo.ResetSequence(ctx, sequence); err != nil {
			resetErrs = multierr.Append(resetErrs, err)
		}
	}
	if resetErrs != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"error": resetErrs.Error()})
		s.logg.Warn(logCtx, "sequence reset incomplete after data wipe")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"rows_deleted": total,
		"elapsed_ms":   elapsed.Milliseconds(),
	})
	s.logg.Info(logCtx, "all domain data cleared")

	return &ClearResult{
		DeletedCounts: counts,
		TotalDeleted:  total,
		Preserved:     "admin profiles and system tables",
	}, nil
}

func (s *service) DataStatus(ctx context.Context) (*DataStatus, error) {
	counts := make(map[string]int64, len(statusTables))
	var total int64
	for _, table := range statusTables {
		count, err := s.repo.CountRows(ctx, table)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("count %s", table))
		}
		counts[table] = count
		total += count
	}
	return &DataStatus{Counts: counts, TotalRecords: total}, nil
}
