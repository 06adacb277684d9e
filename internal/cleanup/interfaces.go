package cleanup

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines the bulk-delete and inspection operations used by the
// admin reset flow.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	DeleteAllRows(ctx context.Context, table string) (int64, error)
	ClearPackageNGORefs(ctx context.Context) error
	DeleteNonAdminProfiles(ctx context.Context, keepEmails []string) (int64, error)
	CountRows(ctx context.Context, table string) (int64, error)
	ResetSequence(ctx context.Context, sequence string) error
}
