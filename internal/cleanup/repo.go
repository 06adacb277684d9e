package cleanup

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cleanup repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// DeleteAllRows empties the named table. Table names only ever come from
// the ordered constant list in service.go, never from request input.
func (r *repository) DeleteAllRows(ctx context.Context, table string) (int64, error) {
	res := r.db.WithContext(ctx).Exec(fmt.Sprintf("DELETE FROM %s", table))
	return res.RowsAffected, res.Error
}

// ClearPackageNGORefs nulls the default-suggestion FK before the ngos table
// is emptied.
func (r *repository) ClearPackageNGORefs(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Exec("UPDATE packages SET ngo_id = NULL WHERE ngo_id IS NOT NULL").Error
}

func (r *repository) DeleteNonAdminProfiles(ctx context.Context, keepEmails []string) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		"DELETE FROM profiles WHERE role != 'admin' AND email NOT IN ?", keepEmails)
	return res.RowsAffected, res.Error
}

func (r *repository) CountRows(ctx context.Context, table string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Raw(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) ResetSequence(ctx context.Context, sequence string) error {
	return r.db.WithContext(ctx).
		Exec(fmt.Sprintf("ALTER SEQUENCE IF EXISTS %s RESTART WITH 1", sequence)).Error
}
