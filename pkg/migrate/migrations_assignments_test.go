package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssignmentsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_package_assignments.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no package assignments migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS package_assignments",
		"UNIQUE (package_id, ngo_id)",
		"CREATE TABLE IF NOT EXISTS vendor_package_assignments",
		"UNIQUE (vendor_id, package_assignment_id)",
		"REFERENCES package_assignments(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS vendor_package_assignments",
	}
	for _, check := range checks {
		if !strings.Contains(content, check) {
			t.Fatalf("migration missing %q", check)
		}
	}
}

func TestTransactionsMigrationConstrainsStatus(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_payment_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no payment tables migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS transactions",
		"'assigned_to_vendor'",
		"tracking_number TEXT",
		"CREATE TABLE IF NOT EXISTS donations",
		"package_title TEXT NOT NULL",
		"CREATE TABLE IF NOT EXISTS orders",
		"gateway_order_id TEXT NOT NULL UNIQUE",
	}
	for _, check := range checks {
		if !strings.Contains(content, check) {
			t.Fatalf("migration missing %q", check)
		}
	}
}
