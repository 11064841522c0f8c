package test_utils

import (
	"database/sql"
	"testing"
)

// SeedLab inserts a lab and returns its id.
func SeedLab(t *testing.T, db *sql.DB, name string) int {
	t.Helper()

	res, err := db.Exec(`INSERT INTO lab (name) VALUES (?)`, name)
	if err != nil {
		t.Fatalf("Failed to seed lab: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read lab id: %v", err)
	}
	return int(id)
}

// SeedMember inserts a lab member and returns its id.
func SeedMember(t *testing.T, db *sql.DB, labId int, uid, displayName string) int {
	t.Helper()

	res, err := db.Exec(`INSERT INTO member (uid, display_name, lab_id) VALUES (?, ?, ?)`, uid, displayName, labId)
	if err != nil {
		t.Fatalf("Failed to seed member: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read member id: %v", err)
	}
	return int(id)
}

// SeedEventType inserts an event type and returns its id.
func SeedEventType(t *testing.T, db *sql.DB, labId int, name, color string) int {
	t.Helper()

	res, err := db.Exec(`INSERT INTO event_type (lab_id, name, color) VALUES (?, ?, ?)`, labId, name, color)
	if err != nil {
		t.Fatalf("Failed to seed event type: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read event type id: %v", err)
	}
	return int(id)
}

// SeedInstrument inserts an instrument and returns its id.
func SeedInstrument(t *testing.T, db *sql.DB, labId int, name string) int {
	t.Helper()

	res, err := db.Exec(`INSERT INTO instrument (lab_id, name) VALUES (?, ?)`, labId, name)
	if err != nil {
		t.Fatalf("Failed to seed instrument: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read instrument id: %v", err)
	}
	return int(id)
}
