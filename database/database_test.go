package database

import (
	"path/filepath"
	"testing"

	"github.com/mbolis/platform-pulse/config"
)

func TestOpenMigrates(t *testing.T) {
	cfg := config.Config{DBUrl: filepath.Join(t.TempDir(), "test.sqlite")}

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"surveys", "survey_responses", "social_media_selections"} {
		var name string
		err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %q to exist: %v", table, err)
		}
	}

	var fk int
	err = db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	if err != nil {
		t.Fatalf("Failed to read foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Error("Expected foreign key enforcement to be on")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := config.Config{DBUrl: filepath.Join(t.TempDir(), "test.sqlite")}

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	db.Close()

	// second open finds the schema already migrated
	db, err = Open(cfg)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	db.Close()
}

func TestCascadeDeletes(t *testing.T) {
	cfg := config.Config{DBUrl: filepath.Join(t.TempDir(), "test.sqlite")}

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	mustExec := func(query string, args ...any) {
		t.Helper()
		if _, err := db.Exec(query, args...); err != nil {
			t.Fatalf("Failed to execute %q: %v", query, err)
		}
	}

	now := "2026-01-01T00:00:00.000000Z"
	mustExec(`INSERT INTO surveys (id, title, created_at, updated_at) VALUES ('s1', 'T', ?, ?)`, now, now)
	mustExec(`INSERT INTO survey_responses (id, survey_id, session_id, created_at) VALUES ('r1', 's1', 'sess', ?)`, now)
	mustExec(`INSERT INTO social_media_selections (id, response_id, platform_name, created_at) VALUES ('l1', 'r1', 'A', ?)`, now)
	mustExec(`INSERT INTO social_media_selections (id, response_id, platform_name, created_at) VALUES ('l2', 'r1', 'B', ?)`, now)

	t.Run("selection needs an existing response", func(t *testing.T) {
		_, err := db.Exec(`
			INSERT INTO social_media_selections (id, response_id, platform_name, created_at)
			VALUES ('lx', 'no-such-response', 'A', ?)`, now)
		if err == nil {
			t.Error("Expected foreign key violation")
		}
	})

	t.Run("deleting the survey clears everything", func(t *testing.T) {
		mustExec(`DELETE FROM surveys WHERE id = 's1'`)

		var responses, selections int
		if err := db.QueryRow(`SELECT COUNT(*) FROM survey_responses`).Scan(&responses); err != nil {
			t.Fatalf("Failed to count responses: %v", err)
		}
		if err := db.QueryRow(`SELECT COUNT(*) FROM social_media_selections`).Scan(&selections); err != nil {
			t.Fatalf("Failed to count selections: %v", err)
		}
		if responses != 0 || selections != 0 {
			t.Errorf("Expected cascade to remove all rows, got %d responses, %d selections", responses, selections)
		}
	})
}
