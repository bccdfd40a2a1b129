package fixture

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbFile := filepath.Join(t.TempDir(), "fixture.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}
	// Running it twice must be harmless.
	if err = SetupSchema(db); err != nil {
		t.Fatalf("second SetupSchema() failed: %v", err)
	}
	return db
}

func TestSQLSource_ImportAndFetch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	want := loadTestDataset(t)

	if err := ImportDataset(ctx, db, want); err != nil {
		t.Fatalf("ImportDataset() error = %v", err)
	}

	got, err := SQLSource{DB: db, Label: "test"}.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLSource_ImportReplaces(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := ImportDataset(ctx, db, loadTestDataset(t)); err != nil {
		t.Fatalf("first ImportDataset() error = %v", err)
	}
	smaller := &Dataset{Characters: []Character{{ID: "solo", Name: "Solo"}}}
	if err := ImportDataset(ctx, db, smaller); err != nil {
		t.Fatalf("second ImportDataset() error = %v", err)
	}

	got, err := SQLSource{DB: db}.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if diff := cmp.Diff(smaller, got); diff != "" {
		t.Errorf("re-import should replace the old dataset (-want +got):\n%s", diff)
	}
}

func TestSQLSource_RepeatedIDs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	want := &Dataset{
		Characters: []Character{{ID: "chad", Name: "Chad"}, {ID: "chad", Name: "Other Chad"}},
		Posts: []Post{
			{ID: "p1", Author: "chad", Text: "first", Comments: []Comment{{Author: "chad", Text: "a"}}},
			{ID: "p1", Author: "chad", Text: "second", Comments: []Comment{{Author: "chad", Text: "b"}}},
		},
	}

	if err := ImportDataset(ctx, db, want); err != nil {
		t.Fatalf("ImportDataset() with repeated ids error = %v", err)
	}
	got, err := SQLSource{DB: db}.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dataset mismatch (-want +got):\n%s", diff)
	}
}
