package index

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mdillondc/todo-txt-tui/internal/logging"
	"github.com/mdillondc/todo-txt-tui/internal/store"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "index.db"), logging.Discard())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error: %v", err)
		}
	})
	return db
}

func TestOpenIdempotentSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	db, err := Open(path, logging.Discard())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	// Reopening an existing database must not fail on the schema.
	db, err = Open(path, logging.Discard())
	if err != nil {
		t.Fatalf("second Open() error: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
}

func TestSearchOrdersByDueThenText(t *testing.T) {
	db := newTestDB(t)

	lines := []string{
		"zeta chore",
		"alpha chore due:2024-05-01",
		"beta chore due:2024-04-01",
	}
	if err := db.Rebuild(SourcePrimary, lines); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}

	got, err := db.Search("chore")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	want := []string{
		"beta chore due:2024-04-01",
		"alpha chore due:2024-05-01",
		"zeta chore",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search() = %v, want %v", got, want)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	if err := db.Rebuild(SourcePrimary, []string{"Call MOM @phone"}); err != nil {
		t.Fatal(err)
	}
	got, err := db.Search("call mom")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Search() = %v, want one match", got)
	}
}

func TestSearchEscapesWildcards(t *testing.T) {
	db := newTestDB(t)
	if err := db.Rebuild(SourcePrimary, []string{
		"literal 100% done",
		"one hundred percent done",
	}); err != nil {
		t.Fatal(err)
	}
	got, err := db.Search("100%")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"literal 100% done"}) {
		t.Errorf("Search(100%%) = %v, want the literal match only", got)
	}
}

func TestSearchSpansBothSources(t *testing.T) {
	db := newTestDB(t)

	st := store.New(filepath.Join(t.TempDir(), "todo.txt"))
	if err := st.Write([]string{"Call mom due:2024-04-01"}); err != nil {
		t.Fatal(err)
	}
	if err := st.AppendArchive([]string{"x 2024-03-01 2024-03-05 Call mom"}); err != nil {
		t.Fatal(err)
	}

	if err := db.SyncStore(st); err != nil {
		t.Fatalf("SyncStore() error: %v", err)
	}

	got, err := db.Search("call")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	want := []string{
		"Call mom due:2024-04-01",
		"x 2024-03-01 2024-03-05 Call mom",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search() = %v, want primary rows before archive rows: %v", got, want)
	}
}

func TestRebuildReplacesStaleRows(t *testing.T) {
	db := newTestDB(t)

	if err := db.Rebuild(SourcePrimary, []string{"old task"}); err != nil {
		t.Fatal(err)
	}
	if err := db.Rebuild(SourcePrimary, []string{"new task"}); err != nil {
		t.Fatal(err)
	}

	if got, err := db.Search("old"); err != nil || got != nil {
		t.Errorf("Search(old) = %v, %v; want no rows after rebuild", got, err)
	}
	got, err := db.Search("new")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"new task"}) {
		t.Errorf("Search(new) = %v", got)
	}
}
