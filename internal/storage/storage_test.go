package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "todo.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSlotLifecycle(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "TodoApp"); err != nil || ok {
		t.Fatalf("Get on empty store = ok %v err %v", ok, err)
	}

	if err := s.Set(ctx, "TodoApp", `[{"id":1}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get(ctx, "TodoApp")
	if err != nil || !ok || v != `[{"id":1}]` {
		t.Fatalf("Get = %q %v %v", v, ok, err)
	}
	if _, ok, err := s.UpdatedAt(ctx, "TodoApp"); err != nil || !ok {
		t.Fatalf("UpdatedAt = %v %v", ok, err)
	}

	if err := s.Set(ctx, "TodoApp", "[]"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := s.Get(ctx, "TodoApp"); v != "[]" {
		t.Fatalf("after overwrite Get = %q", v)
	}

	if err := s.Remove(ctx, "TodoApp"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "TodoApp"); ok {
		t.Fatal("slot still present after Remove")
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	if err := s.Set(ctx, "a", "1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "b", "2"); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := s.Get(ctx, "b"); !ok || v != "2" {
		t.Fatalf("slot b = %q %v", v, ok)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.db")
	ctx := context.Background()
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if v, ok, _ := s.Get(ctx, "k"); !ok || v != "v" {
		t.Fatalf("after reopen = %q %v", v, ok)
	}
}

func TestSqliteDSN(t *testing.T) {
	if got := sqliteDSN("file:memdb?mode=memory"); got != "file:memdb?mode=memory" {
		t.Fatalf("file: prefix not preserved: %q", got)
	}
	got := sqliteDSN("/tmp/x.db")
	if !strings.HasPrefix(got, "file:///tmp/x.db?") || !strings.Contains(got, "mode=rwc") {
		t.Fatalf("unexpected dsn %q", got)
	}
}

func TestSchemaCreatesAllColumns(t *testing.T) {
	s := openTemp(t)

	rows, err := s.db.Query(`SELECT name FROM pragma_table_info('slots');`)
	if err != nil {
		t.Fatalf("table_info: %v", err)
	}
	defer rows.Close()
	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatal(err)
		}
		cols = append(cols, name)
	}
	if got := strings.Join(cols, ","); got != "key,value,updated_at" {
		t.Fatalf("columns = %s", got)
	}
}
