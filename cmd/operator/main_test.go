package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDisplayValueMasksSecrets(t *testing.T) {
	if got := displayValue("GOOGLE_API_KEY", "AIzaSyExampleKey1234"); got != "AIza****1234" {
		t.Fatalf("unexpected masked key: %s", got)
	}
	if got := displayValue("DATABASE_URL", "postgres://maitri:secret@db:5432/maitri"); got != "postgres://****@db:5432/maitri" {
		t.Fatalf("unexpected masked url: %s", got)
	}
	if got := displayValue("BACKEND", "gemini"); got != "gemini" {
		t.Fatalf("unexpected plain value: %s", got)
	}
}

func TestFindMigrationFilesSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600); err != nil {
			t.Fatalf("write error: %v", err)
		}
	}

	files, err := findMigrationFiles(dir, "")
	if err != nil {
		t.Fatalf("findMigrationFiles error: %v", err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "001_a.sql" {
		t.Fatalf("unexpected files: %v", files)
	}
	if _, err := findMigrationFiles(dir, "missing.sql"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
