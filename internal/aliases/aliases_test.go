package aliases

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "aliases.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadMissingFile(t *testing.T) {
	table, found, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false for a missing file")
	}
	if len(table) != 0 {
		t.Errorf("expected an empty table, got %v entries", len(table))
	}
}

func TestLoadNormalizesKeys(t *testing.T) {
	path := write(t, "\"Jón Smith\" = \"Jonathan Smith\"\n")

	table, found, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}

	name, ok := table.Lookup("jon smith")
	if !ok {
		t.Fatal("expected a match for the normalized key")
	}
	if name.First != "Jonathan" || name.Last != "Smith" {
		t.Errorf("expected Jonathan Smith, got %+v", name)
	}
}

func TestLoadSingleTokenCanonical(t *testing.T) {
	path := write(t, "\"madonna c\" = \"Madonna\"\n")

	table, _, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name, ok := table.Lookup("madonna c")
	if !ok {
		t.Fatal("expected a match")
	}
	if name.First != "Madonna" || name.Last != "" {
		t.Errorf("expected first-name-only, got %+v", name)
	}
}

func TestLoadMultiWordCanonicalSplitsOnLastSpace(t *testing.T) {
	path := write(t, "\"ana d l c\" = \"Ana de la Cruz\"\n")

	table, _, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name, ok := table.Lookup("ana d l c")
	if !ok {
		t.Fatal("expected a match")
	}
	if name.First != "Ana de la" || name.Last != "Cruz" {
		t.Errorf("expected split on last space, got %+v", name)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := write(t, "not [valid toml\n")

	if _, _, err := Load(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestLookupMiss(t *testing.T) {
	if _, ok := (Table{}).Lookup("nobody here"); ok {
		t.Error("expected no match from an empty table")
	}
}
