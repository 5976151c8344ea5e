package common

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSourceHashTracksImageInputsOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module x\n")
	writeFile(t, filepath.Join(root, "internal", "a.go"), "package a\n")

	first, err := SourceHash(root)
	if err != nil {
		t.Fatalf("SourceHash: %v", err)
	}

	writeFile(t, filepath.Join(root, "infra", "main.go"), "package main\n")
	writeFile(t, filepath.Join(root, "DESIGN.md"), "notes\n")
	same, err := SourceHash(root)
	if err != nil {
		t.Fatalf("SourceHash: %v", err)
	}
	if same != first {
		t.Fatalf("files outside the image changed the hash: %s != %s", same, first)
	}

	writeFile(t, filepath.Join(root, "internal", "a.go"), "package a\n\nconst X = 1\n")
	changed, err := SourceHash(root)
	if err != nil {
		t.Fatalf("SourceHash: %v", err)
	}
	if changed == first {
		t.Fatal("expected source change to change the hash")
	}
}
