// internal/storage/file_storage_test.go
package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T) *FileStorage {
	t.Helper()

	fs, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}
	t.Cleanup(fs.Close)
	return fs
}

func TestSaveLoadJSONFile(t *testing.T) {
	fs := newTestStorage(t)

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	in := doc{Name: "reel", Count: 3}
	if err := fs.SaveJSONFile("reels/abc", "reel.json", in); err != nil {
		t.Fatalf("SaveJSONFile: %v", err)
	}

	var out doc
	if err := fs.LoadJSONFile("reels/abc", "reel.json", &out); err != nil {
		t.Fatalf("LoadJSONFile: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}

	// Second load is served from cache and must agree.
	var cached doc
	if err := fs.LoadJSONFile("reels/abc", "reel.json", &cached); err != nil {
		t.Fatalf("cached LoadJSONFile: %v", err)
	}
	if cached != in {
		t.Errorf("cached round trip = %+v", cached)
	}
}

func TestSaveTextFileAndExists(t *testing.T) {
	fs := newTestStorage(t)

	if fs.FileExists("notes", "a.txt") {
		t.Error("FileExists before save")
	}

	if err := fs.SaveTextFile("notes", "a.txt", []byte("hello")); err != nil {
		t.Fatalf("SaveTextFile: %v", err)
	}

	if !fs.DirExists("notes") {
		t.Error("DirExists after save")
	}
	if !fs.FileExists("notes", "a.txt") {
		t.Error("FileExists after save")
	}

	data, err := fs.LoadTextFile("notes", "a.txt")
	if err != nil {
		t.Fatalf("LoadTextFile: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q", data)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := newTestStorage(t)

	if _, err := fs.LoadTextFile("nowhere", "missing.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestListDirs(t *testing.T) {
	fs := newTestStorage(t)

	for _, id := range []string{"r1", "r2", "r3"} {
		if err := fs.SaveTextFile(filepath.Join("reels", id), "reel.json", []byte("{}")); err != nil {
			t.Fatalf("SaveTextFile: %v", err)
		}
	}
	// A stray file must not show up as a directory.
	if err := fs.SaveTextFile("reels", "stray.txt", []byte("x")); err != nil {
		t.Fatalf("SaveTextFile: %v", err)
	}

	dirs, err := fs.ListDirs("reels")
	if err != nil {
		t.Fatalf("ListDirs: %v", err)
	}
	if len(dirs) != 3 {
		t.Errorf("ListDirs = %v, want 3 entries", dirs)
	}

	if _, err := fs.ListDirs("does-not-exist"); err != nil {
		t.Errorf("ListDirs on missing dir: %v, want empty result", err)
	}
}

func TestDeleteFileAndDir(t *testing.T) {
	fs := newTestStorage(t)

	if err := fs.SaveTextFile("reels/r1", "reel.json", []byte("{}")); err != nil {
		t.Fatalf("SaveTextFile: %v", err)
	}
	if err := fs.DeleteFile("reels/r1", "reel.json"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if fs.FileExists("reels/r1", "reel.json") {
		t.Error("file still exists after delete")
	}

	if err := fs.SaveTextFile("reels/r2", "reel.json", []byte("{}")); err != nil {
		t.Fatalf("SaveTextFile: %v", err)
	}
	if err := fs.DeleteDir("reels/r2"); err != nil {
		t.Fatalf("DeleteDir: %v", err)
	}
	if fs.DirExists("reels/r2") {
		t.Error("dir still exists after delete")
	}
}

func TestSaveIsAtomic(t *testing.T) {
	fs := newTestStorage(t)

	if err := fs.SaveTextFile("docs", "d.txt", []byte("v1")); err != nil {
		t.Fatalf("SaveTextFile: %v", err)
	}
	if err := fs.SaveTextFile("docs", "d.txt", []byte("v2")); err != nil {
		t.Fatalf("SaveTextFile overwrite: %v", err)
	}

	data, err := fs.LoadTextFile("docs", "d.txt")
	if err != nil {
		t.Fatalf("LoadTextFile: %v", err)
	}
	if string(data) != "v2" {
		t.Errorf("content = %q, want v2", data)
	}

	// No temp files may survive a completed save.
	entries, err := os.ReadDir(filepath.Join(fs.BaseDir, "docs"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want 1", len(entries))
	}
}
