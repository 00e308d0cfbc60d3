package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOpenJournal(t *testing.T) {
	t.Run("creates project directory", func(t *testing.T) {
		baseDir := filepath.Join(t.TempDir(), "logs", "nested")
		workDir := filepath.Join(t.TempDir(), "my-test-project")
		if err := os.Mkdir(workDir, 0755); err != nil {
			t.Fatal(err)
		}

		j, err := OpenJournal(baseDir, workDir)
		if err != nil {
			t.Fatalf("OpenJournal failed: %v", err)
		}
		defer j.Close()

		if !strings.HasPrefix(j.Dir, baseDir) {
			t.Errorf("Dir = %s, want under %s", j.Dir, baseDir)
		}
		if !strings.Contains(filepath.Base(j.Dir), "my-test-project-") {
			t.Errorf("Dir = %s, want project slug", j.Dir)
		}
		if filepath.Base(j.Path) != JournalFile {
			t.Errorf("Path = %s, want %s", j.Path, JournalFile)
		}
		if _, err := os.Stat(j.Path); err != nil {
			t.Errorf("journal not created: %v", err)
		}

		want, err := JournalPath(baseDir, workDir)
		if err != nil {
			t.Fatal(err)
		}
		if want != j.Path {
			t.Errorf("JournalPath = %s, want %s", want, j.Path)
		}
	})

	t.Run("empty base dir", func(t *testing.T) {
		if _, err := OpenJournal("", t.TempDir()); err == nil || !strings.Contains(err.Error(), "empty") {
			t.Errorf("expected empty dir error, got %v", err)
		}
	})

	t.Run("relative base dir resolves against work dir", func(t *testing.T) {
		workDir := t.TempDir()
		dir, err := ProjectDir(".logs", workDir)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(dir, filepath.Join(workDir, ".logs")) {
			t.Errorf("ProjectDir = %s, want under %s", dir, filepath.Join(workDir, ".logs"))
		}
	})
}

func TestJournalAppend(t *testing.T) {
	j, err := OpenJournal(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Time: at, Command: "add", ID: 1, Description: "buy milk", Status: "todo", Message: "Task added successfully (ID: 1)."},
		{Time: at, Command: "mark-done", ID: 1, Status: "done", Message: "Task ID 1 status changed successfully!"},
	}
	for _, e := range entries {
		if err := j.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	file, err := os.Open(j.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var got []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("line %q is not JSON: %v", scanner.Text(), err)
		}
		got = append(got, e)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Command != "add" || got[0].Description != "buy milk" || !got[0].Time.Equal(at) {
		t.Errorf("first entry = %+v", got[0])
	}
	if got[1].Status != "done" || got[1].Description != "" {
		t.Errorf("second entry = %+v", got[1])
	}

	if err := j.Append(Entry{Command: "add"}); err == nil {
		t.Error("Append after Close should fail")
	}
}

func TestJournalReopenAppends(t *testing.T) {
	baseDir, workDir := t.TempDir(), t.TempDir()
	for i := 0; i < 2; i++ {
		j, err := OpenJournal(baseDir, workDir)
		if err != nil {
			t.Fatal(err)
		}
		if err := j.Append(Entry{Command: "add", Message: "ok"}); err != nil {
			t.Fatal(err)
		}
		j.Close()
	}

	path, _ := JournalPath(baseDir, workDir)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("journal has %d lines, want 2", n)
	}
}

func TestNilJournalClose(t *testing.T) {
	var j *Journal
	if err := j.Close(); err != nil {
		t.Errorf("Close on nil journal: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", "simple"},
		{"Hello World", "Hello_World"},
		{"test-project", "test-project"},
		{"many   spaces", "many_spaces"},
		{"special@chars!", "special_chars"},
		{"", "project"},
		{"   ", "project"},
		{"___", "project"},
		{"test.-_project", "test.-_project"},
		{"test/directory", "test_directory"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := slugify(tt.input); got != tt.want {
				t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProjectSlugIsStable(t *testing.T) {
	a := projectSlug("/home/user/work/tasks")
	b := projectSlug("/home/user/work/tasks")
	c := projectSlug("/home/other/work/tasks")

	if a != b {
		t.Errorf("slug not stable: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("different paths share slug %s", a)
	}
	if !strings.HasPrefix(a, "tasks-") || len(a) != len("tasks-")+8 {
		t.Errorf("slug = %s, want tasks-<8 hex>", a)
	}
}
