package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/task-cli/internal/todo"
	"github.com/nibzard/task-cli/internal/tracker"
)

type fakeSource struct {
	snapshot *tracker.Snapshot
	err      error
	calls    int
}

func (f *fakeSource) Snapshot() (*tracker.Snapshot, error) {
	f.calls++
	return f.snapshot, f.err
}

func sampleSource() *fakeSource {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := todo.NewList()
	l.AddTask("buy milk", now)
	l.AddTask("walk dog", now)
	l.AddTask("file taxes", now)
	_ = l.SetTaskStatus(2, todo.StatusInProgress, now)
	_ = l.SetTaskStatus(3, todo.StatusDone, now)
	return &fakeSource{snapshot: &tracker.Snapshot{Tasks: l.Tasks, Counts: l.CountByStatus()}}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBoardInitialView(t *testing.T) {
	src := sampleSource()
	m := newBoardModel(src, "/work/data.json")
	if cmd := m.Init(); cmd == nil {
		t.Error("Init should schedule a refresh tick")
	}
	if src.calls != 1 {
		t.Errorf("Snapshot calls = %d, want 1", src.calls)
	}

	view := m.View()
	for _, want := range []string{"Task Board", "Todo: 1", "In progress: 1", "Done: 1", "Total: 3", "buy milk", "walk dog", "file taxes", "/work/data.json"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBoardFilters(t *testing.T) {
	m := newBoardModel(sampleSource(), "data.json")
	m.Init()

	tests := []struct {
		key     string
		shown   []string
		hidden  []string
		heading string
	}{
		{"1", []string{"buy milk"}, []string{"walk dog", "file taxes"}, "Tasks (Todo"},
		{"2", []string{"walk dog"}, []string{"buy milk", "file taxes"}, "Tasks (In progress"},
		{"3", []string{"file taxes"}, []string{"buy milk", "walk dog"}, "Tasks (Done"},
		{"0", []string{"buy milk", "walk dog", "file taxes"}, nil, "Tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m.Update(key(tt.key))
			view := m.View()
			for _, s := range tt.shown {
				if !strings.Contains(view, s) {
					t.Errorf("view missing %q", s)
				}
			}
			for _, s := range tt.hidden {
				if strings.Contains(view, s) {
					t.Errorf("view should not contain %q", s)
				}
			}
			if !strings.Contains(view, tt.heading) {
				t.Errorf("view missing heading %q", tt.heading)
			}
		})
	}
}

func TestBoardEmptyFilter(t *testing.T) {
	src := &fakeSource{snapshot: &tracker.Snapshot{Counts: todo.NewList().CountByStatus()}}
	m := newBoardModel(src, "data.json", WithFilter(todo.StatusDone))
	m.Init()
	if view := m.View(); !strings.Contains(view, "No tasks with this status.") {
		t.Errorf("view = %s", view)
	}

	m.Update(key("0"))
	if view := m.View(); !strings.Contains(view, "No tasks yet") {
		t.Errorf("view = %s", view)
	}
}

func TestBoardRefreshAndTick(t *testing.T) {
	src := sampleSource()
	m := newBoardModel(src, "data.json", WithRefreshInterval(5*time.Second))
	m.Init()

	m.Update(key("r"))
	if src.calls != 2 {
		t.Errorf("calls after r = %d, want 2", src.calls)
	}

	_, cmd := m.Update(tickMsg(time.Now()))
	if src.calls != 3 {
		t.Errorf("calls after tick = %d, want 3", src.calls)
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if !strings.Contains(m.View(), "5s") {
		t.Error("footer should show the refresh interval")
	}
}

func TestBoardLoadError(t *testing.T) {
	src := &fakeSource{err: errors.New("task file is unreadable")}
	m := newBoardModel(src, "data.json")
	m.Init()

	view := m.View()
	if !strings.Contains(view, "Error loading task file") || !strings.Contains(view, "unreadable") {
		t.Errorf("view = %s", view)
	}

	src.err = nil
	src.snapshot = sampleSource().snapshot
	m.Update(key("r"))
	if view := m.View(); !strings.Contains(view, "buy milk") {
		t.Errorf("view after recovery = %s", view)
	}
}

func TestBoardHelpAndQuit(t *testing.T) {
	m := newBoardModel(sampleSource(), "data.json")
	m.Init()

	m.Update(key("h"))
	if view := m.View(); !strings.Contains(view, "Keyboard Shortcuts") || strings.Contains(view, "buy milk") {
		t.Errorf("help view = %s", view)
	}
	m.Update(key("?"))
	if view := m.View(); strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("? should toggle help off")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestBoardTruncatesToWidth(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := todo.NewList()
	l.AddTask(strings.Repeat("long ", 40), now)
	src := &fakeSource{snapshot: &tracker.Snapshot{Tasks: l.Tasks, Counts: l.CountByStatus()}}

	m := newBoardModel(src, "data.json")
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})

	for _, line := range strings.Split(m.View(), "\n") {
		if strings.Contains(line, "long") && len([]rune(line)) > 40 {
			t.Errorf("line longer than width: %q", line)
		}
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a TTY")
	}
	if IsTTY(nil) {
		t.Error("nil writer is not a TTY")
	}
}
