package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/cannon/pkg/plan"
)

func testSummaries() []plan.Summary {
	var rows []plan.Summary
	for i, c := range plan.Candidates() {
		rows = append(rows, plan.Summary{
			Candidate:  c,
			ShotCount:  100 - i%7,
			Error:      float64((i * 13) % 56),
			Propulsion: int64(1000 + i%5),
		})
	}
	return rows
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRank(t *testing.T) {
	for i, c := range plan.Candidates() {
		if got := rank(c); got != i {
			t.Errorf("rank(%v) = %d, want %d", c, got, i)
		}
	}
}

func TestSortSummaries(t *testing.T) {
	tests := []struct {
		key  sortKey
		less func(a, b plan.Summary) bool
	}{
		{sortEnumeration, func(a, b plan.Summary) bool { return rank(a.Candidate) < rank(b.Candidate) }},
		{sortError, func(a, b plan.Summary) bool { return a.Error <= b.Error }},
		{sortShots, func(a, b plan.Summary) bool { return a.ShotCount <= b.ShotCount }},
		{sortPropulsion, func(a, b plan.Summary) bool { return a.Propulsion <= b.Propulsion }},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			rows := testSummaries()
			sortSummaries(rows, tt.key)
			for i := 1; i < len(rows); i++ {
				if !tt.less(rows[i-1], rows[i]) {
					t.Fatalf("rows %d and %d out of order", i-1, i)
				}
			}
		})
	}
}

func TestCandidateModelNavigation(t *testing.T) {
	rows := testSummaries()
	m := NewCandidateModel("test", rows, rows[0].Candidate)
	m.Height = 5

	var model tea.Model = m
	for range 7 {
		model, _ = model.Update(key("down"))
	}
	got := model.(CandidateModel)
	if got.Cursor != 7 {
		t.Errorf("Cursor = %d, want 7", got.Cursor)
	}
	if got.Offset != 3 {
		t.Errorf("Offset = %d, want 3", got.Offset)
	}

	for range 10 {
		model, _ = model.Update(key("up"))
	}
	got = model.(CandidateModel)
	if got.Cursor != 0 || got.Offset != 0 {
		t.Errorf("Cursor, Offset = %d, %d, want 0, 0", got.Cursor, got.Offset)
	}
}

func TestCandidateModelSortCycles(t *testing.T) {
	rows := testSummaries()
	var model tea.Model = NewCandidateModel("test", rows, rows[0].Candidate)
	for i := range int(sortKeys) {
		model, _ = model.Update(key("s"))
		want := sortKey((i + 1) % int(sortKeys))
		if got := model.(CandidateModel).Sort; got != want {
			t.Fatalf("after %d presses Sort = %v, want %v", i+1, got, want)
		}
	}
}

func TestCandidateModelQuit(t *testing.T) {
	m := NewCandidateModel("test", testSummaries(), plan.Candidate{})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestCandidateModelWindowSize(t *testing.T) {
	m := NewCandidateModel("test", testSummaries(), plan.Candidate{})
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if h := model.(CandidateModel).Height; h != 5 {
		t.Errorf("Height = %d, want minimum 5", h)
	}
}

func TestCandidateModelView(t *testing.T) {
	rows := testSummaries()
	best := rows[9].Candidate
	m := NewCandidateModel("Candidates for test.png", rows, best)

	view := m.View()
	for _, want := range []string{"Candidates for test.png", "phase 0 east aa0", "[1/56]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	static := m.Static()
	if !strings.Contains(static, best.String()) || !strings.Contains(static, "★") {
		t.Error("Static() should list every candidate and mark the winner")
	}
	if strings.Contains(static, "▸") {
		t.Error("Static() should not draw a cursor")
	}
}
