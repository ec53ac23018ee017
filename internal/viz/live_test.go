package viz

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/squishy/internal/config"
	"github.com/san-kum/squishy/internal/softbody"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(config.GetPreset("jelly"))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTickSteps(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))
	if m.World().Frame() != 2 {
		t.Errorf("expected frame 2, got %d", m.World().Frame())
	}
	if len(m.radiusHistory) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(m.radiusHistory))
	}
}

func TestPauseAndStep(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key(" "))
	m = update(t, m, TickMsg(time.Now()))
	if m.World().Frame() != 0 {
		t.Errorf("expected paused world at frame 0, got %d", m.World().Frame())
	}
	m = update(t, m, key("n"))
	if m.World().Frame() != 1 {
		t.Errorf("expected single step to frame 1, got %d", m.World().Frame())
	}
}

func TestResetRebuildsWorld(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 5; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	m = update(t, m, key("r"))
	if m.World().Frame() != 0 {
		t.Errorf("expected fresh world, got frame %d", m.World().Frame())
	}
}

func TestSliderAdjust(t *testing.T) {
	m := newTestModel(t)
	for m.sliders[m.selected] != "gravity" {
		m = update(t, m, key("tab"))
	}
	before := m.cfg.Params.Gravity
	m = update(t, m, key("up"))
	if m.cfg.Params.Gravity != before+sliderStep {
		t.Errorf("expected gravity %v, got %v", before+sliderStep, m.cfg.Params.Gravity)
	}
	want := m.cfg.EngineMaterial().Gravity
	if got := m.World().Bodies()[0].Material.Gravity; got != want {
		t.Errorf("expected body gravity %v, got %v", want, got)
	}
}

func TestToolKeys(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("3"))
	if m.pointer.Tool != softbody.Pinch {
		t.Errorf("expected pinch, got %v", m.pointer.Tool)
	}
}

func TestMouseDrivesPointer(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("2"))

	// Press on the jelly's centre cell.
	x, y := m.view.Dot(m.World().Bodies()[0].Centroid())
	press := tea.MouseMsg{X: x/2 + canvasLeft, Y: y/4 + canvasTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m = update(t, m, press)
	if !m.pointer.Active() {
		t.Fatal("expected pointer down after press")
	}

	release := press
	release.Action = tea.MouseActionRelease
	m = update(t, m, release)
	if m.pointer.Active() {
		t.Error("expected pointer up after release")
	}
}

func TestReloadMsg(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, ReloadMsg{Err: errors.New("bad yaml")})
	if !strings.Contains(m.message, "bad yaml") {
		t.Errorf("expected reload error message, got %q", m.message)
	}

	m = update(t, m, ReloadMsg{Config: config.GetPreset("cloth")})
	if m.cfg.Toy != "cloth" {
		t.Errorf("expected cloth, got %s", m.cfg.Toy)
	}
	if m.World().Bodies()[0].Config.Kind != softbody.KindGrid {
		t.Error("expected world rebuilt from reloaded config")
	}
}

func TestSplitKey(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("s"))
	if m.World().Len() != 2 {
		t.Errorf("expected 2 bodies after split, got %d", m.World().Len())
	}
	m = update(t, m, key("m"))
	if m.World().Len() != 1 {
		t.Errorf("expected 1 body after merge, got %d", m.World().Len())
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))
	out := m.View()
	for _, want := range []string{"RUNNING", "gravity", "Mean radius"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(ThemeRetro)
	if err := r.Save(filepath.Join(t.TempDir(), "empty.gif")); err == nil {
		t.Error("expected error saving empty recording")
	}
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	r.Capture(c)
	r.Capture(c)
	if r.Len() != 2 {
		t.Errorf("expected 2 frames, got %d", r.Len())
	}
	if err := r.Save(filepath.Join(t.TempDir(), "rec.gif")); err != nil {
		t.Errorf("save: %v", err)
	}
}

func TestPicker(t *testing.T) {
	p := NewPicker()
	if p.Selected() != config.ListPresets()[0] {
		t.Errorf("expected first preset selected, got %s", p.Selected())
	}
	next, _ := p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p = next.(Picker)
	if p.Selected() != config.ListPresets()[1] {
		t.Errorf("expected second preset, got %s", p.Selected())
	}
	opened, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := opened.(Model); !ok || cmd == nil {
		t.Errorf("expected live model with tick, got %T", opened)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeCandy.Name)
	SetTheme("ocean")
	if CurrentTheme.Name != "ocean" {
		t.Errorf("expected ocean, got %s", CurrentTheme.Name)
	}
	if NextTheme().Name != ThemeCandy.Name {
		t.Errorf("expected wrap to candy, got %s", CurrentTheme.Name)
	}
	if GetTheme("nope").Name != ThemeCandy.Name {
		t.Error("expected default theme for unknown name")
	}
}

func TestTextHelpers(t *testing.T) {
	if GradientText("", ThemeCandy.Primary, ThemeCandy.Secondary) != "" {
		t.Error("expected empty gradient for empty text")
	}
	if !strings.Contains(GradientText("ab", "nope", "nope"), "ab") {
		t.Error("expected plain text for bad colours")
	}
	if n := strings.Count(ProgressBar(0.5, 10), "█"); n != 5 {
		t.Errorf("expected 5 filled cells, got %d", n)
	}
	if n := len([]rune(SparklineChart(nil, 8))); n != 8 {
		t.Errorf("expected 8 runes, got %d", n)
	}
}
