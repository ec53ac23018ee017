package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/squishy/internal/config"
)

var (
	cyan = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

var toyInfo = map[string]string{
	"jelly": "wobbly pressurised blob", "slime": "soft and remembers dents", "water_balloon": "high pressure, bouncy",
	"stress_ball": "squeeze and watch it recover", "fat_cat": "heavy, spoked, lazy", "dough": "knead it into shape",
	"tire": "stiff braced ring", "rubber_band": "stretch until it snaps", "pudding": "soft and sloppy",
	"bouncy_castle": "very bouncy, very large", "rubber_duck": "firm little squeaker", "cloth": "pinned sheet that can tear",
}

// Picker lists the toys and opens the live viewer on the chosen one.
type Picker struct {
	toys   []string
	cursor int
	err    error
}

func NewPicker() Picker {
	return Picker{toys: config.ListPresets()}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		p.cursor = (p.cursor - 1 + len(p.toys)) % len(p.toys)
	case "down", "j":
		p.cursor = (p.cursor + 1) % len(p.toys)
	case "enter":
		live, err := NewModel(config.GetPreset(p.toys[p.cursor]))
		if err != nil {
			p.err = err
			return p, nil
		}
		return live, live.Init()
	}
	return p, nil
}

// Selected returns the toy under the cursor.
func (p Picker) Selected() string { return p.toys[p.cursor] }

func (p Picker) View() string {
	var s strings.Builder
	s.WriteString(GradientText("SQUISHY", CurrentTheme.Primary, CurrentTheme.Secondary) + "\n\n")
	for i, name := range p.toys {
		line := fmt.Sprintf("%-14s %s", name, dim.Render(toyInfo[name]))
		if i == p.cursor {
			s.WriteString(cyan.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	if p.err != nil {
		s.WriteString("\n" + StatusRecording.UnsetBlink().Render(p.err.Error()) + "\n")
	}
	s.WriteString(dim.Render("\n↑↓ select  enter open  q quit"))
	return s.String()
}

// RunPicker runs the toy picker full screen until the user quits.
func RunPicker() error {
	_, err := tea.NewProgram(NewPicker(), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
