package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/squishy/internal/config"
	"github.com/san-kum/squishy/internal/experiment"
	"github.com/san-kum/squishy/internal/softbody"
)

const (
	width           = 64
	height          = 22
	historyCapacity = 300

	// Canvas origin inside the rendered view, set by canvasStyle padding.
	canvasLeft = 2
	canvasTop  = 1

	sliderStep    = 5.0
	flattenFactor = 1.6
	recordPath    = "squishy.gif"
)

type TickMsg time.Time

// ReloadMsg replaces the running config, typically after the YAML file it
// came from changed on disk.
type ReloadMsg struct {
	Config *config.Config
	Err    error
}

// Model is the live viewer: it owns a world, steps it once per tick and
// turns mouse events into pointer interactions.
type Model struct {
	cfg     *config.Config
	world   *softbody.World
	pointer *softbody.Pointer
	canvas  *Canvas
	view    View

	running  bool
	showHelp bool
	message  string

	radiusHistory  []float64
	kineticHistory []float64
	last           experiment.Sample

	sliders  []string
	selected int

	recorder *Recorder
}

// NewModel builds the world described by cfg.
func NewModel(cfg *config.Config) (Model, error) {
	m := Model{
		canvas:         NewCanvas(width, height),
		running:        true,
		sliders:        config.ParamNames(),
		pointer:        cfg.NewPointer(),
		radiusHistory:  make([]float64, 0, historyCapacity),
		kineticHistory: make([]float64, 0, historyCapacity),
	}
	if err := m.load(cfg); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) load(cfg *config.Config) error {
	w, err := cfg.Build()
	if err != nil {
		return err
	}
	m.cfg = cfg
	m.world = w
	m.view = Fit(m.canvas, cfg.Arena.Width, cfg.Arena.Height)
	tool := m.pointer.Tool
	m.pointer = cfg.NewPointer()
	m.pointer.Tool = tool
	m.radiusHistory = m.radiusHistory[:0]
	m.kineticHistory = m.kineticHistory[:0]
	m.last = experiment.Summarize(w, softbody.StepStats{})
	return nil
}

// World exposes the simulated world.
func (m Model) World() *softbody.World { return m.world }

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case ReloadMsg:
		if msg.Err != nil {
			m.message = "reload: " + msg.Err.Error()
			break
		}
		if err := m.load(msg.Config); err != nil {
			m.message = "reload: " + err.Error()
			break
		}
		m.message = "reloaded " + msg.Config.Toy
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recorder != nil {
			m.recorder.Capture(m.canvas)
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "n":
		if !m.running {
			m.step()
		}
	case "r":
		if err := m.load(m.cfg); err != nil {
			m.message = err.Error()
		}
	case "tab":
		m.selected = (m.selected + 1) % len(m.sliders)
	case "up", "k":
		m.adjustSlider(sliderStep)
	case "down", "j":
		m.adjustSlider(-sliderStep)
	case "1", "2", "3", "4":
		m.pointer.Up(m.world)
		m.pointer.Tool = softbody.Tool(msg.String()[0] - '1')
	case "f":
		m.eachBody("flatten", func(id int) error { return m.world.Flatten(id, flattenFactor) })
	case "o":
		m.eachBody("roll", m.world.RollRound)
	case "p":
		m.eachBody("push", func(id int) error { return m.world.Push(id, softbody.V(0, -6)) })
	case "s":
		if bodies := m.world.Bodies(); len(bodies) > 0 {
			if _, _, err := m.world.Split(bodies[0].ID); err != nil {
				m.message = err.Error()
			}
		}
	case "m":
		if bodies := m.world.Bodies(); len(bodies) > 1 {
			if _, err := m.world.Merge(bodies[0].ID, bodies[1].ID); err != nil {
				m.message = err.Error()
			}
		}
	case "t":
		NextTheme()
	case "g":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) eachBody(op string, fn func(id int) error) {
	for _, b := range m.world.Bodies() {
		if err := fn(b.ID); err != nil {
			m.message = fmt.Sprintf("%s: %v", op, err)
		}
	}
}

func (m *Model) adjustSlider(delta float64) {
	name := m.sliders[m.selected]
	v, err := m.cfg.Param(name)
	if err != nil {
		return
	}
	cfg := m.cfg.Clone()
	if err := cfg.SetParam(name, math.Max(0, math.Min(100, v+delta))); err != nil {
		return
	}
	if err := m.world.SetMaterialAll(cfg.EngineMaterial()); err != nil {
		m.message = err.Error()
		return
	}
	m.cfg = cfg
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		m.recorder = NewRecorder(CurrentTheme)
		m.message = "recording"
		return
	}
	if err := m.recorder.Save(recordPath); err != nil {
		m.message = "record: " + err.Error()
	} else {
		m.message = fmt.Sprintf("saved %d frames to %s", m.recorder.Len(), recordPath)
	}
	m.recorder = nil
}

// handleMouse maps terminal cells onto the arena and drives the pointer.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.showHelp {
		return
	}
	pos := m.view.Cell(msg.X-canvasLeft, msg.Y-canvasTop)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.pointer.Down(m.world, pos)
		}
	case tea.MouseActionMotion:
		m.pointer.Move(m.world, pos)
	case tea.MouseActionRelease:
		m.pointer.Up(m.world)
	}
}

// step advances the world one frame.
func (m *Model) step() {
	m.pointer.Hold(m.world)
	st := m.world.Step()
	m.last = experiment.Summarize(m.world, st)
	m.radiusHistory = appendCapped(m.radiusHistory, m.last.MeanRadius)
	m.kineticHistory = appendCapped(m.kineticHistory, m.last.Kinetic)
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (m *Model) draw() {
	m.canvas.Clear()
	lo := softbody.V(0, 0)
	hi := softbody.V(m.cfg.Arena.Width, m.cfg.Arena.Height)
	m.view.Polyline(m.canvas, []softbody.Vec{lo, softbody.V(hi.X, lo.Y), hi, softbody.V(lo.X, hi.Y)}, true)
	DrawWorld(m.canvas, m.view, m.world.Snapshot())
	if m.pointer.Active() {
		m.view.Polyline(m.canvas, circle(m.pointer.Position(), m.pointer.Radius, 16), true)
	}
}

func circle(c softbody.Vec, r float64, n int) []softbody.Vec {
	out := make([]softbody.Vec, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = c.Add(softbody.V(r*math.Cos(a), r*math.Sin(a)))
	}
	return out
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.cfg.Toy), CurrentTheme.Primary, CurrentTheme.Secondary) + "\n")
	switch {
	case m.recorder != nil:
		s.WriteString(StatusRecording.Render("● REC") + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.radiusHistory) > 1 {
		chart := asciigraph.Plot(m.radiusHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Mean radius"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.world.Frame())) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", m.world.Len())) + "\n")
	s.WriteString(labelStyle.Render("Area") + valueStyle.Render(fmt.Sprintf("%.2f", m.last.AreaRatio)) + "\n")
	s.WriteString(labelStyle.Render("Contacts") + valueStyle.Render(fmt.Sprintf("%d", m.last.Contacts)) + "\n")
	s.WriteString(labelStyle.Render("Tool") + valueStyle.Render(m.pointer.Tool.String()) + "\n")
	s.WriteString(labelStyle.Render("Motion") + SparklineChart(m.kineticHistory, 20) + "\n")

	s.WriteString("\nSLIDERS\n")
	for i, name := range m.sliders {
		v, _ := m.cfg.Param(name)
		line := fmt.Sprintf("%-10s %s %3.0f", name, ProgressBar(v/100, 10), v)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> ") + line + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	if m.message != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(m.message) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit ?:Help\n1-4:Tool TAB/↑↓:Slider"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space   pause / resume        N   step one frame (paused)
  R       reset the toy         Q   quit
  1-4     poke drag pinch pin   Mouse  use the tool
  Tab     next slider           Up/Down  move slider by 5
  F       flatten               O   roll round
  P       push up               S   split   M  merge
  T       next theme            G   record GIF
  ?       toggle this help
`

// NewProgram wraps the live viewer for cfg in a full-screen program with
// mouse tracking. Callers may Send ReloadMsg to it while it runs.
func NewProgram(cfg *config.Config) (*tea.Program, error) {
	m, err := NewModel(cfg)
	if err != nil {
		return nil, err
	}
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()), nil
}
