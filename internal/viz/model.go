package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/springcurve/internal/dynamo"
	"github.com/san-kum/springcurve/internal/export"
	"github.com/san-kum/springcurve/internal/metrics"
	"github.com/san-kum/springcurve/internal/render"
	"github.com/san-kum/springcurve/internal/sim"
)

const (
	defaultCols     = 80
	defaultRows     = 24
	statsWidth      = 44
	historyCapacity = 300

	// recording stops by itself after this many frames
	maxRecordFrames = 600

	// DefaultScale is the number of scene units per braille dot.
	DefaultScale = 4.0
)

// canvas panel padding, in cells
const (
	padX = 2
	padY = 1
)

type TickMsg time.Time

// Options configures a Model.
type Options struct {
	FPS   int
	Scale float64
	Theme string
}

// Model is the bubbletea front end: it steps the simulator on every tick,
// draws onto a braille canvas and feeds mouse motion to the scene.
type Model struct {
	sim       *sim.Simulator
	surface   *Surface
	energy    *metrics.KineticEnergy
	baseStyle render.Style
	theme     Theme
	fps       int
	scale     float64

	running       bool
	showHelp      bool
	energyHistory []float64
	status        string

	recording bool
	raster    *export.Raster
	recorder  *export.GIFRecorder
	recordBar progress.Model
}

func NewModel(s *sim.Simulator, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}

	energy := metrics.NewKineticEnergy()
	s.AddMetric(energy)

	bar := progress.New(
		progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
		progress.WithoutPercentage(),
	)
	bar.Width = 28

	m := Model{
		sim:           s,
		surface:       NewSurface(defaultCols, defaultRows, opts.Scale),
		energy:        energy,
		baseStyle:     s.Style(),
		theme:         GetTheme(opts.Theme),
		fps:           opts.FPS,
		scale:         opts.Scale,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		recordBar:     bar,
	}
	s.SetStyle(m.theme.Apply(m.baseStyle))
	m.resize()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cols := msg.Width - statsWidth - 2*padX
		rows := msg.Height - 2*padY
		m.surface = NewSurface(max(cols, 10), max(rows, 5), m.scale)
		m.resize()

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
			break
		}
		col, row := msg.X-padX, msg.Y-padY
		if col < 0 || row < 0 || col >= m.surface.Canvas.Width || row >= m.surface.Canvas.Height {
			break
		}
		p := m.surface.ScenePoint(col, row)
		m.sim.Scene().PointerMove(p.X, p.Y)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ", "p":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
			}
		case "c":
			w, h := m.surface.Size()
			m.sim.Scene().PointerMove(w/2, h/2)
		case "t":
			m.cycleTheme()
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.startRecording()
			}
		case "?":
			m.showHelp = !m.showHelp
		}

	case TickMsg:
		if m.running {
			m.step()
		} else {
			m.sim.Draw(m.surface)
		}
		return m, m.tick()
	}
	return m, nil
}

// resize forwards the canvas size to the scene.
func (m *Model) resize() {
	w, h := m.surface.Size()
	if err := m.sim.Scene().Resize(w, h); err != nil {
		dynamo.Logger().Warn("ignoring resize", "err", err)
	}
}

// step advances the simulation one frame.
func (m *Model) step() {
	m.sim.Frame(m.surface)

	m.energyHistory = append(m.energyHistory, m.energy.Last())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	if m.recording {
		m.sim.Draw(m.raster)
		m.recorder.Add(m.raster.Image())
		if m.recorder.Len() >= maxRecordFrames {
			m.stopRecording()
		}
	}
}

func (m *Model) cycleTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == m.theme.Name {
			m.theme = GetTheme(names[(i+1)%len(names)])
			break
		}
	}
	m.sim.SetStyle(m.theme.Apply(m.baseStyle))
}

func (m *Model) startRecording() {
	w, h := m.surface.Size()
	m.raster = export.NewRaster(int(w), int(h), m.sim.Style().Background)
	m.recorder = export.NewGIFRecorder(max(100/m.fps, 1))
	m.recording = true
	m.status = "recording"
}

func (m *Model) stopRecording() {
	m.recording = false
	name := fmt.Sprintf("springcurve_%d.gif", time.Now().Unix())
	if err := m.saveGIF(name); err != nil {
		m.status = "gif: " + err.Error()
		dynamo.Logger().Error("saving gif", "err", err)
	} else {
		m.status = "saved " + name
	}
	m.raster, m.recorder = nil, nil
}

func (m *Model) saveGIF(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.recorder.Encode(f)
}

// View renders the TUI interface.
func (m Model) View() string {
	t := m.theme
	headerStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(t.Muted).Width(10)
	valueStyle := lipgloss.NewStyle().Foreground(t.Text)
	graphStyle := lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 0)
	helpStyle := lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1)
	statsStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Muted).
		Padding(1, 2).
		Width(statsWidth - 2)

	scene := m.sim.Scene()
	var s strings.Builder
	s.WriteString(headerStyle.Render("SPRINGCURVE") + "\n")

	status := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render("RUNNING")
	if !m.running {
		status = lipgloss.NewStyle().Foreground(t.Warning).Bold(true).Render("PAUSED")
	}
	if m.recording {
		status += lipgloss.NewStyle().Foreground(t.Warning).Render("  ● REC")
	}
	s.WriteString(status + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.sim.FrameCount()))
	row("Energy", fmt.Sprintf("%.4f", m.energy.Last()))
	row("P1", scene.Points[0].Pos.String())
	row("P2", scene.Points[1].Pos.String())
	row("Target", scene.Targets[0].Add(scene.Targets[1]).Scale(0.5).String())
	row("Surface", fmt.Sprintf("%.0fx%.0f", scene.Width, scene.Height))
	row("Theme", t.Name)
	if m.recording {
		row("GIF", fmt.Sprintf("%d/%d", m.recorder.Len(), maxRecordFrames))
		s.WriteString(m.recordBar.ViewAs(float64(m.recorder.Len())/maxRecordFrames) + "\n")
	}
	if m.status != "" {
		row("Status", m.status)
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause N:Step C:Center\nT:Theme G:Record ?:Help Q:Quit"))

	canvasView := lipgloss.NewStyle().Padding(padY, padX).Render(m.surface.Canvas.Colored())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Mouse    - Move the pointer         ║
║  Space    - Pause/Resume             ║
║  N        - Step one frame (paused)  ║
║  C        - Pointer to center        ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the bubbletea program with mouse motion reporting.
func Run(s *sim.Simulator, opts Options) error {
	p := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
