package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/particlebox/internal/gas"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Model is the live terminal view of a gas box: the simulation advances one
// clamped dt per tick and renders bodies, trails, and run statistics.
type Model struct {
	cloud  *gas.Cloud
	params gas.Params
	seed   int64

	dt  float64
	fps int
	t   float64

	canvas  *Canvas
	running bool
	corrupt bool

	wallHits int
	pairHits int

	energyHistory []float64
}

// NewModel seeds a cloud and prepares the view. dt is pre-clamped by the
// caller to the configured maximum.
func NewModel(params gas.Params, seed int64, dt float64, fps int) (Model, error) {
	cloud, err := gas.NewCloud(params, rand.New(rand.NewSource(seed)))
	if err != nil {
		return Model{}, err
	}
	return Model{
		cloud:         cloud,
		params:        params,
		seed:          seed,
		dt:            dt,
		fps:           fps,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}, nil
}

// Run starts the bubbletea program for the model.
func Run(m Model) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.corrupt {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "t":
			m.toggleTrails()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	st := m.cloud.Step(m.dt, m.t)
	m.t += m.dt
	m.wallHits += st.WallHits
	m.pairHits += st.PairHits

	// Corrupted state is reported, not propagated further (the physics
	// cannot recover from NaN).
	if !m.cloud.Valid() {
		m.running = false
		m.corrupt = true
		return
	}

	m.energyHistory = append(m.energyHistory, m.cloud.KineticEnergy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// reset rebuilds the cloud from the same seed, reproducing the initial
// placement exactly.
func (m *Model) reset() {
	cloud, err := gas.NewCloud(m.params, rand.New(rand.NewSource(m.seed)))
	if err != nil {
		return
	}
	m.cloud = cloud
	m.t = 0
	m.wallHits = 0
	m.pairHits = 0
	m.corrupt = false
	m.running = true
	m.energyHistory = m.energyHistory[:0]
}

func (m *Model) toggleTrails() {
	if m.cloud.TrailWindow > 0 {
		m.cloud.TrailWindow = 0
		for _, b := range m.cloud.Bodies {
			b.Trail = nil
		}
		return
	}
	if m.params.TrailWindow > 0 {
		m.cloud.TrailWindow = m.params.TrailWindow
	} else {
		m.cloud.TrailWindow = 2.0
	}
}

// View renders the arena canvas next to the stats sidebar.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("PARTICLEBOX") + "\n")

	status := "RUNNING"
	if m.corrupt {
		status = warningStyle.Render("CORRUPT STATE (non-finite)")
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(28),
			asciigraph.Caption("kinetic energy"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.cloud.Bodies))) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.1f", m.cloud.KineticEnergy())) + "\n")
	s.WriteString(labelStyle.Render("Mean speed") + valueStyle.Render(fmt.Sprintf("%.1f px/s", m.cloud.MeanSpeed())) + "\n")
	s.WriteString(labelStyle.Render("Collisions") + valueStyle.Render(fmt.Sprintf("%d", m.pairHits)) + "\n")
	s.WriteString(labelStyle.Render("Wall hits") + valueStyle.Render(fmt.Sprintf("%d", m.wallHits)) + "\n")

	trails := "off"
	if m.cloud.TrailWindow > 0 {
		trails = fmt.Sprintf("%.1fs", m.cloud.TrailWindow)
	}
	s.WriteString(labelStyle.Render("Trails") + valueStyle.Render(trails) + "\n")

	s.WriteString(helpStyle.Render("SP:Pause R:Reset T:Trails Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// draw projects world coordinates onto the braille sub-pixel grid, each axis
// scaled independently to fill the canvas.
func (m *Model) draw() {
	m.canvas.Clear()

	cw, ch := float64(canvasWidth*2-1), float64(canvasHeight*4-1)
	sx, sy := cw/m.cloud.Arena.Width, ch/m.cloud.Arena.Height

	px := func(v gas.Vec2) (int, int) {
		return int(v.X * sx), int(v.Y * sy)
	}

	left, top, right, bottom := m.cloud.Arena.Bounds()
	x0, y0 := px(gas.Vec2{X: left, Y: top})
	x1, y1 := px(gas.Vec2{X: right, Y: bottom})
	m.canvas.DrawRect(x0, y0, x1, y1)

	for _, b := range m.cloud.Bodies {
		if m.cloud.TrailWindow > 0 {
			for i := 1; i < len(b.Trail); i++ {
				ax, ay := px(b.Trail[i-1].Pos)
				bx, by := px(b.Trail[i].Pos)
				m.canvas.DrawLine(ax, ay, bx, by)
			}
		}
		cx, cy := px(b.Pos)
		m.canvas.DrawCircle(cx, cy, b.Radius*sx, b.Radius*sy)
	}
}
