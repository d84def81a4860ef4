package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/meridian/internal/canvas"
	"github.com/papapumpkin/meridian/internal/desktop"
	"github.com/papapumpkin/meridian/internal/geo"
	"github.com/papapumpkin/meridian/internal/interact"
	"github.com/papapumpkin/meridian/internal/logging"
)

// Reloader is the part of the settings source the overlay drives.
type Reloader interface {
	Reload()
	SetScreen(width, height int)
}

// DebugSwitch is implemented by loggers whose debug output follows the
// settings.
type DebugSwitch interface {
	SetDebug(on bool)
}

// LogPruner is implemented by loggers that keep rotated files on disk. The
// overlay prunes them after every settings reload.
type LogPruner interface {
	Prune() error
}

// Options wires the overlay model to its collaborators. Controller is
// required; the rest may be nil.
type Options struct {
	Controller *canvas.Controller
	Settings   Reloader
	Opener     desktop.Opener
	Copier     desktop.Copier
	Log        logging.Logger
	About      AboutInfo
	Now        func() time.Time
}

// Model is the root BubbleTea model of the overlay. All scene mutation
// happens here, on the program's event loop.
type Model struct {
	ctrl     *canvas.Controller
	settings Reloader
	opener   desktop.Opener
	copier   desktop.Copier
	log      logging.Logger
	about    AboutInfo
	now      func() time.Time

	Keys   KeyMap
	clicks *interact.ClickTracker

	Width     int
	Height    int
	Menu      *ContextMenu
	ShowAbout bool
	Status    string
	StatusErr bool
}

// NewModel creates the overlay model.
func NewModel(opts Options) Model {
	m := Model{
		ctrl:     opts.Controller,
		settings: opts.Settings,
		opener:   opts.Opener,
		copier:   opts.Copier,
		log:      opts.Log,
		about:    opts.About,
		now:      opts.Now,
		Keys:     DefaultKeyMap(),
		clicks:   &interact.ClickTracker{},
	}
	if m.ctrl == nil {
		m.ctrl = canvas.New()
	}
	if m.log == nil {
		m.log = logging.Nop{}
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Controller returns the composition controller driven by the model.
func (m Model) Controller() *canvas.Controller {
	return m.ctrl
}

// Init implements tea.Model. The first WindowSizeMsg triggers the initial
// settings load.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		if m.Menu != nil {
			m.Menu.Fit(m.Width, m.Height)
		}
		return m, m.setScreenCmd(msg.Width, msg.Height*2)

	case MsgReloadStart:
		m.ctrl.ReloadStart()
		m.Menu = nil
		m.ShowAbout = false
		m.clicks.Reset()
		return m, nil

	case MsgReloadFinish:
		m.ctrl.ReloadFinish(msg.Snapshot)
		if ds, ok := m.log.(DebugSwitch); ok {
			ds.SetDebug(msg.Snapshot.Debug)
		}
		if lp, ok := m.log.(LogPruner); ok {
			if err := lp.Prune(); err != nil {
				logging.Logf(m.log, logging.SeverityInfo, "log prune: %v", err)
			}
		}
		return m, m.tickCmd()

	case MsgTick:
		if m.ctrl.Tick(msg.Gen, msg.At) {
			return m, m.tickCmd()
		}
		return m, nil

	case MsgLocation:
		m.ctrl.LocationChanged(msg.Point)
		return m, nil

	case MsgActionDone:
		m.Status, m.StatusErr = msg.Text, msg.Err != nil
		if msg.Err != nil {
			m.Status = msg.Err.Error()
			logging.Logf(m.log, logging.SeverityInfo, "overlay: %v", msg.Err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Interrupt arrives as a key in raw mode; it is never swallowed.
	if key.Matches(msg, m.Keys.Interrupt) {
		return m, tea.Quit
	}

	switch {
	case m.ShowAbout:
		if key.Matches(msg, m.Keys.Close) || key.Matches(msg, m.Keys.Select) {
			m.ShowAbout = false
		}
		return m, nil

	case m.Menu != nil:
		switch {
		case key.Matches(msg, m.Keys.Up):
			m.Menu.MoveUp()
		case key.Matches(msg, m.Keys.Down):
			m.Menu.MoveDown()
		case key.Matches(msg, m.Keys.Select):
			return m.activate()
		case key.Matches(msg, m.Keys.Close):
			m.Menu = nil
		}
		return m, nil
	}

	m.classify(interact.Event{Kind: interact.KindKeyPress})
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	release := msg.Action == tea.MouseActionRelease

	if m.ShowAbout {
		if release {
			m.ShowAbout = false
		}
		return m, nil
	}

	if m.Menu != nil && release {
		if msg.Button == tea.MouseButtonLeft {
			if i, ok := m.Menu.ItemAt(msg.X, msg.Y); ok {
				m.Menu.Cursor = i
				return m.activate()
			}
		}
		if m.Menu.Contains(msg.X, msg.Y) {
			return m, nil
		}
		m.Menu = nil
		if msg.Button != tea.MouseButtonRight {
			// A click outside only dismisses the menu.
			return m, nil
		}
	}

	ev, ok := mouseEvent(msg)
	if !ok {
		return m, nil
	}
	m, cmd := m.dispatch(m.classify(ev), msg)

	if ev.Kind == interact.KindButtonRelease && ev.Button == interact.ButtonLeft {
		if m.clicks.Observe(ev.Pos, m.now()) {
			dbl := ev
			dbl.Kind = interact.KindDoubleClick
			return m.dispatch(m.classify(dbl), msg)
		}
	}
	return m, cmd
}

func (m Model) classify(ev interact.Event) interact.Action {
	snap := m.ctrl.Snapshot()
	return interact.Classify(ev, snap.MapVisible, snap.Map)
}

func (m Model) dispatch(a interact.Action, msg tea.MouseMsg) (Model, tea.Cmd) {
	switch a.Outcome {
	case interact.ContextRequest:
		m.Menu = NewContextMenu(a, msg.X, msg.Y)
		m.Menu.Fit(m.Width, m.Height)
		logging.Logf(m.log, logging.SeverityDebug, "overlay: context menu at %d,%d", msg.X, msg.Y)
	case interact.OpenLocation:
		return m, m.openMapCmd(a.Geo)
	}
	return m, nil
}

// mouseEvent converts a terminal mouse message to a surface event. The
// pointer is placed on the upper pixel of its cell. Presses carry no
// meaning for the overlay and are dropped.
func mouseEvent(msg tea.MouseMsg) (interact.Event, bool) {
	pos := geo.MapPoint{X: float64(msg.X), Y: float64(msg.Y * 2)}

	if tea.MouseEvent(msg).IsWheel() {
		return interact.Event{Kind: interact.KindWheel, Pos: pos}, true
	}
	switch msg.Action {
	case tea.MouseActionMotion:
		return interact.Event{Kind: interact.KindMotion, Pos: pos}, true
	case tea.MouseActionRelease:
		return interact.Event{Kind: interact.KindButtonRelease, Button: mouseButton(msg.Button), Pos: pos}, true
	}
	return interact.Event{}, false
}

func mouseButton(b tea.MouseButton) interact.Button {
	switch b {
	case tea.MouseButtonLeft:
		return interact.ButtonLeft
	case tea.MouseButtonRight:
		return interact.ButtonRight
	case tea.MouseButtonMiddle:
		return interact.ButtonMiddle
	default:
		return interact.ButtonNone
	}
}

// activate runs the highlighted menu item and closes the menu.
func (m Model) activate() (tea.Model, tea.Cmd) {
	menu := m.Menu
	m.Menu = nil
	item := menu.Selected()
	logging.Logf(m.log, logging.SeverityDebug, "overlay: menu item %q", item.Label)

	switch item.Action {
	case MenuOpenMap:
		return m, m.openMapCmd(menu.Geo)
	case MenuCopy:
		return m, m.copyCmd(menu.Geo)
	case MenuReload:
		return m, m.reloadCmd()
	case MenuAbout:
		m.ShowAbout = true
	case MenuExit:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) tickCmd() tea.Cmd {
	gen, active := m.ctrl.TimerGeneration()
	if !active {
		return nil
	}
	return tea.Tick(m.ctrl.Interval(), func(t time.Time) tea.Msg {
		return MsgTick{Gen: gen, At: t}
	})
}

func (m Model) setScreenCmd(width, height int) tea.Cmd {
	if m.settings == nil {
		return nil
	}
	src := m.settings
	return func() tea.Msg {
		src.SetScreen(width, height)
		return nil
	}
}

func (m Model) reloadCmd() tea.Cmd {
	if m.settings == nil {
		return nil
	}
	src := m.settings
	return func() tea.Msg {
		src.Reload()
		return nil
	}
}

func (m Model) openMapCmd(p geo.GeoPoint) tea.Cmd {
	url := geo.MapURL(m.ctrl.Snapshot().MapHost, p)
	opener, log := m.opener, m.log
	return func() tea.Msg {
		if opener == nil {
			return MsgActionDone{Err: fmt.Errorf("tui: no url opener configured")}
		}
		if err := opener.Open(url); err != nil {
			return MsgActionDone{Err: err}
		}
		logging.Logf(log, logging.SeverityOutput, "opened %s", url)
		return MsgActionDone{Text: "Opened map at " + p.String()}
	}
}

func (m Model) copyCmd(p geo.GeoPoint) tea.Cmd {
	copier := m.copier
	text := p.String()
	return func() tea.Msg {
		if copier == nil {
			return MsgActionDone{Err: fmt.Errorf("tui: no clipboard configured")}
		}
		if err := copier.Copy(text); err != nil {
			return MsgActionDone{Err: err}
		}
		return MsgActionDone{Text: "Copied " + text}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}
	r := NewRaster(m.Width, m.Height)
	m.ctrl.Render(r)

	if m.Status != "" {
		style := styleStatus
		if m.StatusErr {
			style = styleStatusError
		}
		r.Overlay(0, m.Height-1, style.Render(m.Status))
	}
	if m.Menu != nil {
		r.Overlay(m.Menu.Col, m.Menu.Row, m.Menu.View())
	}
	if m.ShowAbout {
		box := RenderAbout(m.about, m.ctrl.Snapshot())
		col, row := centerOffset(box, m.Width, m.Height)
		r.Overlay(col, row, box)
	}
	return r.Render()
}
