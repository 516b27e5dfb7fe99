package page

import (
	"image"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/luna-scenes/scene"
	"github.com/lixenwraith/luna-scenes/status"
)

// Manager owns the current page and keeps its scenes placed on the screen
// All methods run on the frame goroutine
type Manager struct {
	stage *scene.Stage
	pages []Page
	log   zerolog.Logger
	reg   *status.Registry

	// omit lists selectors whose element is absent; their scenes never start
	omit map[string]bool

	current    Page
	started    []string
	cols, rows int
	scroll     int
}

// NewManager creates a manager with no page shown
func NewManager(stage *scene.Stage, pages []Page, omit []string, reg *status.Registry, log zerolog.Logger) *Manager {
	m := &Manager{
		stage: stage,
		pages: pages,
		log:   log,
		reg:   reg,
		omit:  make(map[string]bool, len(omit)),
	}
	for _, sel := range omit {
		m.omit[sel] = true
	}
	return m
}

// Current returns the shown page name, empty before the first Switch
func (m *Manager) Current() Name {
	return m.current.Name
}

// Pages returns the declared page names in order
func (m *Manager) Pages() []Name {
	out := make([]Name, len(m.pages))
	for i, p := range m.pages {
		out[i] = p.Name
	}
	return out
}

// Scroll returns the current scroll offset in rows
func (m *Manager) Scroll() int {
	return m.scroll
}

// Switch stops the shown page's scenes and starts those of name
// Containers that cannot start are skipped
func (m *Manager) Switch(name Name) error {
	p, err := Lookup(m.pages, name)
	if err != nil {
		return err
	}
	for _, sel := range m.started {
		m.stage.Stop(sel)
	}
	m.started = m.started[:0]
	m.current = p
	m.scroll = 0

	for _, c := range p.Containers {
		if m.omit[c.Selector] {
			m.log.Debug().Str("selector", c.Selector).Msg("container absent, scene not started")
			continue
		}
		mount := scene.Mount{Selector: c.Selector, Variant: c.Variant, Rect: m.rect(c), Opacity: c.Opacity}
		if err := m.stage.Start(mount); err != nil {
			m.log.Warn().Err(err).Str("selector", c.Selector).Msg("scene not started")
			continue
		}
		m.started = append(m.started, c.Selector)
	}
	m.stage.SetViewport(m.Viewport())
	if m.reg != nil {
		m.reg.Strings.Get(status.KeyPage).Store(string(name))
	}
	m.log.Info().Str("page", string(name)).Int("scenes", len(m.started)).Msg("page shown")
	return nil
}

// Next shows the page after the current one, wrapping around
func (m *Manager) Next() error {
	if len(m.pages) == 0 {
		return nil
	}
	i := 0
	for j, p := range m.pages {
		if p.Name == m.current.Name {
			i = (j + 1) % len(m.pages)
			break
		}
	}
	return m.Switch(m.pages[i].Name)
}

// Resize follows a new screen size and moves every scene
func (m *Manager) Resize(cols, rows int) {
	m.cols, m.rows = max(cols, 0), max(rows, 0)
	m.scroll = min(m.scroll, m.maxScroll())
	m.relayout()
}

// ScrollBy moves the page by delta rows, clamped to its height
func (m *Manager) ScrollBy(delta int) {
	next := min(max(m.scroll+delta, 0), m.maxScroll())
	if next == m.scroll {
		return
	}
	m.scroll = next
	m.relayout()
}

// Viewport is the visible screen in cells
func (m *Manager) Viewport() image.Rectangle {
	return image.Rect(0, 0, m.cols, m.rows)
}

// Rect returns where the container with selector sits on screen
func (m *Manager) Rect(selector string) (image.Rectangle, bool) {
	for _, c := range m.current.Containers {
		if c.Selector == selector {
			return m.rect(c), true
		}
	}
	return image.Rectangle{}, false
}

func (m *Manager) maxScroll() int {
	return max(m.current.Rows(m.rows)-m.rows, 0)
}

func (m *Manager) rect(c Container) image.Rectangle {
	if c.Fixed {
		return c.Box.rect(m.cols, m.rows)
	}
	return c.Box.rect(m.cols, m.current.Rows(m.rows)).Sub(image.Pt(0, m.scroll))
}

func (m *Manager) relayout() {
	for _, c := range m.current.Containers {
		m.stage.Resize(c.Selector, m.rect(c))
	}
	m.stage.SetViewport(m.Viewport())
}
