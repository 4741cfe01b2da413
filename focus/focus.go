// Package focus implements the focus-section model: named sections
// registered in traversal order each frame, an ordered list of
// focusable element ids per section, an active section cycled by
// Tab/Shift+Tab, arrow navigation between elements of the active
// section, and shortcut-bar resolution that cascades from the active
// section up through its ancestors using merge or replace composition.
package focus

import "sync"

// CascadeMode controls how a section's shortcuts combine with its
// ancestors' when building the shortcut bar.
type CascadeMode int

const (
	// Merge places this section's shortcuts ahead of its ancestors';
	// on a key conflict this section's entry wins.
	Merge CascadeMode = iota
	// Replace discards ancestor shortcuts entirely in favor of this
	// section's own.
	Replace
)

// Shortcut is one entry in the contextual shortcut bar. Action is
// invoked when the matching key arrives at the status-bar dispatch
// layer; a nil Action makes the entry display-only.
type Shortcut struct {
	Key    string
	Label  string
	Action func()
}

// Registration is what a view contributes when it enters the focus
// tree for the current frame.
type Registration struct {
	ID        string
	Parent    string // "" for a root section
	Shortcuts []Shortcut
	Mode      CascadeMode
}

// Manager tracks the current frame's registered sections, each
// section's focusable elements, the active section, and the traversal
// order used for Tab cycling. Registrations are rebuilt every frame:
// BeginFrame clears them, and views re-register themselves during
// their own render.
type Manager struct {
	mu     sync.Mutex
	order  []string
	regs   map[string]Registration
	active string

	// elements holds each section's focusable element ids in the order
	// they registered this frame; focused holds the focused element
	// index per section, surviving across frames so arrow navigation
	// is not reset by a re-render.
	elements map[string][]string
	focused  map[string]int

	// activations maps an element id to the callback fired when the
	// element is activated (Enter/Space) while focused. Rebuilt per
	// frame with the rest of the registrations.
	activations map[string]func()

	// textInput is the element id currently capturing raw text, or ""
	// when no text field has focus.
	textInput string
}

// NewManager creates an empty focus manager.
func NewManager() *Manager {
	return &Manager{
		regs:        make(map[string]Registration),
		elements:    make(map[string][]string),
		focused:     make(map[string]int),
		activations: make(map[string]func()),
	}
}

// BeginFrame clears the prior frame's registrations. Called once before
// each render pass. The active section and per-section focused indexes
// survive so focus does not jump on every render.
func (m *Manager) BeginFrame() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = nil
	m.regs = make(map[string]Registration)
	m.elements = make(map[string][]string)
	m.activations = make(map[string]func())
	m.textInput = ""
}

// Register adds reg to this frame's section tree, in the order views
// are encountered during traversal. Re-registering the same ID within
// a frame replaces its entry without affecting its position in order.
func (m *Manager) Register(reg Registration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.regs[reg.ID]; !exists {
		m.order = append(m.order, reg.ID)
	}
	m.regs[reg.ID] = reg
	if m.active == "" {
		m.active = reg.ID
	}
}

// RegisterElement appends a focusable element to section's tab order
// for this frame. activate, if non-nil, fires when the element is
// activated while focused.
func (m *Manager) RegisterElement(section, elementID string, activate func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elements[section] = append(m.elements[section], elementID)
	if activate != nil {
		m.activations[elementID] = activate
	}
}

// SetTextInput marks elementID as the element currently capturing raw
// text input, cleared at the next BeginFrame.
func (m *Manager) SetTextInput(elementID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textInput = elementID
}

// TextInputActive reports whether a text-input element registered this
// frame. The input dispatcher uses it to enable its text-input layer and
// to skip focus navigation; it does not keep printable keys from the
// shortcut-bar layer, where a shortcut with an Action claims its key
// before any per-view handler sees it.
func (m *Manager) TextInputActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.textInput != ""
}

// SetActive sets the active section explicitly, e.g. on a programmatic
// focus request. No-op if id was not registered this frame.
func (m *Manager) SetActive(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.regs[id]; ok {
		m.active = id
	}
}

// Active returns the currently active section's ID, or "" if nothing
// is registered.
func (m *Manager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Next advances the active section to the next one in registration
// order, wrapping around. It is the Tab key's effect.
func (m *Manager) Next() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = m.stepLocked(1)
}

// Prev moves the active section to the previous one in registration
// order, wrapping around. It is Shift+Tab's effect.
func (m *Manager) Prev() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = m.stepLocked(-1)
}

func (m *Manager) stepLocked(delta int) string {
	n := len(m.order)
	if n == 0 {
		return m.active
	}
	idx := 0
	for i, id := range m.order {
		if id == m.active {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%n + n) % n
	return m.order[idx]
}

// NextElement moves focus to the next element registered in the active
// section, wrapping around. Arrow keys map here.
func (m *Manager) NextElement() {
	m.stepElement(1)
}

// PrevElement moves focus to the previous element in the active
// section, wrapping around.
func (m *Manager) PrevElement() {
	m.stepElement(-1)
}

func (m *Manager) stepElement(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	els := m.elements[m.active]
	n := len(els)
	if n == 0 {
		return
	}
	idx := m.focused[m.active]
	m.focused[m.active] = ((idx+delta)%n + n) % n
}

// FocusedElement returns the id of the focused element within the
// active section, or "" if the section has no elements this frame.
func (m *Manager) FocusedElement() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	els := m.elements[m.active]
	if len(els) == 0 {
		return ""
	}
	idx := m.focused[m.active]
	if idx >= len(els) {
		idx = 0
	}
	return els[idx]
}

// ActivateFocused invokes the focused element's activation callback,
// if it has one. Returns false when nothing is focused or the element
// registered no callback.
func (m *Manager) ActivateFocused() bool {
	m.mu.Lock()
	els := m.elements[m.active]
	var fn func()
	if len(els) > 0 {
		idx := m.focused[m.active]
		if idx >= len(els) {
			idx = 0
		}
		fn = m.activations[els[idx]]
	}
	m.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// SystemShortcuts are the always-visible entries appended to every
// resolved shortcut bar unless a section already claimed their keys:
// quit, palette cycle, appearance cycle. Their Actions are nil, so the
// entries are display-only; the keys themselves are handled by the
// input dispatcher's default bindings.
var SystemShortcuts = []Shortcut{
	{Key: "q", Label: "quit"},
	{Key: "t", Label: "theme"},
	{Key: "a", Label: "appearance"},
}

// ShortcutBar resolves the shortcut list for the currently active
// section by walking from the active section up through its Parent
// chain, stopping (and discarding everything collected from further
// ancestors) the moment a Replace-mode section is reached. The result
// is child-first; on a key conflict between a descendant and an
// ancestor the descendant's entry wins. System shortcuts are appended
// last, also losing any key conflict.
func (m *Manager) ShortcutBar() []Shortcut {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shortcutBarLocked(m.active)
}

func (m *Manager) shortcutBarLocked(id string) []Shortcut {
	var chain []Registration
	for id != "" {
		reg, ok := m.regs[id]
		if !ok {
			break
		}
		chain = append(chain, reg)
		if reg.Mode == Replace {
			break
		}
		id = reg.Parent
	}
	// chain is innermost-first (active section, then its parent, then
	// its grandparent, ...). Emit in that order so the active section's
	// own shortcuts appear first, and skip any ancestor entry whose key
	// an earlier (more specific) entry already claimed.
	seen := make(map[string]bool)
	var out []Shortcut
	for _, reg := range chain {
		for _, s := range reg.Shortcuts {
			if seen[s.Key] {
				continue
			}
			seen[s.Key] = true
			out = append(out, s)
		}
	}
	for _, s := range SystemShortcuts {
		if seen[s.Key] {
			continue
		}
		seen[s.Key] = true
		out = append(out, s)
	}
	return out
}

// Lookup returns the shortcut bound to key in the resolved bar for the
// active section, for the status-bar dispatch layer.
func (m *Manager) Lookup(key string) (Shortcut, bool) {
	for _, s := range m.ShortcutBar() {
		if s.Key == key {
			return s, true
		}
	}
	return Shortcut{}, false
}
