package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-admin/internal/domain"
	"github.com/rentwheels/rental-admin/internal/editor"
	"github.com/rentwheels/rental-admin/internal/entryclient"
)

// Backend is the remote entry collection: the editor's store plus listing.
type Backend interface {
	editor.Store
	ListEntries(ctx context.Context, kind domain.EntryKind, ownerID string) ([]domain.EntryResponse, error)
}

// Options configure the editor TUI.
type Options struct {
	Context   context.Context
	Backend   Backend
	Kind      domain.EntryKind
	OwnerID   string
	Logger    *zerolog.Logger
	Prefs     Prefs
	PrefsPath string
}

const titleLoadFailed = "Error loading FAQs"

// Messages

type loadedMsg struct {
	ownerID string
	entries []editor.Entry
	err     error
}

type opDoneMsg struct {
	op  string
	err error
}

// Model is the Bubble Tea model of the FAQ editor.
type Model struct {
	ctx       context.Context
	backend   Backend
	editor    *editor.Editor
	feed      *feed
	log       zerolog.Logger
	prefs     Prefs
	prefsPath string

	keys   keyMap
	help   help.Model
	theme  Theme
	styles Styles

	width  int
	height int
	cursor int

	loading  bool
	showHelp bool

	// owner prompt
	askOwner   bool
	ownerInput textinput.Model

	// edit form
	formIndex int
	field     editor.Field
	question  textinput.Model
	answer    textarea.Model
}

// New creates the model and its editor.
func New(opts Options) (Model, error) {
	if opts.Backend == nil {
		return Model{}, errors.New("tui: backend is required")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "tui").Logger()
	}

	f := newFeed()
	ed, err := editor.New(editor.Options{
		Store:    opts.Backend,
		Notifier: f,
		Invalidate: func(context.Context, domain.EntryKind, string) {
			f.markSynced()
		},
		Logger:  opts.Logger,
		Kind:    opts.Kind,
		OwnerID: strings.TrimSpace(opts.OwnerID),
	})
	if err != nil {
		return Model{}, err
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = DefaultPrefsPath()
	}

	theme := GetTheme(opts.Prefs.Theme)
	m := Model{
		ctx:        ctx,
		backend:    opts.Backend,
		editor:     ed,
		feed:       f,
		log:        log,
		prefs:      opts.Prefs,
		prefsPath:  prefsPath,
		keys:       defaultKeyMap(),
		help:       help.New(),
		theme:      theme,
		styles:     theme.Styles(),
		formIndex:  editor.NoIndex,
		question:   newQuestionInput(),
		answer:     newAnswerInput(),
		ownerInput: newOwnerInput(),
	}
	if ed.OwnerID() == "" {
		m.openOwnerPrompt()
	} else {
		m.loading = true
	}
	return m, nil
}

func newQuestionInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Question"
	ti.CharLimit = 500
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newAnswerInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Answer"
	ta.ShowLineNumbers = false
	ta.SetHeight(5)
	ta.CharLimit = 5000
	ta.Cursor.SetMode(cursor.CursorStatic)
	return ta
}

func newOwnerInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "owner id"
	ti.CharLimit = 36
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.askOwner {
		return nil
	}
	return m.loadCmd(m.editor.OwnerID())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - 6; w > 10 {
			m.question.Width = w
			m.answer.SetWidth(w)
		}
		return m, nil

	case loadedMsg:
		// 다른 owner 로 전환된 뒤 도착한 응답은 버린다
		if msg.ownerID != m.editor.OwnerID() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("owner_id", msg.ownerID).Msg("list entries failed")
			m.feed.Notify(editor.Notification{Level: editor.LevelDestructive, Title: titleLoadFailed, Message: msg.err.Error()})
			return m, nil
		}
		m.editor.Reset(msg.ownerID, msg.entries)
		m.feed.markSynced()
		m.cursor = 0
		m.syncForm()
		return m, nil

	case opDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, editor.ErrStale) {
			m.log.Debug().Err(msg.err).Str("op", msg.op).Msg("editor operation finished with error")
		}
		m.clampCursor()
		m.syncForm()
		// 서버에서 이미 지워진 항목이면 목록을 다시 받아온다
		if entryclient.IsNotFound(msg.err) && !m.loading {
			m.loading = true
			return m, m.loadCmd(m.editor.OwnerID())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.askOwner {
		return m.handleOwnerKey(msg)
	}

	if m.editor.Snapshot().EditingIndex != editor.NoIndex {
		return m.handleFormKey(msg)
	}

	if m.loading {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.editor.Len()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.MoveUp):
		if m.cursor > 0 && m.editor.Reorder(m.cursor, m.cursor-1) == nil {
			m.cursor--
		}

	case key.Matches(msg, m.keys.MoveDown):
		if m.cursor < m.editor.Len()-1 && m.editor.Reorder(m.cursor, m.cursor+1) == nil {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		if err := m.editor.Add(); err == nil {
			m.cursor = m.editor.Len() - 1
		}
		m.syncForm()

	case key.Matches(msg, m.keys.Edit):
		if m.editor.Len() > 0 {
			_ = m.editor.Edit(m.cursor)
			m.syncForm()
		}

	case key.Matches(msg, m.keys.Delete):
		if ref, err := m.editor.RefAt(m.cursor); err == nil {
			return m, m.removeCmd(ref)
		}

	case key.Matches(msg, m.keys.SaveOrder):
		return m, m.saveOrderCmd()

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadCmd(m.editor.OwnerID())

	case key.Matches(msg, m.keys.Owner):
		m.openOwnerPrompt()

	case key.Matches(msg, m.keys.Theme):
		m.prefs.Theme = NextTheme(m.theme.Name)
		m.theme = GetTheme(m.prefs.Theme)
		m.styles = m.theme.Styles()
		m.savePrefs()
	}

	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.editor.Snapshot()
	index := st.EditingIndex
	saving := st.SavingIndex == index

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editor.CancelEdit()
		m.syncForm()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.toggleField()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if st.SavingIndex != editor.NoIndex {
			return m, nil
		}
		ref, err := m.editor.RefAt(index)
		if err != nil {
			return m, nil
		}
		return m, m.submitCmd(ref)
	}

	// 저장 중인 항목은 수정할 수 없다
	if saving {
		return m, nil
	}

	var cmd tea.Cmd
	if m.field == editor.FieldQuestion {
		m.question, cmd = m.question.Update(msg)
		_ = m.editor.ChangeField(index, editor.FieldQuestion, m.question.Value())
	} else {
		m.answer, cmd = m.answer.Update(msg)
		_ = m.editor.ChangeField(index, editor.FieldAnswer, m.answer.Value())
	}
	return m, cmd
}

func (m Model) handleOwnerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// 최초 owner 가 없으면 닫을 수 없다
		if m.editor.OwnerID() != "" {
			m.askOwner = false
			m.ownerInput.Blur()
		}
		return m, nil

	case tea.KeyEnter:
		owner := strings.TrimSpace(m.ownerInput.Value())
		if owner == "" {
			return m, nil
		}
		m.askOwner = false
		m.ownerInput.Blur()
		if owner == m.editor.OwnerID() && !m.loading {
			return m, nil
		}

		m.editor.Reset(owner, nil)
		m.cursor = 0
		m.loading = true
		m.syncForm()
		m.prefs.LastOwner = owner
		m.savePrefs()
		return m, m.loadCmd(owner)
	}

	var cmd tea.Cmd
	m.ownerInput, cmd = m.ownerInput.Update(msg)
	return m, cmd
}

func (m *Model) openOwnerPrompt() {
	m.askOwner = true
	m.ownerInput.SetValue(m.editor.OwnerID())
	m.ownerInput.CursorEnd()
	m.ownerInput.Focus()
}

func (m *Model) toggleField() {
	if m.field == editor.FieldQuestion {
		m.field = editor.FieldAnswer
		m.question.Blur()
		m.answer.Focus()
		return
	}
	m.field = editor.FieldQuestion
	m.answer.Blur()
	m.question.Focus()
}

// syncForm loads the form inputs when the editing entry changes.
func (m *Model) syncForm() {
	st := m.editor.Snapshot()
	if st.EditingIndex == m.formIndex {
		return
	}
	m.formIndex = st.EditingIndex
	if st.EditingIndex == editor.NoIndex {
		m.question.Blur()
		m.answer.Blur()
		return
	}

	entry := st.Entries[st.EditingIndex]
	m.cursor = st.EditingIndex
	m.question.SetValue(entry.Question)
	m.question.CursorEnd()
	m.answer.SetValue(entry.Answer)
	m.field = editor.FieldQuestion
	m.answer.Blur()
	m.question.Focus()
}

func (m *Model) clampCursor() {
	n := m.editor.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) savePrefs() {
	m.prefs.LastKind = string(m.editor.Kind())
	if err := SavePrefs(m.prefsPath, m.prefs); err != nil {
		m.log.Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs failed")
	}
}

// Commands

func (m Model) loadCmd(ownerID string) tea.Cmd {
	ctx, backend, kind := m.ctx, m.backend, m.editor.Kind()
	return func() tea.Msg {
		resp, err := backend.ListEntries(ctx, kind, ownerID)
		if err != nil {
			return loadedMsg{ownerID: ownerID, err: err}
		}
		entries := make([]editor.Entry, 0, len(resp))
		for _, r := range resp {
			entries = append(entries, editor.EntryFromResponse(r))
		}
		return loadedMsg{ownerID: ownerID, entries: entries}
	}
}

// submitCmd and removeCmd take a Ref resolved in the key handler; the
// command runs later and the list may have been reordered by then.
func (m Model) submitCmd(ref editor.Ref) tea.Cmd {
	ctx, ed := m.ctx, m.editor
	return func() tea.Msg {
		return opDoneMsg{op: "submit", err: ed.SubmitRef(ctx, ref)}
	}
}

func (m Model) removeCmd(ref editor.Ref) tea.Cmd {
	ctx, ed := m.ctx, m.editor
	return func() tea.Msg {
		return opDoneMsg{op: "remove", err: ed.RemoveRef(ctx, ref)}
	}
}

func (m Model) saveOrderCmd() tea.Cmd {
	ctx, ed := m.ctx, m.editor
	return func() tea.Msg {
		return opDoneMsg{op: "save order", err: ed.SaveOrder(ctx)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
