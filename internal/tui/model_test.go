package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwheels/rental-admin/internal/domain"
	"github.com/rentwheels/rental-admin/internal/editor"
	"github.com/rentwheels/rental-admin/internal/entryclient"
)

var errNotFound = &entryclient.APIError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "entry not found"}

// fakeBackend is an in-memory entry collection keyed by owner
type fakeBackend struct {
	mu       sync.Mutex
	owners   map[string][]domain.EntryResponse
	nextID   int
	listErr  error
	reorders [][]string
	deleted  []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{owners: make(map[string][]domain.EntryResponse)}
}

func (f *fakeBackend) seed(ownerID string, questions ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range questions {
		f.nextID++
		f.owners[ownerID] = append(f.owners[ownerID], domain.EntryResponse{
			ID: fmt.Sprintf("e%d", f.nextID), Kind: domain.EntryKindBrand, OwnerID: ownerID, Question: q, Answer: "answer " + q,
		})
	}
}

func (f *fakeBackend) ids(ownerID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.owners[ownerID]))
	for _, e := range f.owners[ownerID] {
		out = append(out, e.ID)
	}
	return out
}

func (f *fakeBackend) ListEntries(_ context.Context, _ domain.EntryKind, ownerID string) ([]domain.EntryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.EntryResponse(nil), f.owners[ownerID]...), nil
}

func (f *fakeBackend) CreateEntry(_ context.Context, req domain.CreateEntryRequest) (*domain.EntryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e := domain.EntryResponse{
		ID: fmt.Sprintf("e%d", f.nextID), Kind: req.Kind, OwnerID: req.OwnerID, Question: req.Question, Answer: req.Answer,
	}
	f.owners[req.OwnerID] = append(f.owners[req.OwnerID], e)
	return &e, nil
}

func (f *fakeBackend) UpdateEntry(_ context.Context, id string, req domain.UpdateEntryRequest) (*domain.EntryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for owner, list := range f.owners {
		for i := range list {
			if list[i].ID == id {
				f.owners[owner][i].Question = req.Question
				f.owners[owner][i].Answer = req.Answer
				e := f.owners[owner][i]
				return &e, nil
			}
		}
	}
	return nil, errNotFound
}

func (f *fakeBackend) DeleteEntry(_ context.Context, _ domain.EntryKind, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	for owner, list := range f.owners {
		for i := range list {
			if list[i].ID == id {
				f.owners[owner] = append(list[:i:i], list[i+1:]...)
				return nil
			}
		}
	}
	return errNotFound
}

func (f *fakeBackend) ReorderEntries(_ context.Context, req domain.ReorderEntriesRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reorders = append(f.reorders, append([]string(nil), req.IDs...))

	byID := make(map[string]domain.EntryResponse)
	for _, e := range f.owners[req.OwnerID] {
		byID[e.ID] = e
	}
	ordered := make([]domain.EntryResponse, 0, len(req.IDs))
	for _, id := range req.IDs {
		ordered = append(ordered, byID[id])
	}
	f.owners[req.OwnerID] = ordered
	return nil
}

// --- helpers ---

// drain runs cmd and feeds every resulting message back into the model
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command queue did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			return m
		default:
			next, nc := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nc)
		}
	}
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return drain(t, next.(Model), cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, runes(string(r)))
	}
	return m
}

func newTestModel(t *testing.T, backend *fakeBackend, ownerID string) Model {
	t.Helper()
	m, err := New(Options{
		Backend:   backend,
		Kind:      domain.EntryKindBrand,
		OwnerID:   ownerID,
		Prefs:     defaultPrefs(),
		PrefsPath: filepath.Join(t.TempDir(), "faqedit.toml"),
	})
	require.NoError(t, err)
	return drain(t, m, m.Init())
}

func questions(m Model) []string {
	var out []string
	for _, e := range m.editor.Snapshot().Entries {
		out = append(out, e.Question)
	}
	return out
}

func lastToast(t *testing.T, m Model) toast {
	t.Helper()
	toasts, _ := m.feed.snapshot()
	require.NotEmpty(t, toasts)
	return toasts[len(toasts)-1]
}

// --- tests ---

func TestNew_RequiresBackend(t *testing.T) {
	_, err := New(Options{Kind: domain.EntryKindBrand})
	assert.Error(t, err)
}

func TestInit_LoadsOwnerEntries(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b1", "Q1", "Q2")

	m := newTestModel(t, backend, "b1")

	assert.False(t, m.loading)
	assert.Equal(t, []string{"Q1", "Q2"}, questions(m))
	assert.Contains(t, m.View(), "Q1")
}

func TestInit_WithoutOwnerAsksForOne(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b2", "Other")

	m := newTestModel(t, backend, "")
	require.True(t, m.askOwner)
	assert.Nil(t, m.Init())

	m = typeText(t, m, "b2")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.askOwner)
	assert.Equal(t, "b2", m.editor.OwnerID())
	assert.Equal(t, []string{"Other"}, questions(m))
}

func TestAddAndSubmit_CreatesEntry(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b1", "Existing")
	m := newTestModel(t, backend, "b1")

	m = press(t, m, runes("a"))
	require.Equal(t, 1, m.editor.Snapshot().EditingIndex)

	m = typeText(t, m, "  New question ")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "New answer")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	st := m.editor.Snapshot()
	assert.Equal(t, editor.NoIndex, st.EditingIndex)
	require.Len(t, st.Entries, 2)
	assert.Equal(t, "New question", st.Entries[1].Question)
	assert.Equal(t, "New answer", st.Entries[1].Answer)
	assert.True(t, st.Entries[1].Persisted())
	assert.Len(t, backend.ids("b1"), 2)
	assert.Equal(t, "FAQ added", lastToast(t, m).Title)
}

func TestSubmit_IncompleteKeepsForm(t *testing.T) {
	backend := newFakeBackend()
	m := newTestModel(t, backend, "b1")

	m = press(t, m, runes("a"))
	m = typeText(t, m, "Only a question")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	st := m.editor.Snapshot()
	assert.Equal(t, 0, st.EditingIndex)
	assert.NotEmpty(t, st.Errors[0])
	assert.Empty(t, backend.ids("b1"))
	assert.Equal(t, editor.LevelWarning, lastToast(t, m).Level)
}

func TestEdit_UpdatesExistingEntry(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b1", "Q1")
	m := newTestModel(t, backend, "b1")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 0, m.editor.Snapshot().EditingIndex)
	assert.Equal(t, "Q1", m.question.Value())

	m = typeText(t, m, "!")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, []string{"Q1!"}, questions(m))
	entries, err := backend.ListEntries(context.Background(), domain.EntryKindBrand, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Q1!", entries[0].Question)
}

func TestEsc_CancelsEdit(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b1", "Q1")
	m := newTestModel(t, backend, "b1")

	m = press(t, m, runes("e"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, editor.NoIndex, m.editor.Snapshot().EditingIndex)
	assert.Equal(t, editor.NoIndex, m.formIndex)
}

func TestReorderAndSaveOrder(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b1", "A", "B", "C")
	m := newTestModel(t, backend, "b1")

	m = press(t, m, runes("J"))
	assert.Equal(t, []string{"B", "A", "C"}, questions(m))
	assert.Equal(t, 1, m.cursor)
	assert.Empty(t, backend.reorders)

	m = press(t, m, runes("s"))
	require.Len(t, backend.reorders, 1)
	assert.Equal(t, []string{"e2", "e1", "e3"}, backend.reorders[0])
	assert.Equal(t, "FAQ order saved", lastToast(t, m).Title)
}

func TestSaveOrder_RefusesUnsavedEntries(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b1", "A")
	m := newTestModel(t, backend, "b1")

	m = press(t, m, runes("a"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = press(t, m, runes("s"))

	assert.Empty(t, backend.reorders)
	assert.Equal(t, editor.LevelWarning, lastToast(t, m).Level)
}

func TestDelete_RemovesPersistedEntry(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b1", "A", "B")
	m := newTestModel(t, backend, "b1")

	m = press(t, m, runes("j"))
	m = press(t, m, runes("d"))

	assert.Equal(t, []string{"A"}, questions(m))
	assert.Equal(t, []string{"e2"}, backend.deleted)
	assert.Equal(t, 0, m.cursor)
}

func TestDelete_TargetsEntryMovedBeforeCommandRuns(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b1", "A", "B", "C")
	m := newTestModel(t, backend, "b1")

	m = press(t, m, runes("j"))
	next, deleteCmd := m.Update(runes("d"))
	m = next.(Model)
	require.NotNil(t, deleteCmd)

	// B moves to the top while the delete is still queued
	m = press(t, m, runes("K"))
	require.Equal(t, []string{"B", "A", "C"}, questions(m))

	m = drain(t, m, deleteCmd)

	assert.Equal(t, []string{"e2"}, backend.deleted)
	assert.Equal(t, []string{"A", "C"}, questions(m))
}

func TestSubmit_TargetsEntryMovedBeforeCommandRuns(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b1", "A", "B")
	m := newTestModel(t, backend, "b1")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "!")
	next, submitCmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(Model)
	require.NotNil(t, submitCmd)

	require.NoError(t, m.editor.Reorder(0, 1))
	m = drain(t, m, submitCmd)

	assert.Equal(t, []string{"B", "A!"}, questions(m))
	entries, err := backend.ListEntries(context.Background(), domain.EntryKindBrand, "b1")
	require.NoError(t, err)
	assert.Equal(t, "A!", entries[0].Question)
	assert.Equal(t, "B", entries[1].Question)
}

func TestDelete_EntryGoneOnServerReloadsList(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b1", "A", "B")
	m := newTestModel(t, backend, "b1")

	// 다른 관리자가 먼저 지운 경우
	require.NoError(t, backend.DeleteEntry(context.Background(), domain.EntryKindBrand, "e1"))
	require.Equal(t, []string{"A", "B"}, questions(m))

	m = press(t, m, runes("d"))

	assert.Equal(t, []string{"B"}, questions(m))
	assert.False(t, m.loading)
	assert.Equal(t, 0, m.cursor)

	toasts, _ := m.feed.snapshot()
	require.NotEmpty(t, toasts)
	assert.Equal(t, "Error deleting FAQ", toasts[len(toasts)-1].Title)
	assert.Equal(t, editor.LevelDestructive, toasts[len(toasts)-1].Level)
}

func TestLoadedMsg_ForPreviousOwnerIsIgnored(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b1", "A")
	m := newTestModel(t, backend, "b1")

	next, _ := m.Update(loadedMsg{ownerID: "b9", entries: []editor.Entry{{ID: "x", Question: "stale"}}})
	m = next.(Model)

	assert.Equal(t, []string{"A"}, questions(m))
}

func TestOwnerSwitch_ReloadsList(t *testing.T) {
	backend := newFakeBackend()
	backend.seed("b1", "A")
	backend.seed("b2", "X", "Y")
	m := newTestModel(t, backend, "b1")

	m = press(t, m, runes("o"))
	require.True(t, m.askOwner)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = typeText(t, m, "2")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "b2", m.editor.OwnerID())
	assert.Equal(t, []string{"X", "Y"}, questions(m))
	assert.Equal(t, "b2", m.prefs.LastOwner)
}

func TestLoadFailure_Notifies(t *testing.T) {
	backend := newFakeBackend()
	backend.listErr = errors.New("connection refused")

	m := newTestModel(t, backend, "b1")

	assert.False(t, m.loading)
	got := lastToast(t, m)
	assert.Equal(t, titleLoadFailed, got.Title)
	assert.Equal(t, editor.LevelDestructive, got.Level)
	assert.Contains(t, m.View(), "connection refused")
}

func TestThemeToggle_SavesPrefs(t *testing.T) {
	backend := newFakeBackend()
	m := newTestModel(t, backend, "b1")

	m = press(t, m, runes("T"))
	assert.Equal(t, "Paper", m.theme.Name)

	saved, err := LoadPrefs(m.prefsPath)
	require.NoError(t, err)
	assert.Equal(t, "Paper", saved.Theme)
	assert.Equal(t, "BRAND", saved.LastKind)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, newFakeBackend(), "b1")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, newFakeBackend(), "b1")

	m = press(t, m, runes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keys")

	m = press(t, m, runes("x"))
	assert.False(t, m.showHelp)
}

func TestNextTheme_Cycles(t *testing.T) {
	assert.Equal(t, "Paper", NextTheme("Midnight"))
	assert.Equal(t, "Midnight", NextTheme("Paper"))
	assert.Equal(t, "Midnight", NextTheme("unknown"))
	assert.Equal(t, "Midnight", GetTheme("unknown").Name)
}
