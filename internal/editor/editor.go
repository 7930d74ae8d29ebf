// Package editor keeps an ordered list of question/answer entries for one
// owner aggregate in local state and synchronizes create, update and delete
// with a remote Store, one entry at a time.
//
// Entries are addressed by index, as the UI shows them. Internally every
// entry carries a stable key so that responses arriving after the list has
// changed (another entry removed, list reordered, owner switched) are applied
// to the right entry or dropped.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rentwheels/rental-admin/internal/domain"
	"github.com/rs/zerolog"
)

var (
	// ErrBusy is returned when a request is already in flight for the editor or entry
	ErrBusy = errors.New("editor: request in flight")
	// ErrIncomplete is returned when an entry has a blank question or answer
	ErrIncomplete = errors.New("editor: question and answer are required")
	// ErrIndexOutOfRange is returned for indices that do not reference an entry
	ErrIndexOutOfRange = errors.New("editor: index out of range")
	// ErrStale is returned when a response arrives after Reset switched owners
	ErrStale = errors.New("editor: owner changed while request was in flight")
	// ErrUnsaved is returned by SaveOrder while some entries have no id yet
	ErrUnsaved = errors.New("editor: unsaved entries")
)

// NoIndex marks an unset editing or saving index
const NoIndex = -1

// Field names an editable entry field
type Field int

const (
	FieldQuestion Field = iota
	FieldAnswer
)

// Entry is one question/answer record. ID is empty until the entry has been
// persisted by the store.
type Entry struct {
	ID       string
	Question string
	Answer   string
	OwnerID  string
	Kind     domain.EntryKind
}

// Persisted reports whether the entry has a server-assigned identity
func (e Entry) Persisted() bool { return e.ID != "" }

// EntryFromResponse converts a server record to an Entry
func EntryFromResponse(r domain.EntryResponse) Entry {
	return Entry{
		ID:       r.ID,
		Question: r.Question,
		Answer:   r.Answer,
		OwnerID:  r.OwnerID,
		Kind:     r.Kind,
	}
}

// Store is the remote collection behind an editor
type Store interface {
	CreateEntry(ctx context.Context, req domain.CreateEntryRequest) (*domain.EntryResponse, error)
	UpdateEntry(ctx context.Context, id string, req domain.UpdateEntryRequest) (*domain.EntryResponse, error)
	DeleteEntry(ctx context.Context, kind domain.EntryKind, id string) error
	ReorderEntries(ctx context.Context, req domain.ReorderEntriesRequest) error
}

// State is a point-in-time copy of the editor's list state
type State struct {
	Errors       map[int]string
	Entries      []Entry
	EditingIndex int
	SavingIndex  int
}

// Options configures an Editor
type Options struct {
	Store      Store
	Notifier   Notifier
	Invalidate InvalidateFunc
	Logger     *zerolog.Logger
	Kind       domain.EntryKind
	OwnerID    string
	Entries    []Entry
}

type item struct {
	entry Entry
	key   uint64
}

// Editor is the ordered editable list. It is safe for concurrent use; the
// lock is never held while a store call is outstanding.
type Editor struct {
	store      Store
	notifier   Notifier
	invalidate InvalidateFunc
	log        zerolog.Logger

	mu         sync.Mutex
	kind       domain.EntryKind
	ownerID    string
	items      []item
	nextKey    uint64
	editingKey uint64
	savingKey  uint64
	deleting   map[uint64]bool
	errors     map[uint64]string
	generation uint64
}

// New creates an Editor seeded with opts.Entries
func New(opts Options) (*Editor, error) {
	if opts.Store == nil {
		return nil, errors.New("editor: store is required")
	}
	if !opts.Kind.IsValid() {
		return nil, fmt.Errorf("editor: unknown kind %q", opts.Kind)
	}

	e := &Editor{
		store:      opts.Store,
		notifier:   opts.Notifier,
		invalidate: opts.Invalidate,
		kind:       opts.Kind,
	}
	if e.notifier == nil {
		e.notifier = nopNotifier{}
	}
	if opts.Logger != nil {
		e.log = opts.Logger.With().Str("component", "editor").Str("kind", string(opts.Kind)).Logger()
	} else {
		e.log = zerolog.Nop()
	}

	e.reset(opts.OwnerID, opts.Entries)
	return e, nil
}

// Kind returns the collection discriminator of this editor
func (e *Editor) Kind() domain.EntryKind { return e.kind }

// OwnerID returns the current owner aggregate id
func (e *Editor) OwnerID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ownerID
}

// Reset re-seeds the list, typically because the owning aggregate changed.
// Responses to requests issued before Reset are discarded.
func (e *Editor) Reset(ownerID string, entries []Entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset(ownerID, entries)
}

func (e *Editor) reset(ownerID string, entries []Entry) {
	e.generation++
	e.ownerID = ownerID
	e.items = make([]item, 0, len(entries))
	for _, entry := range entries {
		entry.Kind = e.kind
		if entry.OwnerID == "" {
			entry.OwnerID = ownerID
		}
		e.items = append(e.items, item{key: e.newKey(), entry: entry})
	}
	e.editingKey = 0
	e.savingKey = 0
	e.deleting = make(map[uint64]bool)
	e.errors = make(map[uint64]string)
}

func (e *Editor) newKey() uint64 {
	e.nextKey++
	return e.nextKey
}

// Snapshot returns a copy of the current list state
func (e *Editor) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := State{
		Entries:      make([]Entry, len(e.items)),
		EditingIndex: NoIndex,
		SavingIndex:  NoIndex,
		Errors:       make(map[int]string, len(e.errors)),
	}
	for i, it := range e.items {
		st.Entries[i] = it.entry
		if it.key == e.editingKey {
			st.EditingIndex = i
		}
		if it.key == e.savingKey {
			st.SavingIndex = i
		}
		if msg, ok := e.errors[it.key]; ok {
			st.Errors[i] = msg
		}
	}
	return st
}

// Len returns the number of entries
func (e *Editor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}

// Add appends a blank entry and opens it for editing. If an existing entry
// has a blank question or answer, nothing is appended: that entry gets an
// error and is opened for editing instead.
func (e *Editor) Add() error {
	e.mu.Lock()
	for _, it := range e.items {
		if msg := validate(it.entry); msg != "" {
			e.errors[it.key] = msg
			e.editingKey = it.key
			e.mu.Unlock()
			e.notifier.Notify(Notification{
				Level:   LevelWarning,
				Title:   titleIncomplete,
				Message: "Complete the open FAQ before adding another one",
			})
			return ErrIncomplete
		}
	}

	key := e.newKey()
	e.items = append(e.items, item{
		key:   key,
		entry: Entry{Kind: e.kind, OwnerID: e.ownerID},
	})
	e.editingKey = key
	e.mu.Unlock()
	return nil
}

// Edit opens the entry at index for editing
func (e *Editor) Edit(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.savingKey != 0 {
		return ErrBusy
	}
	it, err := e.itemAt(index)
	if err != nil {
		return err
	}
	if e.deleting[it.key] {
		return ErrBusy
	}
	e.editingKey = it.key
	return nil
}

// CancelEdit leaves edit mode without touching entry values
func (e *Editor) CancelEdit() {
	e.mu.Lock()
	e.editingKey = 0
	e.mu.Unlock()
}

// ChangeField sets one field of the entry at index and clears its error.
// No validation or remote call happens here.
func (e *Editor) ChangeField(index int, field Field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	it, err := e.itemAt(index)
	if err != nil {
		return err
	}
	if it.key == e.savingKey || e.deleting[it.key] {
		return ErrBusy
	}

	switch field {
	case FieldQuestion:
		e.items[index].entry.Question = value
	case FieldAnswer:
		e.items[index].entry.Answer = value
	default:
		return fmt.Errorf("editor: unknown field %d", field)
	}
	delete(e.errors, it.key)
	return nil
}

// Ref identifies an entry independently of its position, so a caller can
// resolve the target once and act on it after the list was reordered.
type Ref uint64

// RefAt returns the Ref of the entry currently at index
func (e *Editor) RefAt(index int) (Ref, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	it, err := e.itemAt(index)
	if err != nil {
		return 0, err
	}
	return Ref(it.key), nil
}

// Submit validates the entry at index and persists it: a create for entries
// without id, an update otherwise. Only one submit may be in flight per
// editor; further calls return ErrBusy without reaching the store. Entries
// with a delete in flight are busy as well.
func (e *Editor) Submit(ctx context.Context, index int) error {
	e.mu.Lock()
	return e.submit(ctx, index)
}

// SubmitRef is Submit for the entry identified by ref, wherever it sits now.
func (e *Editor) SubmitRef(ctx context.Context, ref Ref) error {
	e.mu.Lock()
	return e.submit(ctx, e.indexOf(uint64(ref)))
}

// submit runs with e.mu held and releases it.
func (e *Editor) submit(ctx context.Context, index int) error {
	if e.savingKey != 0 {
		e.mu.Unlock()
		return ErrBusy
	}
	it, err := e.itemAt(index)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if e.deleting[it.key] {
		e.mu.Unlock()
		return ErrBusy
	}
	if msg := validate(it.entry); msg != "" {
		e.errors[it.key] = msg
		e.editingKey = it.key
		e.mu.Unlock()
		e.notifier.Notify(Notification{Level: LevelWarning, Title: titleIncomplete, Message: msg})
		return ErrIncomplete
	}

	delete(e.errors, it.key)
	e.items[index].entry.Question = strings.TrimSpace(it.entry.Question)
	e.items[index].entry.Answer = strings.TrimSpace(it.entry.Answer)
	entry := e.items[index].entry
	key := it.key
	gen := e.generation
	e.savingKey = key
	e.mu.Unlock()

	var (
		created *domain.EntryResponse
		reqErr  error
	)
	if entry.Persisted() {
		_, reqErr = e.store.UpdateEntry(ctx, entry.ID, domain.UpdateEntryRequest{
			Question: entry.Question,
			Answer:   entry.Answer,
		})
	} else {
		created, reqErr = e.store.CreateEntry(ctx, domain.CreateEntryRequest{
			Kind:     entry.Kind,
			OwnerID:  entry.OwnerID,
			Question: entry.Question,
			Answer:   entry.Answer,
		})
		if reqErr == nil && (created == nil || created.ID == "") {
			reqErr = errors.New("create response carries no id")
		}
	}

	e.mu.Lock()
	if gen != e.generation {
		e.mu.Unlock()
		e.log.Debug().Str("entry_id", entry.ID).Msg("dropping submit response for previous owner")
		return ErrStale
	}
	e.savingKey = 0
	if e.editingKey == key {
		e.editingKey = 0
	}

	if reqErr != nil {
		e.mu.Unlock()
		title, op := titleUpdateFailed, "update"
		if !entry.Persisted() {
			title, op = titleAddFailed, "create"
		}
		e.log.Warn().Err(reqErr).Str("owner_id", entry.OwnerID).Str("op", op).Msg("entry mutation failed")
		e.notifier.Notify(Notification{Level: LevelDestructive, Title: title, Message: reqErr.Error()})
		return fmt.Errorf("%s entry: %w", op, reqErr)
	}

	title := titleUpdated
	if created != nil {
		title = titleAdded
		// Remove refuses the saving entry, so it is still in the list
		if idx := e.indexOf(key); idx >= 0 {
			e.items[idx].entry = EntryFromResponse(*created)
		}
	}
	ownerID := e.ownerID
	e.mu.Unlock()

	e.afterMutation(ctx, ownerID)
	e.notifier.Notify(Notification{Level: LevelInfo, Title: title})
	return nil
}

// Remove deletes the entry at index. Unsaved entries are dropped locally;
// persisted ones are deleted remotely first and dropped on success. Edit
// mode on the entry ends immediately. The entry being saved, whether a
// create or an update, cannot be removed until its response arrives.
func (e *Editor) Remove(ctx context.Context, index int) error {
	e.mu.Lock()
	return e.remove(ctx, index)
}

// RemoveRef is Remove for the entry identified by ref.
func (e *Editor) RemoveRef(ctx context.Context, ref Ref) error {
	e.mu.Lock()
	return e.remove(ctx, e.indexOf(uint64(ref)))
}

// remove runs with e.mu held and releases it.
func (e *Editor) remove(ctx context.Context, index int) error {
	it, err := e.itemAt(index)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if e.deleting[it.key] || it.key == e.savingKey {
		e.mu.Unlock()
		return ErrBusy
	}
	if e.editingKey == it.key {
		e.editingKey = 0
	}

	if !it.entry.Persisted() {
		e.splice(index)
		e.mu.Unlock()
		return nil
	}

	key := it.key
	gen := e.generation
	e.deleting[key] = true
	e.mu.Unlock()

	reqErr := e.store.DeleteEntry(ctx, it.entry.Kind, it.entry.ID)

	e.mu.Lock()
	if gen != e.generation {
		e.mu.Unlock()
		return ErrStale
	}
	delete(e.deleting, key)
	if reqErr != nil {
		e.mu.Unlock()
		e.log.Warn().Err(reqErr).Str("entry_id", it.entry.ID).Msg("entry delete failed")
		e.notifier.Notify(Notification{Level: LevelDestructive, Title: titleDeleteFailed, Message: reqErr.Error()})
		return fmt.Errorf("delete entry: %w", reqErr)
	}
	if idx := e.indexOf(key); idx >= 0 {
		e.splice(idx)
	}
	ownerID := e.ownerID
	e.mu.Unlock()

	e.afterMutation(ctx, ownerID)
	e.notifier.Notify(Notification{Level: LevelInfo, Title: titleDeleted})
	return nil
}

// Reorder moves the entry at from to position to. It is purely local.
func (e *Editor) Reorder(from, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.itemAt(from); err != nil {
		return err
	}
	if _, err := e.itemAt(to); err != nil {
		return err
	}
	e.items = Move(e.items, from, to)
	return nil
}

// SaveOrder persists the current order of the list. Every entry must have
// been saved first.
func (e *Editor) SaveOrder(ctx context.Context) error {
	e.mu.Lock()
	ids := make([]string, 0, len(e.items))
	for _, it := range e.items {
		if !it.entry.Persisted() {
			e.mu.Unlock()
			e.notifier.Notify(Notification{
				Level:   LevelWarning,
				Title:   titleUnsavedEntries,
				Message: "Save every FAQ before saving the order",
			})
			return ErrUnsaved
		}
		ids = append(ids, it.entry.ID)
	}
	ownerID := e.ownerID
	gen := e.generation
	e.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}

	err := e.store.ReorderEntries(ctx, domain.ReorderEntriesRequest{
		Kind:    e.kind,
		OwnerID: ownerID,
		IDs:     ids,
	})

	e.mu.Lock()
	stale := gen != e.generation
	e.mu.Unlock()
	if stale {
		return ErrStale
	}
	if err != nil {
		e.notifier.Notify(Notification{Level: LevelDestructive, Title: titleOrderFailed, Message: err.Error()})
		return fmt.Errorf("save order: %w", err)
	}

	e.afterMutation(ctx, ownerID)
	e.notifier.Notify(Notification{Level: LevelInfo, Title: titleOrderSaved})
	return nil
}

func (e *Editor) afterMutation(ctx context.Context, ownerID string) {
	if e.invalidate != nil {
		e.invalidate(ctx, e.kind, ownerID)
	}
}

// itemAt must be called with e.mu held
func (e *Editor) itemAt(index int) (item, error) {
	if index < 0 || index >= len(e.items) {
		return item{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return e.items[index], nil
}

// indexOf must be called with e.mu held
func (e *Editor) indexOf(key uint64) int {
	for i, it := range e.items {
		if it.key == key {
			return i
		}
	}
	return NoIndex
}

// splice must be called with e.mu held
func (e *Editor) splice(index int) {
	key := e.items[index].key
	e.items = append(e.items[:index], e.items[index+1:]...)
	delete(e.errors, key)
	if e.editingKey == key {
		e.editingKey = 0
	}
}

func validate(entry Entry) string {
	q := strings.TrimSpace(entry.Question) == ""
	a := strings.TrimSpace(entry.Answer) == ""
	switch {
	case q && a:
		return "Question and answer are required"
	case q:
		return "Question is required"
	case a:
		return "Answer is required"
	}
	return ""
}
