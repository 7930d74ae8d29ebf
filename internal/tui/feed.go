package tui

import (
	"sync"
	"time"

	"github.com/rentwheels/rental-admin/internal/editor"
)

const maxToasts = 3

type toast struct {
	editor.Notification
	at time.Time
}

// feed collects editor notifications and the last successful sync. Editor
// callbacks run inside tea.Cmd goroutines, so access is locked.
type feed struct {
	mu     sync.Mutex
	toasts []toast
	synced time.Time
	now    func() time.Time
}

func newFeed() *feed {
	return &feed{now: time.Now}
}

// Notify implements editor.Notifier.
func (f *feed) Notify(n editor.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toasts = append(f.toasts, toast{Notification: n, at: f.now()})
	if len(f.toasts) > maxToasts {
		f.toasts = f.toasts[len(f.toasts)-maxToasts:]
	}
}

func (f *feed) markSynced() {
	f.mu.Lock()
	f.synced = f.now()
	f.mu.Unlock()
}

func (f *feed) snapshot() ([]toast, time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]toast, len(f.toasts))
	copy(out, f.toasts)
	return out, f.synced
}
