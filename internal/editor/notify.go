package editor

import (
	"context"

	"github.com/rentwheels/rental-admin/internal/domain"
)

// Level is the severity of a user-facing notification
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelDestructive
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelDestructive:
		return "destructive"
	default:
		return "info"
	}
}

// Notification is a transient, non-blocking message for the operator
type Notification struct {
	Title   string
	Message string
	Level   Level
}

// Notifier receives notifications raised by an Editor
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(n Notification)

// Notify implements Notifier
func (f NotifierFunc) Notify(n Notification) { f(n) }

// InvalidateFunc is called after every successful remote mutation so that
// cached entry lists for the owner can be refreshed elsewhere
type InvalidateFunc func(ctx context.Context, kind domain.EntryKind, ownerID string)

// notification titles
const (
	titleAddFailed      = "Error adding FAQ"
	titleUpdateFailed   = "Error updating FAQ"
	titleDeleteFailed   = "Error deleting FAQ"
	titleOrderFailed    = "Error saving FAQ order"
	titleIncomplete     = "Incomplete FAQ"
	titleAdded          = "FAQ added"
	titleUpdated        = "FAQ updated"
	titleDeleted        = "FAQ deleted"
	titleOrderSaved     = "FAQ order saved"
	titleUnsavedEntries = "Unsaved FAQs"
)

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}
