package giveaway

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Notifier delivers one message to one member. Implementations must not
// panic; errors are handled by the Dispatcher.
type Notifier interface {
	Notify(ctx context.Context, senderID, recipientID, itemID int64, body string) error
}

// Note is a single pending notification.
type Note struct {
	RecipientID int64
	Body        string
}

const dispatchTimeout = 10 * time.Second

// Dispatcher sends notifications best-effort: failures are logged and
// swallowed, never rolled back into the already-committed state transition.
type Dispatcher struct {
	notifier Notifier
}

func NewDispatcher(n Notifier) *Dispatcher {
	return &Dispatcher{notifier: n}
}

// Dispatch fans the notes out concurrently and returns once all attempts
// finished. It never returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, senderID, itemID int64, notes ...Note) {
	if d == nil || d.notifier == nil || len(notes) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, note := range notes {
		note := note
		g.Go(func() error {
			if err := d.notifier.Notify(gctx, senderID, note.RecipientID, itemID, note.Body); err != nil {
				slog.Error("Failed to deliver giveaway notification",
					slog.Int64("sender_id", senderID),
					slog.Int64("recipient_id", note.RecipientID),
					slog.Int64("item_id", itemID),
					slog.Any("error", err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
