package sender

import (
	"context"
	"fmt"

	"mdt/pkg/metrics"

	"github.com/zeromicro/go-zero/core/logc"
)

type (
	// Field is one labelled line of a notification.
	Field struct {
		Name  string
		Value string
	}

	// Message is a channel-neutral notification.
	Message struct {
		Title   string
		Content string
		Fields  []Field
		// Urgent highlights the message where the channel supports it.
		Urgent bool
		// To lists recipients for channels that address people.
		To []string
	}

	// SendInter delivers a Message over one channel.
	SendInter interface {
		Name() string
		Send(msg Message) error
	}
)

// Sender delivers msg, retrying transient failures. Failures are logged
// and returned; callers treat notifications as best effort.
func Sender(ctx context.Context, s SendInter, msg Message) error {
	if s == nil {
		return nil
	}

	err := DefaultRetry.Do(func() error {
		return s.Send(msg)
	})
	if err != nil {
		metrics.Notifications.WithLabelValues(s.Name(), "failed").Inc()
		logc.Errorf(ctx, "send %q via %s failed: %s", msg.Title, s.Name(), err.Error())
		return fmt.Errorf("send via %s: %w", s.Name(), err)
	}

	metrics.Notifications.WithLabelValues(s.Name(), "ok").Inc()
	logc.Infof(ctx, "sent %q via %s", msg.Title, s.Name())
	return nil
}
