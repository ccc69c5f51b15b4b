// Package notify defines the dispatch capability used when a BEO is
// distributed to departments.
package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/beoflow/internal/model"
)

// Recipient is one department contact and the event fields it cares about.
type Recipient struct {
	Department model.Department
	Email      string
	Fields     map[string]any
}

// Summary identifies the event being distributed.
type Summary struct {
	EventID   string
	EventName string
	Version   int
}

// Delivery is the outcome of dispatching to one recipient.
type Delivery struct {
	Recipient Recipient
	Err       error
}

// OK reports whether the dispatch succeeded.
func (d Delivery) OK() bool { return d.Err == nil }

// Notifier dispatches a BEO summary to department contacts and reports the
// outcome per recipient, in recipient order.
type Notifier interface {
	Notify(ctx context.Context, recipients []Recipient, summary Summary) []Delivery
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, recipients []Recipient, summary Summary) []Delivery

func (f NotifierFunc) Notify(ctx context.Context, recipients []Recipient, summary Summary) []Delivery {
	return f(ctx, recipients, summary)
}

// LogNotifier records each dispatch in the log and always succeeds.
type LogNotifier struct {
	Log logrus.FieldLogger
}

func (n LogNotifier) Notify(_ context.Context, recipients []Recipient, summary Summary) []Delivery {
	log := n.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	out := make([]Delivery, 0, len(recipients))
	for _, r := range recipients {
		log.WithFields(logrus.Fields{
			"event_id":   summary.EventID,
			"event_name": summary.EventName,
			"version":    summary.Version,
			"department": r.Department,
			"email":      r.Email,
			"fields":     len(r.Fields),
		}).Info("distributing BEO")
		out = append(out, Delivery{Recipient: r})
	}
	return out
}
