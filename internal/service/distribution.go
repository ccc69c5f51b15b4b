package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/beoflow/internal/model"
	"github.com/Shivanand-hulikatti/beoflow/internal/notify"
	"github.com/Shivanand-hulikatti/beoflow/internal/repository"
)

var (
	// ErrNoDepartments is returned when a distribution selects nobody.
	ErrNoDepartments = errors.New("at least one department must be selected")

	// ErrDistributionFailed is returned when no recipient could be notified.
	ErrDistributionFailed = errors.New("distribution failed for every department")

	errNoContact = errors.New("department has no contact email")
)

// DistributionResult is the updated event plus the per-recipient outcome.
type DistributionResult struct {
	Event      model.Event       `json:"event"`
	Deliveries []DeliveryOutcome `json:"deliveries"`
}

// DeliveryOutcome is the JSON view of one notify.Delivery.
type DeliveryOutcome struct {
	Department model.Department `json:"department"`
	Email      string           `json:"email"`
	Sent       bool             `json:"sent"`
	Error      string           `json:"error,omitempty"`
}

// Distributor sends a BEO to departments and records which ones received it.
type Distributor struct {
	events   *repository.EventRepository
	settings *repository.SettingsRepository
	notifier notify.Notifier
	delay    time.Duration
	log      logrus.FieldLogger
}

// NewDistributor constructs a Distributor. delay is the pause before the
// distribution is applied; it is cut short if the caller's context ends.
func NewDistributor(
	events *repository.EventRepository,
	settings *repository.SettingsRepository,
	notifier notify.Notifier,
	delay time.Duration,
	log logrus.FieldLogger,
) *Distributor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Distributor{
		events:   events,
		settings: settings,
		notifier: notifier,
		delay:    delay,
		log:      log,
	}
}

// Distribute notifies the selected departments and then marks them sent on
// the event and sets its status to Distributed. Flags already true stay
// true. If ctx is cancelled during the delay nothing is sent or stored.
func (d *Distributor) Distribute(ctx context.Context, id string, departments []model.Department) (*DistributionResult, error) {
	selected, err := normaliseDepartments(departments)
	if err != nil {
		return nil, err
	}
	if _, ok := d.events.Get(id); !ok {
		return nil, repository.ErrNotFound
	}

	log := d.log.WithField("event_id", id)
	if err := d.wait(ctx); err != nil {
		log.WithError(err).Info("distribution cancelled before it was applied")
		return nil, err
	}

	// Re-read after the pause: the event may have been edited or deleted.
	event, ok := d.events.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}

	settings := d.settings.Get()
	var (
		recipients []notify.Recipient
		outcomes   []DeliveryOutcome
	)
	for _, dept := range selected {
		info := settings.DepartmentInfo[dept]
		if info.Email == "" {
			outcomes = append(outcomes, DeliveryOutcome{Department: dept, Error: errNoContact.Error()})
			continue
		}
		recipients = append(recipients, notify.Recipient{
			Department: dept,
			Email:      info.Email,
			Fields:     event.FieldValues(info.RelevantFields),
		})
	}

	var (
		delivered []model.Department
		lastErr   error
	)
	if len(recipients) > 0 {
		summary := notify.Summary{EventID: event.ID, EventName: event.EventName, Version: event.Version}
		for _, dl := range d.notifier.Notify(ctx, recipients, summary) {
			outcome := DeliveryOutcome{Department: dl.Recipient.Department, Email: dl.Recipient.Email, Sent: dl.OK()}
			if dl.OK() {
				delivered = append(delivered, dl.Recipient.Department)
			} else {
				outcome.Error = dl.Err.Error()
				lastErr = dl.Err
				log.WithError(dl.Err).WithField("department", dl.Recipient.Department).Warn("BEO delivery failed")
			}
			outcomes = append(outcomes, outcome)
		}
	}
	if len(delivered) == 0 {
		if lastErr == nil {
			lastErr = errNoContact
		}
		return nil, fmt.Errorf("%w: %v", ErrDistributionFailed, lastErr)
	}

	// The union with existing flags happens under the store lock.
	updated, ok := d.events.MarkDistributed(ctx, id, delivered)
	if !ok {
		return nil, repository.ErrNotFound
	}

	log.WithField("departments", len(delivered)).Info("BEO distributed")
	return &DistributionResult{Event: updated, Deliveries: outcomes}, nil
}

func (d *Distributor) wait(ctx context.Context) error {
	if d.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// normaliseDepartments validates the selection and drops duplicates,
// keeping first-seen order.
func normaliseDepartments(in []model.Department) ([]model.Department, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, ErrNoDepartments)
	}
	seen := make(map[model.Department]bool, len(in))
	out := make([]model.Department, 0, len(in))
	for _, dept := range in {
		canonical, ok := model.ParseDepartment(string(dept))
		if !ok {
			return nil, fmt.Errorf("%w: unknown department %q", ErrInvalid, dept)
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out, nil
}
