// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Shivanand-hulikatti/beoflow/internal/export"
	"github.com/Shivanand-hulikatti/beoflow/internal/model"
	"github.com/Shivanand-hulikatti/beoflow/internal/repository"
)

// EventService orchestrates event-related business operations.
type EventService struct {
	events   *repository.EventRepository
	validate *validator.Validate
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events *repository.EventRepository) *EventService {
	return &EventService{events: events, validate: newValidator()}
}

// CreateEvent validates the details and stores a new event. A missing
// status defaults to Draft.
func (s *EventService) CreateEvent(ctx context.Context, details model.EventDetails) (*model.Event, error) {
	details.EventName = strings.TrimSpace(details.EventName)
	details.ContactEmail = strings.TrimSpace(details.ContactEmail)
	if details.Status == "" {
		details.Status = model.StatusDraft
	}
	if err := s.validate.Struct(details); err != nil {
		return nil, invalid(err)
	}
	if err := checkDepartments(details.DistributionStatus); err != nil {
		return nil, err
	}

	event := s.events.Create(ctx, details)
	return &event, nil
}

// ListEvents returns all events, most recently modified first.
func (s *EventService) ListEvents(_ context.Context) []model.Event {
	events := s.events.List()
	SortByLastModified(events)
	return events
}

// GetEvent returns a single event by ID.
func (s *EventService) GetEvent(_ context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalid)
	}
	event, ok := s.events.Get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &event, nil
}

// UpdateEvent validates the patch and applies it as a shallow merge.
func (s *EventService) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	if patch.EventName != nil {
		name := strings.TrimSpace(*patch.EventName)
		patch.EventName = &name
	}
	if patch.ContactEmail != nil {
		email := strings.TrimSpace(*patch.ContactEmail)
		patch.ContactEmail = &email
	}
	if err := s.validate.Struct(patch); err != nil {
		return nil, invalid(err)
	}
	if err := checkDepartments(patch.DistributionStatus); err != nil {
		return nil, err
	}

	event, ok := s.events.Update(ctx, id, patch)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &event, nil
}

// ApproveEvent marks the event Approved.
func (s *EventService) ApproveEvent(ctx context.Context, id string) (*model.Event, error) {
	return s.UpdateEvent(ctx, id, model.EventPatch{Status: model.StatusPtr(model.StatusApproved)})
}

// DeleteEvent removes an event.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if !s.events.Delete(ctx, id) {
		return repository.ErrNotFound
	}
	return nil
}

// ExportPlan lays out the event's rendered view, of the given pixel size,
// over A4 pages.
func (s *EventService) ExportPlan(ctx context.Context, id string, canvasWidth, canvasHeight int) (*export.Plan, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	plan, err := export.PlanA4(canvasWidth, canvasHeight)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	plan.FileName = export.FileName(event.EventName)
	return &plan, nil
}

// checkDepartments rejects sent flags for departments outside the fixed set.
func checkDepartments(status map[model.Department]bool) error {
	for dept := range status {
		if !dept.Valid() {
			return fmt.Errorf("%w: unknown department %q", ErrInvalid, dept)
		}
	}
	return nil
}

// SortByLastModified orders events most recently modified first.
func SortByLastModified(events []model.Event) {
	slices.SortStableFunc(events, func(a, b model.Event) int {
		return b.LastModified.Compare(a.LastModified)
	})
}
