package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Shivanand-hulikatti/beoflow/internal/model"
	"github.com/Shivanand-hulikatti/beoflow/internal/repository"
)

// SettingsService validates changes to the global settings.
type SettingsService struct {
	settings *repository.SettingsRepository
	validate *validator.Validate
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(settings *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings, validate: newValidator()}
}

// GetSettings returns the current settings.
func (s *SettingsService) GetSettings(_ context.Context) model.Settings {
	return s.settings.Get()
}

// UpdateDepartmentEmail changes the contact email of one department.
func (s *SettingsService) UpdateDepartmentEmail(ctx context.Context, department, email string) (model.Settings, error) {
	dept, ok := model.ParseDepartment(department)
	if !ok {
		return model.Settings{}, fmt.Errorf("%w: unknown department %q", ErrInvalid, department)
	}
	email = strings.TrimSpace(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return model.Settings{}, fmt.Errorf("%w: %q is not a valid email address", ErrInvalid, email)
	}
	return s.settings.UpdateDepartmentEmail(ctx, dept, email), nil
}

// UpdateSettings replaces the top-level keys present in patch. Option lists
// are trimmed and blank entries dropped.
func (s *SettingsService) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error) {
	for dept, info := range patch.DepartmentInfo {
		if !dept.Valid() {
			return model.Settings{}, fmt.Errorf("%w: unknown department %q", ErrInvalid, dept)
		}
		if err := s.validate.Var(info.Email, "omitempty,email"); err != nil {
			return model.Settings{}, fmt.Errorf("%w: %q is not a valid email address", ErrInvalid, info.Email)
		}
	}
	patch.EventTypes = cleanOptions(patch.EventTypes)
	patch.Venues = cleanOptions(patch.Venues)
	patch.MenuOptions = cleanOptions(patch.MenuOptions)
	patch.BeverageOptions = cleanOptions(patch.BeverageOptions)

	return s.settings.UpdateSettings(ctx, patch), nil
}

// cleanOptions keeps nil as nil so an absent list stays absent.
func cleanOptions(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
