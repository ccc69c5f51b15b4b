package model

// DepartmentInfo is the contact and field-relevance configuration of a department.
type DepartmentInfo struct {
	Email          string   `json:"email"`
	RelevantFields []string `json:"relevantFields"`
}

// Settings is the global configuration singleton.
type Settings struct {
	DepartmentInfo  map[Department]DepartmentInfo `json:"departmentInfo"`
	EventTypes      []string                      `json:"eventTypes"`
	Venues          []string                      `json:"venues"`
	MenuOptions     []string                      `json:"menuOptions"`
	BeverageOptions []string                      `json:"beverageOptions"`
}

// SettingsPatch replaces the top-level settings keys that are non-nil.
type SettingsPatch struct {
	DepartmentInfo  map[Department]DepartmentInfo `json:"departmentInfo,omitempty"`
	EventTypes      []string                      `json:"eventTypes,omitempty"`
	Venues          []string                      `json:"venues,omitempty"`
	MenuOptions     []string                      `json:"menuOptions,omitempty"`
	BeverageOptions []string                      `json:"beverageOptions,omitempty"`
}

// Apply merges p over s one top-level key at a time.
func (p SettingsPatch) Apply(s *Settings) {
	if p.DepartmentInfo != nil {
		s.DepartmentInfo = cloneDepartmentInfo(p.DepartmentInfo)
	}
	if p.EventTypes != nil {
		s.EventTypes = cloneStrings(p.EventTypes)
	}
	if p.Venues != nil {
		s.Venues = cloneStrings(p.Venues)
	}
	if p.MenuOptions != nil {
		s.MenuOptions = cloneStrings(p.MenuOptions)
	}
	if p.BeverageOptions != nil {
		s.BeverageOptions = cloneStrings(p.BeverageOptions)
	}
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	return Settings{
		DepartmentInfo:  cloneDepartmentInfo(s.DepartmentInfo),
		EventTypes:      cloneStrings(s.EventTypes),
		Venues:          cloneStrings(s.Venues),
		MenuOptions:     cloneStrings(s.MenuOptions),
		BeverageOptions: cloneStrings(s.BeverageOptions),
	}
}

// DefaultSettings returns a fresh copy of the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		DepartmentInfo: map[Department]DepartmentInfo{
			DepartmentKitchen: {
				Email:          "kitchen@example.com",
				RelevantFields: []string{"eventName", "date", "expectedGuests", "guaranteedGuests", "foodMenu", "specialRequests"},
			},
			DepartmentAV: {
				Email:          "av@example.com",
				RelevantFields: []string{"eventName", "date", "startTime", "endTime", "venue", "avRequirements"},
			},
			DepartmentOperations: {
				Email:          "ops@example.com",
				RelevantFields: []string{"eventName", "date", "venue", "expectedGuests", "roomSetup"},
			},
			DepartmentSecurity: {
				Email:          "security@example.com",
				RelevantFields: []string{"eventName", "date", "venue", "expectedGuests", "startTime", "endTime"},
			},
			DepartmentSales: {
				Email:          "sales@example.com",
				RelevantFields: []string{"eventName", "clientName", "contactPerson", "contactEmail", "pricingDetails"},
			},
			DepartmentManagement: {
				Email:          "management@example.com",
				RelevantFields: []string{"eventName", "clientName", "date", "expectedGuests", "guaranteedGuests", "pricingDetails"},
			},
		},
		EventTypes: []string{
			"Wedding",
			"Corporate Conference",
			"Birthday Party",
			"Gala Dinner",
			"Product Launch",
		},
		Venues: []string{
			"Grand Ballroom",
			"Garden Pavilion",
			"Skyline Terrace",
			"Boardroom A",
			"Boardroom B",
		},
		MenuOptions: []string{
			"Plated Dinner - Chicken",
			"Plated Dinner - Beef",
			"Plated Dinner - Vegetarian",
			"Buffet - Continental",
			"Buffet - American BBQ",
			"Cocktail Hour - Hors d'oeuvres",
		},
		BeverageOptions: []string{
			"Open Bar - Top Shelf",
			"Open Bar - Standard",
			"Beer & Wine Package",
			"Non-Alcoholic Package",
			"Cash Bar",
		},
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneDepartmentInfo(in map[Department]DepartmentInfo) map[Department]DepartmentInfo {
	if in == nil {
		return nil
	}
	out := make(map[Department]DepartmentInfo, len(in))
	for k, v := range in {
		v.RelevantFields = cloneStrings(v.RelevantFields)
		out[k] = v
	}
	return out
}
