// Package model defines the core domain types for the BEO management system.
package model

import (
	"encoding/json"
	"strings"
	"time"
)

// EventStatus is the lifecycle state of a Banquet Event Order.
// No transition graph is enforced; any status may be set directly.
type EventStatus string

const (
	StatusDraft           EventStatus = "Draft"
	StatusPendingApproval EventStatus = "Pending Approval"
	StatusApproved        EventStatus = "Approved"
	StatusDistributed     EventStatus = "Distributed"
)

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved, StatusDistributed:
		return true
	}
	return false
}

// Department is one of the fixed organisational units a BEO is sent to.
type Department string

const (
	DepartmentKitchen    Department = "Kitchen"
	DepartmentAV         Department = "Audio Visual"
	DepartmentOperations Department = "Operations"
	DepartmentSecurity   Department = "Security"
	DepartmentSales      Department = "Sales"
	DepartmentManagement Department = "Management"
)

var departments = []Department{
	DepartmentKitchen,
	DepartmentAV,
	DepartmentOperations,
	DepartmentSecurity,
	DepartmentSales,
	DepartmentManagement,
}

// Departments returns the closed set of departments in display order.
func Departments() []Department {
	out := make([]Department, len(departments))
	copy(out, departments)
	return out
}

// Valid reports whether d belongs to the closed department set.
func (d Department) Valid() bool {
	for _, known := range departments {
		if d == known {
			return true
		}
	}
	return false
}

// ParseDepartment matches s against the department names, ignoring case.
func ParseDepartment(s string) (Department, bool) {
	s = strings.TrimSpace(s)
	for _, d := range departments {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

// EventFile references a document attached to an event.
type EventFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// EventDetails holds every caller-supplied field of a BEO.
type EventDetails struct {
	Status EventStatus `json:"status" validate:"beo_status"`

	// Sales / client
	EventName     string `json:"eventName" validate:"required"`
	ClientName    string `json:"clientName"`
	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone  string `json:"contactPhone"`

	// Scheduling and logistics
	EventType        string `json:"eventType"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	Venue            string `json:"venue"`
	ExpectedGuests   int    `json:"expectedGuests" validate:"gte=0"`
	GuaranteedGuests int    `json:"guaranteedGuests" validate:"gte=0"`

	// Food & beverage
	FoodMenu        string `json:"foodMenu"`
	BeveragePackage string `json:"beveragePackage"`
	SpecialRequests string `json:"specialRequests"`

	// Setup & AV
	RoomSetup      string `json:"roomSetup"`
	AVRequirements string `json:"avRequirements"`

	PricingDetails string `json:"pricingDetails"`
	InternalNotes  string `json:"internalNotes"`

	Files []EventFile `json:"files"`

	// DistributionStatus is nil until the first distribution.
	DistributionStatus map[Department]bool `json:"distributionStatus,omitempty"`
}

// Event is a single Banquet Event Order record.
type Event struct {
	ID           string    `json:"id"`
	Version      int       `json:"version"`
	LastModified time.Time `json:"lastModified"`
	EventDetails
}

// Clone returns a deep copy of e.
func (e Event) Clone() Event {
	e.EventDetails = e.EventDetails.Clone()
	return e
}

// Clone returns a deep copy of d.
func (d EventDetails) Clone() EventDetails {
	if d.Files != nil {
		files := make([]EventFile, len(d.Files))
		copy(files, d.Files)
		d.Files = files
	}
	if d.DistributionStatus != nil {
		status := make(map[Department]bool, len(d.DistributionStatus))
		for k, v := range d.DistributionStatus {
			status[k] = v
		}
		d.DistributionStatus = status
	}
	return d
}

// FieldValues returns the JSON values of the named fields. Unknown names are skipped.
func (e Event) FieldValues(names []string) map[string]any {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	var all map[string]any
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil
	}
	out := make(map[string]any, len(names))
	for _, name := range names {
		if v, ok := all[name]; ok {
			out[name] = v
		}
	}
	return out
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
