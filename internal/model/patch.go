package model

// EventPatch is a partial update of an event. A nil field leaves the stored
// value untouched; a non-nil field replaces it wholesale. Nested values
// (Files, DistributionStatus) are replaced, never merged.
type EventPatch struct {
	Status *EventStatus `json:"status,omitempty" validate:"omitempty,beo_status"`

	EventName     *string `json:"eventName,omitempty" validate:"omitempty,min=1"`
	ClientName    *string `json:"clientName,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	ContactEmail  *string `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone  *string `json:"contactPhone,omitempty"`

	EventType        *string `json:"eventType,omitempty"`
	Date             *string `json:"date,omitempty"`
	StartTime        *string `json:"startTime,omitempty"`
	EndTime          *string `json:"endTime,omitempty"`
	Venue            *string `json:"venue,omitempty"`
	ExpectedGuests   *int    `json:"expectedGuests,omitempty" validate:"omitempty,gte=0"`
	GuaranteedGuests *int    `json:"guaranteedGuests,omitempty" validate:"omitempty,gte=0"`

	FoodMenu        *string `json:"foodMenu,omitempty"`
	BeveragePackage *string `json:"beveragePackage,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`

	RoomSetup      *string `json:"roomSetup,omitempty"`
	AVRequirements *string `json:"avRequirements,omitempty"`

	PricingDetails *string `json:"pricingDetails,omitempty"`
	InternalNotes  *string `json:"internalNotes,omitempty"`

	Files              []EventFile         `json:"files,omitempty"`
	DistributionStatus map[Department]bool `json:"distributionStatus,omitempty"`
}

// Apply overwrites the fields of d that are set in p.
func (p EventPatch) Apply(d *EventDetails) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	if p.Status != nil {
		d.Status = *p.Status
	}
	setString(&d.EventName, p.EventName)
	setString(&d.ClientName, p.ClientName)
	setString(&d.ContactPerson, p.ContactPerson)
	setString(&d.ContactEmail, p.ContactEmail)
	setString(&d.ContactPhone, p.ContactPhone)
	setString(&d.EventType, p.EventType)
	setString(&d.Date, p.Date)
	setString(&d.StartTime, p.StartTime)
	setString(&d.EndTime, p.EndTime)
	setString(&d.Venue, p.Venue)
	setInt(&d.ExpectedGuests, p.ExpectedGuests)
	setInt(&d.GuaranteedGuests, p.GuaranteedGuests)
	setString(&d.FoodMenu, p.FoodMenu)
	setString(&d.BeveragePackage, p.BeveragePackage)
	setString(&d.SpecialRequests, p.SpecialRequests)
	setString(&d.RoomSetup, p.RoomSetup)
	setString(&d.AVRequirements, p.AVRequirements)
	setString(&d.PricingDetails, p.PricingDetails)
	setString(&d.InternalNotes, p.InternalNotes)

	if p.Files != nil {
		d.Files = append([]EventFile{}, p.Files...)
	}
	if p.DistributionStatus != nil {
		status := make(map[Department]bool, len(p.DistributionStatus))
		for k, v := range p.DistributionStatus {
			status[k] = v
		}
		d.DistributionStatus = status
	}
}

// StatusPtr is a convenience for building patches.
func StatusPtr(s EventStatus) *EventStatus { return &s }
