// Package wizard holds the booking creation flow: pick a service and a staff
// member, pick a date and one of the backend's available slots, submit.
package wizard

import (
	"errors"
	"strings"
	"time"

	"salonpro-dashboard/models"
)

type Step int

const (
	StepSelectServiceStaff Step = 1
	StepSelectDateTime     Step = 2
	StepSubmitting         Step = 3
)

func (s Step) String() string {
	switch s {
	case StepSelectServiceStaff:
		return "select_service_staff"
	case StepSelectDateTime:
		return "select_date_time"
	case StepSubmitting:
		return "submitting"
	}
	return "unknown"
}

var (
	ErrServiceRequired = errors.New("please select a service")
	ErrStaffRequired   = errors.New("please select a staff member")
	ErrDateRequired    = errors.New("please select a date")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
	ErrTimeRequired    = errors.New("please select a time slot")
	ErrSlotsStale      = errors.New("availability must be loaded for the current selection")
	ErrSlotUnavailable = errors.New("the selected time slot is not available")
	ErrWrongStep       = errors.New("this action is not allowed at the current step")
)

const dateLayout = "2006-01-02"

type Draft struct {
	SalonID   string
	ServiceID string
	StaffID   string
	Date      string
	Time      string
	Notes     string
	Step      Step
	Slots     []models.AvailabilitySlot
	// SlotsKey identifies the service, staff and date the slots belong to.
	SlotsKey string
}

func New(salonID string) *Draft {
	return &Draft{SalonID: salonID, Step: StepSelectServiceStaff}
}

// Select sets the service and staff member. Any change invalidates the slot
// list and the chosen time; a selection that becomes incomplete sends the
// flow back to the first step.
func (d *Draft) Select(serviceID, staffID string) error {
	if d.Step == StepSubmitting {
		return ErrWrongStep
	}
	serviceID = strings.TrimSpace(serviceID)
	staffID = strings.TrimSpace(staffID)
	if serviceID != d.ServiceID || staffID != d.StaffID {
		d.ServiceID = serviceID
		d.StaffID = staffID
		d.invalidateSlots()
	}
	if d.Step == StepSelectDateTime && d.validateSelection() != nil {
		d.Step = StepSelectServiceStaff
	}
	return nil
}

func (d *Draft) validateSelection() error {
	if d.ServiceID == "" {
		return ErrServiceRequired
	}
	if d.StaffID == "" {
		return ErrStaffRequired
	}
	return nil
}

// Next moves from service/staff selection to date/time selection.
func (d *Draft) Next() error {
	if d.Step != StepSelectServiceStaff {
		return ErrWrongStep
	}
	if err := d.validateSelection(); err != nil {
		return err
	}
	d.Step = StepSelectDateTime
	return nil
}

func (d *Draft) Back() error {
	if d.Step != StepSelectDateTime {
		return ErrWrongStep
	}
	d.Step = StepSelectServiceStaff
	return nil
}

func (d *Draft) SetDate(date string) error {
	if d.Step != StepSelectDateTime {
		return ErrWrongStep
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return ErrDateRequired
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return ErrInvalidDate
	}
	if date != d.Date {
		d.Date = date
		d.invalidateSlots()
	}
	return nil
}

func (d *Draft) SlotKey() string {
	return d.ServiceID + "|" + d.StaffID + "|" + d.Date
}

// NeedsSlots reports whether the slot list must be fetched again.
func (d *Draft) NeedsSlots() bool {
	return d.Date != "" && d.SlotsKey != d.SlotKey()
}

// SetSlots stores a freshly fetched slot list for the current selection. A
// previously chosen time that is no longer available is dropped.
func (d *Draft) SetSlots(slots []models.AvailabilitySlot) {
	d.Slots = slots
	d.SlotsKey = d.SlotKey()
	if d.Time != "" && !d.isAvailable(d.Time) {
		d.Time = ""
	}
}

func (d *Draft) SelectTime(t string) error {
	if d.Step != StepSelectDateTime {
		return ErrWrongStep
	}
	if d.Date == "" {
		return ErrDateRequired
	}
	t = strings.TrimSpace(t)
	if t == "" {
		return ErrTimeRequired
	}
	if d.NeedsSlots() {
		return ErrSlotsStale
	}
	if !d.isAvailable(t) {
		return ErrSlotUnavailable
	}
	d.Time = t
	return nil
}

func (d *Draft) isAvailable(t string) bool {
	for _, s := range d.Slots {
		if s.Time == t {
			return s.Available
		}
	}
	return false
}

func (d *Draft) invalidateSlots() {
	d.Slots = nil
	d.SlotsKey = ""
	d.Time = ""
}

// Request validates the draft for submission and builds the create-booking
// payload. Slot times are either full timestamps or "HH:MM" on Date in loc.
func (d *Draft) Request(loc *time.Location) (models.CreateBookingRequest, error) {
	if d.Step != StepSelectDateTime {
		if d.Step == StepSelectServiceStaff {
			if err := d.validateSelection(); err != nil {
				return models.CreateBookingRequest{}, err
			}
		}
		return models.CreateBookingRequest{}, ErrWrongStep
	}
	if err := d.validateSelection(); err != nil {
		return models.CreateBookingRequest{}, err
	}
	if d.Date == "" {
		return models.CreateBookingRequest{}, ErrDateRequired
	}
	if d.Time == "" {
		return models.CreateBookingRequest{}, ErrTimeRequired
	}

	start, err := StartTime(d.Date, d.Time, loc)
	if err != nil {
		return models.CreateBookingRequest{}, err
	}
	return models.CreateBookingRequest{
		SalonID:   d.SalonID,
		ServiceID: d.ServiceID,
		StaffID:   d.StaffID,
		StartTime: start,
		Notes:     d.Notes,
	}, nil
}

func StartTime(date, slot string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, slot); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dateLayout+" 15:04", date+" "+slot, loc)
	if err != nil {
		return time.Time{}, ErrSlotUnavailable
	}
	return t, nil
}

// FromRecord restores a draft from its stored row.
func FromRecord(rec *models.BookingDraft) *Draft {
	return &Draft{
		SalonID:   rec.SalonID,
		ServiceID: rec.ServiceID,
		StaffID:   rec.StaffID,
		Date:      rec.Date,
		Time:      rec.Time,
		Notes:     rec.Notes,
		Step:      Step(rec.Step),
		Slots:     rec.Slots,
		SlotsKey:  rec.SlotsKey,
	}
}

// Apply writes the draft state back onto its stored row.
func (d *Draft) Apply(rec *models.BookingDraft) {
	rec.SalonID = d.SalonID
	rec.ServiceID = d.ServiceID
	rec.StaffID = d.StaffID
	rec.Date = d.Date
	rec.Time = d.Time
	rec.Notes = d.Notes
	rec.Step = int(d.Step)
	rec.Slots = d.Slots
	rec.SlotsKey = d.SlotsKey
}
