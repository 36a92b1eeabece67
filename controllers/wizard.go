// controllers/wizard.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonpro-dashboard/config"
	"salonpro-dashboard/models"
	"salonpro-dashboard/services"
	"salonpro-dashboard/utils"
	"salonpro-dashboard/wizard"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WizardController drives the booking creation wizard. Drafts are stored per
// session so the flow survives page reloads.
type WizardController struct {
	Backend  *services.BackendClient
	Location *time.Location
}

type SelectionInput struct {
	ServiceID string  `json:"serviceId"`
	StaffID   string  `json:"staffId"`
	Notes     *string `json:"notes"`
}

type SlotInput struct {
	Date string `json:"date"`
	Time string `json:"time" binding:"required"`
}

type draftResponse struct {
	ID        uuid.UUID                 `json:"id"`
	Step      int                       `json:"step"`
	StepName  string                    `json:"stepName"`
	ServiceID string                    `json:"serviceId"`
	StaffID   string                    `json:"staffId"`
	Date      string                    `json:"date"`
	Time      string                    `json:"time"`
	Notes     string                    `json:"notes"`
	Slots     []models.AvailabilitySlot `json:"slots"`
}

func newDraftResponse(rec *models.BookingDraft) draftResponse {
	slots := []models.AvailabilitySlot(rec.Slots)
	if slots == nil {
		slots = []models.AvailabilitySlot{}
	}
	return draftResponse{
		ID:        rec.ID,
		Step:      rec.Step,
		StepName:  wizard.Step(rec.Step).String(),
		ServiceID: rec.ServiceID,
		StaffID:   rec.StaffID,
		Date:      rec.Date,
		Time:      rec.Time,
		Notes:     rec.Notes,
		Slots:     slots,
	}
}

func wizardErrorStatus(err error) int {
	switch {
	case errors.Is(err, wizard.ErrWrongStep), errors.Is(err, wizard.ErrSlotsStale):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (wc *WizardController) location() *time.Location {
	if wc.Location != nil {
		return wc.Location
	}
	return time.Local
}

func (wc *WizardController) CreateDraft(c *gin.Context) {
	salonID, ok := requireSalon(c)
	if !ok {
		return
	}
	session := utils.CurrentSession(c)

	rec := models.BookingDraft{SessionID: session.ID}
	wizard.New(salonID).Apply(&rec)
	if err := config.DB.Create(&rec).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to start booking")
		return
	}
	c.JSON(http.StatusCreated, newDraftResponse(&rec))
}

func (wc *WizardController) loadDraft(c *gin.Context) (*models.BookingDraft, bool) {
	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid draft ID format")
		return nil, false
	}
	session := utils.CurrentSession(c)

	var rec models.BookingDraft
	if err := config.DB.Where("id = ? AND session_id = ?", draftID, session.ID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking draft not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &rec, true
}

var errDraftChanged = errors.New("booking draft was changed by another request")

// storeDraft writes the draft back only while its stored step is still the
// one rec was loaded with, so a stale write cannot reopen a claimed draft.
func storeDraft(db *gorm.DB, rec *models.BookingDraft, draft *wizard.Draft) error {
	loadedStep := rec.Step
	draft.Apply(rec)
	res := db.Model(rec).
		Where("step = ?", loadedStep).
		Select("*").
		Omit("id", "session_id", "created_at").
		Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errDraftChanged
	}
	return nil
}

func (wc *WizardController) saveDraft(c *gin.Context, rec *models.BookingDraft, draft *wizard.Draft) bool {
	if err := storeDraft(config.DB, rec, draft); err != nil {
		if errors.Is(err, errDraftChanged) {
			utils.RespondWithError(c, http.StatusConflict, "This booking draft was changed by another request, reload it and try again")
			return false
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save booking draft")
		return false
	}
	return true
}

func (wc *WizardController) GetDraft(c *gin.Context) {
	rec, ok := wc.loadDraft(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newDraftResponse(rec))
}

func (wc *WizardController) UpdateSelection(c *gin.Context) {
	var input SelectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	rec, ok := wc.loadDraft(c)
	if !ok {
		return
	}

	draft := wizard.FromRecord(rec)
	if err := draft.Select(input.ServiceID, input.StaffID); err != nil {
		utils.RespondWithError(c, wizardErrorStatus(err), err.Error())
		return
	}
	if input.Notes != nil {
		draft.Notes = *input.Notes
	}
	if !wc.saveDraft(c, rec, draft) {
		return
	}
	c.JSON(http.StatusOK, newDraftResponse(rec))
}

// Next advances to date/time selection; an incomplete selection keeps the
// draft on the first step.
func (wc *WizardController) Next(c *gin.Context) {
	rec, ok := wc.loadDraft(c)
	if !ok {
		return
	}
	draft := wizard.FromRecord(rec)
	if err := draft.Next(); err != nil {
		utils.RespondWithError(c, wizardErrorStatus(err), err.Error())
		return
	}
	if !wc.saveDraft(c, rec, draft) {
		return
	}
	c.JSON(http.StatusOK, newDraftResponse(rec))
}

func (wc *WizardController) Back(c *gin.Context) {
	rec, ok := wc.loadDraft(c)
	if !ok {
		return
	}
	draft := wizard.FromRecord(rec)
	if err := draft.Back(); err != nil {
		utils.RespondWithError(c, wizardErrorStatus(err), err.Error())
		return
	}
	if !wc.saveDraft(c, rec, draft) {
		return
	}
	c.JSON(http.StatusOK, newDraftResponse(rec))
}

// Slots sets the date and returns the availability list, fetching it from
// the backend whenever service, staff or date changed since the last fetch.
func (wc *WizardController) Slots(c *gin.Context) {
	rec, ok := wc.loadDraft(c)
	if !ok {
		return
	}
	draft := wizard.FromRecord(rec)
	date := c.Query("date")
	if date == "" {
		date = draft.Date
	}
	if err := draft.SetDate(date); err != nil {
		utils.RespondWithError(c, wizardErrorStatus(err), err.Error())
		return
	}

	if draft.NeedsSlots() {
		slots, err := wc.Backend.Availability(c.Request.Context(), utils.BackendToken(c), draft.ServiceID, draft.StaffID, draft.Date)
		if err != nil {
			respondBackendError(c, err, "Failed to load available time slots")
			return
		}
		draft.SetSlots(slots)
	}

	if !wc.saveDraft(c, rec, draft) {
		return
	}
	c.JSON(http.StatusOK, newDraftResponse(rec))
}

func (wc *WizardController) SelectSlot(c *gin.Context) {
	var input SlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	rec, ok := wc.loadDraft(c)
	if !ok {
		return
	}

	draft := wizard.FromRecord(rec)
	if input.Date != "" {
		if err := draft.SetDate(input.Date); err != nil {
			utils.RespondWithError(c, wizardErrorStatus(err), err.Error())
			return
		}
	}
	if err := draft.SelectTime(input.Time); err != nil {
		utils.RespondWithError(c, wizardErrorStatus(err), err.Error())
		return
	}
	if !wc.saveDraft(c, rec, draft) {
		return
	}
	c.JSON(http.StatusOK, newDraftResponse(rec))
}

// Submit posts the booking. The draft is claimed first so a repeated submit
// of the same draft cannot create a second booking.
func (wc *WizardController) Submit(c *gin.Context) {
	rec, ok := wc.loadDraft(c)
	if !ok {
		return
	}

	draft := wizard.FromRecord(rec)
	req, err := draft.Request(wc.location())
	if err != nil {
		if errors.Is(err, wizard.ErrWrongStep) && wizard.Step(rec.Step) == wizard.StepSubmitting {
			utils.RespondWithError(c, http.StatusConflict, "This booking is already being submitted")
			return
		}
		utils.RespondWithError(c, wizardErrorStatus(err), err.Error())
		return
	}

	claim := config.DB.Model(&models.BookingDraft{}).
		Where("id = ? AND step = ?", rec.ID, int(wizard.StepSelectDateTime)).
		Update("step", int(wizard.StepSubmitting))
	if claim.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if claim.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusConflict, "This booking is already being submitted")
		return
	}

	booking, err := wc.Backend.CreateBooking(c.Request.Context(), utils.BackendToken(c), req)
	if err != nil {
		if rerr := config.DB.Model(&models.BookingDraft{}).Where("id = ?", rec.ID).
			Update("step", int(wizard.StepSelectDateTime)).Error; rerr != nil {
			zap.S().Errorf("release booking draft %s: %v", rec.ID, rerr)
		}
		respondBackendError(c, err, "Failed to create booking")
		return
	}

	if err := config.DB.Delete(&models.BookingDraft{}, "id = ?", rec.ID).Error; err != nil {
		zap.S().Errorf("delete submitted booking draft %s: %v", rec.ID, err)
	}
	c.JSON(http.StatusCreated, booking)
}

func (wc *WizardController) DiscardDraft(c *gin.Context) {
	rec, ok := wc.loadDraft(c)
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.BookingDraft{}, "id = ?", rec.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to discard booking draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking draft discarded"})
}
