// services/reminder_service.go
package services

import (
	"context"
	"strings"
	"time"

	"salonpro-dashboard/models"
	"salonpro-dashboard/utils"

	"github.com/pkg/errors"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ReminderPending = "pending"
	ReminderSent    = "sent"
	ReminderFailed  = "failed"

	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// MessageSender delivers a reminder text and returns the provider message id.
type MessageSender interface {
	Send(ctx context.Context, to, body, channel string) (string, error)
}

// BookingSource lists a salon's bookings with the owner's upstream token.
type BookingSource interface {
	ListBookings(ctx context.Context, token, salonID string) ([]models.Booking, error)
}

type TwilioSender struct {
	client       *twilio.RestClient
	from         string
	whatsAppFrom string
}

func NewTwilioSender(accountSID, authToken, from, whatsAppFrom string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from:         from,
		whatsAppFrom: whatsAppFrom,
	}
}

func (t *TwilioSender) Send(_ context.Context, to, body, channel string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	if channel == ChannelWhatsApp {
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + t.whatsAppFrom)
	} else {
		params.SetTo(to)
		params.SetFrom(t.from)
	}

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", errors.Wrap(err, "twilio create message")
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// ReminderService texts customers the day before their appointment. Every
// booking is reminded at most once; a row left "pending" marks a send that
// was interrupted and is not retried.
type ReminderService struct {
	db       *gorm.DB
	bookings BookingSource
	sender   MessageSender
	sealer   *utils.Sealer
	loc      *time.Location
	// WhatsApp is used for numbers in E.164 form when set.
	WhatsApp bool
}

func NewReminderService(db *gorm.DB, bookings BookingSource, sender MessageSender, sealer *utils.Sealer, loc *time.Location) *ReminderService {
	if loc == nil {
		loc = time.Local
	}
	return &ReminderService{db: db, bookings: bookings, sender: sender, sealer: sealer, loc: loc}
}

// SendDailyReminders walks every salon that has a live owner session and
// reminds tomorrow's customers. The owner's token is needed to read bookings,
// so salons nobody is signed in to are skipped.
func (s *ReminderService) SendDailyReminders(ctx context.Context) {
	zap.S().Info("Starting daily reminder processing")

	var sessions []models.Session
	if err := s.db.Where("expires_at > ? AND salon_id <> ''", time.Now()).
		Order("expires_at desc").Find(&sessions).Error; err != nil {
		zap.S().Errorf("Failed to fetch sessions: %v", err)
		return
	}

	seen := make(map[string]bool)
	total := 0
	for i := range sessions {
		session := &sessions[i]
		if seen[session.SalonID] {
			continue
		}
		seen[session.SalonID] = true

		token, err := s.sealer.Open(session.SealedToken)
		if err != nil {
			zap.S().Warnf("Salon %s: unable to open session token: %v", session.SalonID, err)
			continue
		}
		salonName := ""
		if salon := session.Salon(); salon != nil {
			salonName = salon.Name
		}
		n, err := s.ProcessSalonReminders(ctx, session.SalonID, salonName, token)
		if err != nil {
			zap.S().Errorf("Salon %s: reminders failed: %v", session.SalonID, err)
			continue
		}
		total += n
	}

	zap.S().Infof("Daily reminder processing completed, %d sent", total)
}

// ProcessSalonReminders sends reminders for one salon's bookings tomorrow and
// returns how many were sent.
func (s *ReminderService) ProcessSalonReminders(ctx context.Context, salonID, salonName, token string) (int, error) {
	template, err := LoadReminderTemplate(s.db, salonID)
	if err != nil {
		return 0, err
	}
	if !template.IsActive {
		return 0, nil
	}

	bookings, err := s.bookings.ListBookings(ctx, token, salonID)
	if err != nil {
		return 0, err
	}
	tomorrow := utils.Now().In(s.loc).AddDate(0, 0, 1)

	sent := 0
	for _, status := range []models.BookingStatus{models.BookingConfirmed, models.BookingPending} {
		due := utils.FilterBookings(bookings, utils.BookingFilter{Status: status, Day: tomorrow})
		for _, booking := range due {
			ok, err := s.remind(ctx, salonID, salonName, template.Message, booking)
			if err != nil {
				return sent, err
			}
			if ok {
				sent++
			}
		}
	}
	return sent, nil
}

// remind claims the booking by inserting its log row before sending. A
// booking that already has a row, from this run or an overlapping one, is
// skipped.
func (s *ReminderService) remind(ctx context.Context, salonID, salonName, template string, booking models.Booking) (bool, error) {
	phone := booking.CustomerPhone()
	if phone == "" {
		return false, nil
	}

	channel := ChannelSMS
	if s.WhatsApp && strings.HasPrefix(phone, "+") {
		channel = ChannelWhatsApp
	}
	message := RenderReminder(template, booking, salonName, s.loc)

	entry := models.ReminderLog{
		SalonID:   salonID,
		BookingID: booking.ID,
		Phone:     phone,
		Message:   message,
		Status:    ReminderPending,
		Channel:   channel,
		SentAt:    time.Now(),
	}
	claim := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if claim.Error != nil {
		return false, errors.Wrapf(claim.Error, "claim reminder for booking %s", booking.ID)
	}
	if claim.RowsAffected == 0 {
		return false, nil
	}

	result := map[string]interface{}{"status": ReminderSent, "sent_at": time.Now()}
	sid, err := s.sender.Send(ctx, phone, message, channel)
	if err != nil {
		zap.S().Warnf("Failed to send reminder to %s: %v", phone, err)
		result["status"] = ReminderFailed
		result["error_message"] = err.Error()
	} else {
		zap.S().Infof("Reminder sent to %s, SID: %s", phone, sid)
	}

	if err := s.db.Model(&entry).Updates(result).Error; err != nil {
		return false, errors.Wrapf(err, "log reminder for booking %s", booking.ID)
	}
	return result["status"] == ReminderSent, nil
}

// LoadReminderTemplate returns the salon's reminder template, or the default
// text when none was saved.
func LoadReminderTemplate(db *gorm.DB, salonID string) (*models.ReminderTemplate, error) {
	var template models.ReminderTemplate
	err := db.Where("salon_id = ?", salonID).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ReminderTemplate{SalonID: salonID, Message: models.DefaultReminderMessage, IsActive: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// RenderReminder fills the template placeholders for a booking.
func RenderReminder(template string, booking models.Booking, salonName string, loc *time.Location) string {
	start := booking.StartTime.In(loc)
	if salonName == "" && booking.Salon != nil {
		salonName = booking.Salon.Name
	}
	return strings.NewReplacer(
		"[CustomerName]", booking.CustomerName(),
		"[ServiceName]", booking.ServiceTitle(),
		"[SalonName]", salonName,
		"[Date]", start.Format("Mon, Jan 2"),
		"[Time]", start.Format("3:04 PM"),
	).Replace(template)
}
