package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/clients/twilio"
	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/apierr"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/repos"
)

// SosService manages emergency contacts and alert dispatch. Delivery is
// best-effort: the alert row is persisted first, then SMS fan-out runs and
// failures only reduce the notified count.
type SosService interface {
	CreateContact(ctx context.Context, name, phone, relationship string) (*domain.EmergencyContact, error)
	ListContacts(ctx context.Context) ([]*domain.EmergencyContact, error)
	UpdateContact(ctx context.Context, id uuid.UUID, updates ContactUpdate) (*domain.EmergencyContact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
	Trigger(ctx context.Context, message, latitude, longitude string) (*domain.SosAlert, error)
	Resolve(ctx context.Context, id uuid.UUID) (*domain.SosAlert, error)
	ListAlerts(ctx context.Context) ([]*domain.SosAlert, error)
}

type ContactUpdate struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Relationship *string `json:"relationship,omitempty"`
}

type sosService struct {
	db          *gorm.DB
	log         *logger.Logger
	sms         twilio.Client
	contactRepo repos.EmergencyContactRepo
	alertRepo   repos.SosAlertRepo
}

// NewSosService accepts a nil sms client; alerts are then persisted without
// any delivery attempt.
func NewSosService(
	db *gorm.DB,
	baseLog *logger.Logger,
	sms twilio.Client,
	contactRepo repos.EmergencyContactRepo,
	alertRepo repos.SosAlertRepo,
) SosService {
	return &sosService{
		db:          db,
		log:         baseLog.With("service", "SosService"),
		sms:         sms,
		contactRepo: contactRepo,
		alertRepo:   alertRepo,
	}
}

func (s *sosService) CreateContact(ctx context.Context, name, phone, relationship string) (*domain.EmergencyContact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, apierr.Newf(http.StatusBadRequest, "contact_invalid", "name and phone are required")
	}
	contact := &domain.EmergencyContact{
		ID:           uuid.New(),
		Name:         name,
		Phone:        phone,
		Relationship: strings.TrimSpace(relationship),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if _, err := s.contactRepo.Create(ctx, nil, contact); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "contact_create_failed", err)
	}
	s.log.Info("Emergency contact added", "contact_id", contact.ID, "contact_name", contact.Name)
	return contact, nil
}

func (s *sosService) ListContacts(ctx context.Context) ([]*domain.EmergencyContact, error) {
	out, err := s.contactRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "contact_list_failed", err)
	}
	return out, nil
}

func (s *sosService) UpdateContact(ctx context.Context, id uuid.UUID, updates ContactUpdate) (*domain.EmergencyContact, error) {
	contact, err := s.contactRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "contact_lookup_failed", err)
	}
	if contact == nil {
		return nil, apierr.Newf(http.StatusNotFound, "contact_not_found", "contact %s not found", id)
	}
	fields := map[string]interface{}{}
	if updates.Name != nil {
		trimmed := strings.TrimSpace(*updates.Name)
		if trimmed == "" {
			return nil, apierr.Newf(http.StatusBadRequest, "contact_invalid", "name cannot be empty")
		}
		fields["name"] = trimmed
		contact.Name = trimmed
	}
	if updates.Phone != nil {
		trimmed := strings.TrimSpace(*updates.Phone)
		if trimmed == "" {
			return nil, apierr.Newf(http.StatusBadRequest, "contact_invalid", "phone cannot be empty")
		}
		fields["phone"] = trimmed
		contact.Phone = trimmed
	}
	if updates.Relationship != nil {
		fields["relationship"] = strings.TrimSpace(*updates.Relationship)
		contact.Relationship = strings.TrimSpace(*updates.Relationship)
	}
	if len(fields) == 0 {
		return contact, nil
	}
	if err := s.contactRepo.UpdateFields(ctx, nil, id, fields); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "contact_update_failed", err)
	}
	return contact, nil
}

func (s *sosService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	contact, err := s.contactRepo.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.New(http.StatusInternalServerError, "contact_lookup_failed", err)
	}
	if contact == nil {
		return apierr.Newf(http.StatusNotFound, "contact_not_found", "contact %s not found", id)
	}
	if err := s.contactRepo.Delete(ctx, nil, id); err != nil {
		return apierr.New(http.StatusInternalServerError, "contact_delete_failed", err)
	}
	return nil
}

func (s *sosService) Trigger(ctx context.Context, message, latitude, longitude string) (*domain.SosAlert, error) {
	contacts, err := s.contactRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "contact_list_failed", err)
	}
	if len(contacts) == 0 {
		return nil, apierr.Newf(http.StatusBadRequest, "no_contacts", "add at least one emergency contact before triggering SOS")
	}

	alert := &domain.SosAlert{
		ID:          uuid.New(),
		Status:      domain.SosTriggered,
		Message:     strings.TrimSpace(message),
		Latitude:    strings.TrimSpace(latitude),
		Longitude:   strings.TrimSpace(longitude),
		TriggeredAt: time.Now(),
	}
	if _, err := s.alertRepo.Create(ctx, nil, alert); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "alert_create_failed", err)
	}

	notified := 0
	if s.sms != nil {
		body := smsBody(alert)
		for _, contact := range contacts {
			if _, err := s.sms.SendSMS(ctx, contact.Phone, body); err != nil {
				s.log.Warn("SOS SMS failed", "alert_id", alert.ID, "contact_id", contact.ID, "error", err)
				continue
			}
			notified++
		}
	} else {
		s.log.Warn("SMS client not configured, alert persisted without delivery", "alert_id", alert.ID)
	}

	alert.ContactsNotified = notified
	if notified > 0 {
		alert.Status = domain.SosNotified
	}
	if err := s.alertRepo.UpdateFields(ctx, nil, alert.ID, map[string]interface{}{
		"contacts_notified": alert.ContactsNotified,
		"status":            alert.Status,
	}); err != nil {
		s.log.Error("Alert status update failed", "alert_id", alert.ID, "error", err)
	}

	s.log.Info("SOS triggered", "alert_id", alert.ID, "contacts", len(contacts), "notified", notified)
	return alert, nil
}

func (s *sosService) Resolve(ctx context.Context, id uuid.UUID) (*domain.SosAlert, error) {
	alert, err := s.alertRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "alert_lookup_failed", err)
	}
	if alert == nil {
		return nil, apierr.Newf(http.StatusNotFound, "alert_not_found", "alert %s not found", id)
	}
	if err := s.alertRepo.UpdateFields(ctx, nil, id, map[string]interface{}{"status": domain.SosResolved}); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "alert_update_failed", err)
	}
	alert.Status = domain.SosResolved
	return alert, nil
}

func (s *sosService) ListAlerts(ctx context.Context) ([]*domain.SosAlert, error) {
	out, err := s.alertRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "alert_list_failed", err)
	}
	return out, nil
}

func smsBody(alert *domain.SosAlert) string {
	var b strings.Builder
	b.WriteString("EVELA SOS: your contact needs help.")
	if alert.Message != "" {
		fmt.Fprintf(&b, " Message: %s.", alert.Message)
	}
	if alert.Latitude != "" && alert.Longitude != "" {
		fmt.Fprintf(&b, " Location: https://maps.google.com/?q=%s,%s", alert.Latitude, alert.Longitude)
	}
	return b.String()
}
