package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/evelahealth/evela-backend/internal/clients/twilio"
	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/apierr"
	"github.com/evelahealth/evela-backend/internal/repos"
	"github.com/evelahealth/evela-backend/internal/repos/testutil"
	"github.com/evelahealth/evela-backend/internal/services"
	"gorm.io/gorm"
)

type fakeSMS struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeSMS) SendSMS(ctx context.Context, to, body string) (*twilio.Message, error) {
	if f.failFor[to] {
		return nil, errors.New("carrier rejected")
	}
	f.sent = append(f.sent, to)
	return &twilio.Message{To: to, Body: body}, nil
}

func newSosService(t *testing.T, sms twilio.Client) (services.SosService, *gorm.DB) {
	t.Helper()
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	svc := services.NewSosService(tx, log, sms,
		repos.NewEmergencyContactRepo(tx, log),
		repos.NewSosAlertRepo(tx, log))
	return svc, tx
}

func TestTriggerWithoutContacts(t *testing.T) {
	svc, _ := newSosService(t, &fakeSMS{})
	_, err := svc.Trigger(context.Background(), "help", "", "")
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTriggerNotifiesAllContacts(t *testing.T) {
	sms := &fakeSMS{}
	svc, tx := newSosService(t, sms)
	ctx := context.Background()
	testutil.SeedContact(t, ctx, tx, "Ada", "+15550001")
	testutil.SeedContact(t, ctx, tx, "Beth", "+15550002")

	alert, err := svc.Trigger(ctx, "need help", "52.1", "4.3")
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if alert.ContactsNotified != 2 {
		t.Fatalf("notified = %d, want 2", alert.ContactsNotified)
	}
	if alert.Status != domain.SosNotified {
		t.Fatalf("status = %q, want notified", alert.Status)
	}
	if len(sms.sent) != 2 {
		t.Fatalf("sms sent to %d numbers, want 2", len(sms.sent))
	}
}

func TestTriggerPartialDeliveryStillCounts(t *testing.T) {
	sms := &fakeSMS{failFor: map[string]bool{"+15550002": true}}
	svc, tx := newSosService(t, sms)
	ctx := context.Background()
	testutil.SeedContact(t, ctx, tx, "Ada", "+15550001")
	testutil.SeedContact(t, ctx, tx, "Beth", "+15550002")

	alert, err := svc.Trigger(ctx, "", "", "")
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if alert.ContactsNotified != 1 {
		t.Fatalf("notified = %d, want 1", alert.ContactsNotified)
	}
	if alert.Status != domain.SosNotified {
		t.Fatalf("status = %q, want notified", alert.Status)
	}
}

func TestTriggerWithoutSMSClientPersistsAlert(t *testing.T) {
	svc, tx := newSosService(t, nil)
	ctx := context.Background()
	testutil.SeedContact(t, ctx, tx, "Ada", "+15550001")

	alert, err := svc.Trigger(ctx, "", "", "")
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if alert.ContactsNotified != 0 {
		t.Fatalf("notified = %d, want 0", alert.ContactsNotified)
	}
	if alert.Status != domain.SosTriggered {
		t.Fatalf("status = %q, want triggered", alert.Status)
	}
}

func TestResolveAlert(t *testing.T) {
	svc, tx := newSosService(t, &fakeSMS{})
	ctx := context.Background()
	testutil.SeedContact(t, ctx, tx, "Ada", "+15550001")

	alert, err := svc.Trigger(ctx, "", "", "")
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	resolved, err := svc.Resolve(ctx, alert.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Status != domain.SosResolved {
		t.Fatalf("status = %q, want resolved", resolved.Status)
	}
}

func TestContactCRUD(t *testing.T) {
	svc, _ := newSosService(t, &fakeSMS{})
	ctx := context.Background()

	contact, err := svc.CreateContact(ctx, "Ada", "+15550001", "sister")
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	newPhone := "+15559999"
	updated, err := svc.UpdateContact(ctx, contact.ID, services.ContactUpdate{Phone: &newPhone})
	if err != nil {
		t.Fatalf("UpdateContact: %v", err)
	}
	if updated.Phone != newPhone {
		t.Fatalf("phone = %q, want %q", updated.Phone, newPhone)
	}

	if err := svc.DeleteContact(ctx, contact.ID); err != nil {
		t.Fatalf("DeleteContact: %v", err)
	}
	contacts, err := svc.ListContacts(ctx)
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(contacts) != 0 {
		t.Fatalf("contacts remaining after delete: %d", len(contacts))
	}
}

func TestCreateContactValidation(t *testing.T) {
	svc, _ := newSosService(t, &fakeSMS{})
	_, err := svc.CreateContact(context.Background(), "", "+15550001", "")
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
