package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type EmergencyContactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contact *domain.EmergencyContact) (*domain.EmergencyContact, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.EmergencyContact, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.EmergencyContact, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type emergencyContactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmergencyContactRepo(db *gorm.DB, baseLog *logger.Logger) EmergencyContactRepo {
	return &emergencyContactRepo{db: db, log: baseLog.With("repo", "EmergencyContactRepo")}
}

func (r *emergencyContactRepo) Create(ctx context.Context, tx *gorm.DB, contact *domain.EmergencyContact) (*domain.EmergencyContact, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if contact == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *emergencyContactRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.EmergencyContact, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var contact domain.EmergencyContact
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *emergencyContactRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.EmergencyContact, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.EmergencyContact
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *emergencyContactRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return transaction.WithContext(ctx).
		Model(&domain.EmergencyContact{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *emergencyContactRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.EmergencyContact{}).Error
}

type SosAlertRepo interface {
	Create(ctx context.Context, tx *gorm.DB, alert *domain.SosAlert) (*domain.SosAlert, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.SosAlert, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.SosAlert, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type sosAlertRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSosAlertRepo(db *gorm.DB, baseLog *logger.Logger) SosAlertRepo {
	return &sosAlertRepo{db: db, log: baseLog.With("repo", "SosAlertRepo")}
}

func (r *sosAlertRepo) Create(ctx context.Context, tx *gorm.DB, alert *domain.SosAlert) (*domain.SosAlert, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if alert == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).Create(alert).Error; err != nil {
		return nil, err
	}
	return alert, nil
}

func (r *sosAlertRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.SosAlert, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var alert domain.SosAlert
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *sosAlertRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.SosAlert, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.SosAlert
	if err := transaction.WithContext(ctx).
		Order("triggered_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sosAlertRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&domain.SosAlert{}).
		Where("id = ?", id).
		Updates(updates).Error
}
