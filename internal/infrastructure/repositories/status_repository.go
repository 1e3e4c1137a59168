package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Uguee/accessvc/domain"
)

// StatusRepositoryImpl implements domain.StatusStore and
// domain.StatusWriter against the platform record store. Reads are
// point lookups by user ID; absence is reported as a nil row, never as
// an error.
type StatusRepositoryImpl struct {
	db *gorm.DB
}

// DBDocumentRecord is the presence-only identity-documents row.
type DBDocumentRecord struct {
	UserID    uint `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (DBDocumentRecord) TableName() string { return "document_records" }

// DBInstitutionRegistration is one application of a user to an
// institution. The store does not enforce a single row per user; the
// reader takes the newest one.
type DBInstitutionRegistration struct {
	ID                uint   `gorm:"primaryKey"`
	UserID            uint   `gorm:"index"`
	InstitutionID     uint   `gorm:"index"`
	Status            string `gorm:"size:32;default:pending"`
	InstitutionalRole string `gorm:"size:64"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (DBInstitutionRegistration) TableName() string { return "institution_registrations" }

// DBDriverValidation is one driver-validation request.
type DBDriverValidation struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        uint   `gorm:"index"`
	InstitutionID uint   `gorm:"index"`
	Status        string `gorm:"size:32;default:pending"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (DBDriverValidation) TableName() string { return "driver_validations" }

// NewStatusRepository creates a record-store backed status repository
func NewStatusRepository(db *gorm.DB) *StatusRepositoryImpl {
	return &StatusRepositoryImpl{db: db}
}

// FetchDocuments implements domain.StatusStore
func (r *StatusRepositoryImpl) FetchDocuments(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBDocumentRecord{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FetchInstitutionRegistration implements domain.StatusStore. When a
// user has applied more than once (a denial followed by a fresh
// application), the newest row governs.
func (r *StatusRepositoryImpl) FetchInstitutionRegistration(ctx context.Context, userID uint) (*domain.InstitutionRegistration, error) {
	var row DBInstitutionRegistration
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &domain.InstitutionRegistration{
		UserID:            row.UserID,
		InstitutionID:     row.InstitutionID,
		Status:            domain.RegistrationStatus(row.Status),
		InstitutionalRole: row.InstitutionalRole,
		CreatedAt:         row.CreatedAt,
	}, nil
}

// FetchDriverValidation implements domain.StatusStore
func (r *StatusRepositoryImpl) FetchDriverValidation(ctx context.Context, userID uint) (*domain.DriverValidation, error) {
	var row DBDriverValidation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &domain.DriverValidation{
		UserID:        row.UserID,
		InstitutionID: row.InstitutionID,
		Status:        domain.DriverStatus(row.Status),
		CreatedAt:     row.CreatedAt,
	}, nil
}

// CreateDocuments implements domain.StatusWriter
func (r *StatusRepositoryImpl) CreateDocuments(ctx context.Context, userID uint) error {
	exists, err := r.FetchDocuments(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDocumentsAlreadySubmitted
	}
	return r.db.WithContext(ctx).Create(&DBDocumentRecord{UserID: userID}).Error
}

// CreateRegistration implements domain.StatusWriter
func (r *StatusRepositoryImpl) CreateRegistration(ctx context.Context, reg *domain.InstitutionRegistration) error {
	row := DBInstitutionRegistration{
		UserID:            reg.UserID,
		InstitutionID:     reg.InstitutionID,
		Status:            string(reg.Status),
		InstitutionalRole: reg.InstitutionalRole,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// UpdateRegistrationStatus implements domain.StatusWriter. Only the
// newest registration is the live one, so only it is updated.
func (r *StatusRepositoryImpl) UpdateRegistrationStatus(ctx context.Context, userID uint, status domain.RegistrationStatus) error {
	var row DBInstitutionRegistration
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.ErrRegistrationNotFound
		}
		return err
	}
	return r.db.WithContext(ctx).Model(&row).Update("status", string(status)).Error
}

// CreateDriverValidation implements domain.StatusWriter
func (r *StatusRepositoryImpl) CreateDriverValidation(ctx context.Context, dv *domain.DriverValidation) error {
	row := DBDriverValidation{
		UserID:        dv.UserID,
		InstitutionID: dv.InstitutionID,
		Status:        string(dv.Status),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// UpdateDriverStatus implements domain.StatusWriter
func (r *StatusRepositoryImpl) UpdateDriverStatus(ctx context.Context, userID uint, status domain.DriverStatus) error {
	var row DBDriverValidation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.ErrDriverRequestNotFound
		}
		return err
	}
	return r.db.WithContext(ctx).Model(&row).Update("status", string(status)).Error
}

// Compile-time interface compliance verification
var (
	_ domain.StatusStore  = (*StatusRepositoryImpl)(nil)
	_ domain.StatusWriter = (*StatusRepositoryImpl)(nil)
)
