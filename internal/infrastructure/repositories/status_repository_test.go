package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/Uguee/accessvc/domain"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(&DBUser{}, &DBDocumentRecord{}, &DBInstitutionRegistration{}, &DBDriverValidation{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func TestStatusRepositoryImpl_FetchInstitutionRegistration(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		setupData      func(db *gorm.DB)
		expectedNil    bool
		expectedStatus domain.RegistrationStatus
	}{
		{
			name: "no registration",
			setupData: func(db *gorm.DB) {
				// No data setup
			},
			expectedNil: true,
		},
		{
			name: "single pending registration",
			setupData: func(db *gorm.DB) {
				db.Create(&DBInstitutionRegistration{
					UserID:        5,
					InstitutionID: 7,
					Status:        string(domain.RegistrationPending),
					CreatedAt:     base,
				})
			},
			expectedStatus: domain.RegistrationPending,
		},
		{
			name: "re-application after denial returns the newest row",
			setupData: func(db *gorm.DB) {
				db.Create(&DBInstitutionRegistration{
					UserID:        5,
					InstitutionID: 7,
					Status:        string(domain.RegistrationDenied),
					CreatedAt:     base,
				})
				db.Create(&DBInstitutionRegistration{
					UserID:        5,
					InstitutionID: 7,
					Status:        string(domain.RegistrationPending),
					CreatedAt:     base.Add(time.Hour),
				})
			},
			expectedStatus: domain.RegistrationPending,
		},
		{
			name: "another user's rows are invisible",
			setupData: func(db *gorm.DB) {
				db.Create(&DBInstitutionRegistration{
					UserID:        9,
					InstitutionID: 7,
					Status:        string(domain.RegistrationValidated),
					CreatedAt:     base,
				})
			},
			expectedNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			tt.setupData(db)
			repo := NewStatusRepository(db)

			reg, err := repo.FetchInstitutionRegistration(context.Background(), 5)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expectedNil {
				if reg != nil {
					t.Errorf("expected no registration, got %+v", reg)
				}
				return
			}
			if reg == nil {
				t.Fatal("expected a registration row")
			}
			if reg.Status != tt.expectedStatus {
				t.Errorf("expected status %s, got %s", tt.expectedStatus, reg.Status)
			}
			if reg.InstitutionID != 7 {
				t.Errorf("expected institution 7, got %d", reg.InstitutionID)
			}
		})
	}
}

func TestStatusRepositoryImpl_FetchDriverValidation(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("absence is a nil row", func(t *testing.T) {
		repo := NewStatusRepository(setupTestDB(t))

		dv, err := repo.FetchDriverValidation(context.Background(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dv != nil {
			t.Errorf("expected no driver validation, got %+v", dv)
		}
	})

	t.Run("retry after denial returns the newest row", func(t *testing.T) {
		db := setupTestDB(t)
		db.Create(&DBDriverValidation{
			UserID:        5,
			InstitutionID: 7,
			Status:        string(domain.DriverDenied),
			CreatedAt:     base,
		})
		db.Create(&DBDriverValidation{
			UserID:        5,
			InstitutionID: 7,
			Status:        string(domain.DriverPending),
			CreatedAt:     base.Add(time.Hour),
		})
		repo := NewStatusRepository(db)

		dv, err := repo.FetchDriverValidation(context.Background(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dv == nil {
			t.Fatal("expected a driver validation row")
		}
		if dv.Status != domain.DriverPending {
			t.Errorf("expected the newest pending row, got %s", dv.Status)
		}
	})
}

func TestStatusRepositoryImpl_Documents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStatusRepository(db)
	ctx := context.Background()

	has, err := repo.FetchDocuments(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if has {
		t.Error("expected no documents before submission")
	}

	if err := repo.CreateDocuments(ctx, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	has, err = repo.FetchDocuments(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !has {
		t.Error("expected documents after submission")
	}

	if err := repo.CreateDocuments(ctx, 5); err != domain.ErrDocumentsAlreadySubmitted {
		t.Errorf("expected ErrDocumentsAlreadySubmitted, got %v", err)
	}
}

func TestStatusRepositoryImpl_UpdateRegistrationStatus(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("updates only the newest registration", func(t *testing.T) {
		db := setupTestDB(t)
		db.Create(&DBInstitutionRegistration{
			UserID:        5,
			InstitutionID: 7,
			Status:        string(domain.RegistrationDenied),
			CreatedAt:     base,
		})
		db.Create(&DBInstitutionRegistration{
			UserID:        5,
			InstitutionID: 7,
			Status:        string(domain.RegistrationPending),
			CreatedAt:     base.Add(time.Hour),
		})
		repo := NewStatusRepository(db)

		err := repo.UpdateRegistrationStatus(context.Background(), 5, domain.RegistrationValidated)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var rows []DBInstitutionRegistration
		db.Where("user_id = ?", 5).Order("created_at ASC").Find(&rows)
		if len(rows) != 2 {
			t.Fatalf("expected both rows to remain, got %d", len(rows))
		}
		if rows[0].Status != string(domain.RegistrationDenied) {
			t.Errorf("older row must be untouched, got %s", rows[0].Status)
		}
		if rows[1].Status != string(domain.RegistrationValidated) {
			t.Errorf("newest row must carry the review outcome, got %s", rows[1].Status)
		}
	})

	t.Run("missing registration", func(t *testing.T) {
		repo := NewStatusRepository(setupTestDB(t))

		err := repo.UpdateRegistrationStatus(context.Background(), 5, domain.RegistrationValidated)
		if err != domain.ErrRegistrationNotFound {
			t.Errorf("expected ErrRegistrationNotFound, got %v", err)
		}
	})
}

func TestStatusRepositoryImpl_UpdateDriverStatus(t *testing.T) {
	t.Run("updates the pending request", func(t *testing.T) {
		db := setupTestDB(t)
		db.Create(&DBDriverValidation{
			UserID:        5,
			InstitutionID: 7,
			Status:        string(domain.DriverPending),
		})
		repo := NewStatusRepository(db)

		if err := repo.UpdateDriverStatus(context.Background(), 5, domain.DriverValidated); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		dv, err := repo.FetchDriverValidation(context.Background(), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dv == nil || dv.Status != domain.DriverValidated {
			t.Errorf("expected a validated row, got %+v", dv)
		}
	})

	t.Run("missing request", func(t *testing.T) {
		repo := NewStatusRepository(setupTestDB(t))

		err := repo.UpdateDriverStatus(context.Background(), 5, domain.DriverValidated)
		if err != domain.ErrDriverRequestNotFound {
			t.Errorf("expected ErrDriverRequestNotFound, got %v", err)
		}
	})
}
