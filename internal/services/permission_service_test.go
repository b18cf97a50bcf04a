package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stocka-io/stocka-api/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return db, mock
}

func TestPermissionCheckGranted(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPermissionService(repository.NewPermissionRepository(db))

	businessID := uuid.New()
	roleID := uuid.New()
	permID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "roles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "name"}).
			AddRow(roleID.String(), businessID.String(), "superadmin"))
	mock.ExpectQuery(`SELECT (.+) FROM "permissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "name"}).
			AddRow(permID.String(), businessID.String(), "CreateProduct"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "role_permissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	allowed, err := svc.Check(context.Background(), "superadmin", "CreateProduct", businessID)
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	if !allowed {
		t.Fatalf("expected grant")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPermissionCheckRoleMissing(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPermissionService(repository.NewPermissionRepository(db))

	// No role row for this tenant: denial, and the remaining lookups are
	// never issued.
	mock.ExpectQuery(`SELECT (.+) FROM "roles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "name"}))

	allowed, err := svc.Check(context.Background(), "superadmin", "CreateProduct", uuid.New())
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	if allowed {
		t.Fatalf("expected denial for missing role")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPermissionCheckBindingMissing(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPermissionService(repository.NewPermissionRepository(db))

	businessID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "roles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "name"}).
			AddRow(uuid.New().String(), businessID.String(), "outbounds manager"))
	mock.ExpectQuery(`SELECT (.+) FROM "permissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "name"}).
			AddRow(uuid.New().String(), businessID.String(), "DeleteRole"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "role_permissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	allowed, err := svc.Check(context.Background(), "outbounds manager", "DeleteRole", businessID)
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	if allowed {
		t.Fatalf("expected denial without a binding row")
	}
}

func TestPermissionCheckScopedByTenant(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPermissionService(repository.NewPermissionRepository(db))

	otherTenant := uuid.New()

	// The role lookup carries the tenant id, so an identically named role in
	// another tenant never matches.
	mock.ExpectQuery(`SELECT (.+) FROM "roles"`).
		WithArgs("superadmin", otherTenant, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "business_id", "name"}))

	allowed, err := svc.Check(context.Background(), "superadmin", "CreateProduct", otherTenant)
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	if allowed {
		t.Fatalf("expected denial in the other tenant")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPermissionCheckStoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPermissionService(repository.NewPermissionRepository(db))

	mock.ExpectQuery(`SELECT (.+) FROM "roles"`).
		WillReturnError(gorm.ErrInvalidDB)

	allowed, err := svc.Check(context.Background(), "superadmin", "CreateProduct", uuid.New())
	if err == nil {
		t.Fatalf("expected store failure to surface")
	}
	if allowed {
		t.Fatalf("store failure must never grant")
	}
}
