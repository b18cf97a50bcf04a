package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stocka-io/stocka-api/internal/models"
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

func idRows(n int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id"})
	for i := 0; i < n; i++ {
		rows.AddRow(uuid.New().String())
	}
	return rows
}

func bootstrapInput() BootstrapInput {
	return BootstrapInput{
		Business: models.Business{
			Name:  "Acme",
			Email: "contact@acme.com",
		},
		LocationName:    "Head office",
		Address:         "1 Acme Way",
		PermissionNames: models.DefaultPermissionNames(),
		RoleNames:       models.DefaultRoleNames(),
		FullGrantRoles:  []models.RoleName{models.RoleSuperAdmin, models.RoleAdmin},
		AdminRole:       models.RoleSuperAdmin,
		User: models.User{
			FirstName: "Ama",
			LastName:  "Mensah",
			Email:     "admin@acme.com",
			Password:  "$2a$12$notarealhash",
		},
	}
}

func TestBootstrapCommit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTenantRepository(db)

	in := bootstrapInput()
	permCount := len(in.PermissionNames)
	bindingCount := permCount * len(in.FullGrantRoles)
	superadminID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "businesses"`).WillReturnRows(idRows(1))
	mock.ExpectQuery(`INSERT INTO "locations"`).WillReturnRows(idRows(1))
	mock.ExpectQuery(`INSERT INTO "permissions"`).WillReturnRows(idRows(permCount))
	// Roles are created in default order, superadmin first.
	mock.ExpectQuery(`INSERT INTO "roles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(superadminID.String()))
	mock.ExpectQuery(`INSERT INTO "roles"`).WillReturnRows(idRows(1))
	mock.ExpectQuery(`INSERT INTO "roles"`).WillReturnRows(idRows(1))
	mock.ExpectQuery(`INSERT INTO "roles"`).WillReturnRows(idRows(1))
	mock.ExpectQuery(`INSERT INTO "role_permissions"`).WillReturnRows(idRows(bindingCount))
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnRows(idRows(1))
	mock.ExpectCommit()

	result, err := repo.Bootstrap(context.Background(), in)
	if err != nil {
		t.Fatalf("bootstrap error: %v", err)
	}

	if result.AdminRole.Name != string(models.RoleSuperAdmin) {
		t.Fatalf("expected superadmin role, got %q", result.AdminRole.Name)
	}
	if result.AdminRole.ID != superadminID {
		t.Fatalf("superadmin role id not captured")
	}
	if result.User.RoleID != superadminID {
		t.Fatalf("first user must be bound to the superadmin role")
	}
	if result.User.BusinessID != result.Business.ID {
		t.Fatalf("first user must belong to the new business")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBootstrapRollbackOnBusinessInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTenantRepository(db)

	boom := errors.New("duplicate key value violates unique constraint")

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "businesses"`).WillReturnError(boom)
	mock.ExpectRollback()

	if _, err := repo.Bootstrap(context.Background(), bootstrapInput()); !errors.Is(err, boom) {
		t.Fatalf("expected insert failure to surface, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected rollback, got: %v", err)
	}
}

func TestBootstrapRollbackOnBindingInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTenantRepository(db)

	in := bootstrapInput()
	boom := errors.New("constraint violation")

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "businesses"`).WillReturnRows(idRows(1))
	mock.ExpectQuery(`INSERT INTO "locations"`).WillReturnRows(idRows(1))
	mock.ExpectQuery(`INSERT INTO "permissions"`).WillReturnRows(idRows(len(in.PermissionNames)))
	mock.ExpectQuery(`INSERT INTO "roles"`).WillReturnRows(idRows(1))
	mock.ExpectQuery(`INSERT INTO "roles"`).WillReturnRows(idRows(1))
	mock.ExpectQuery(`INSERT INTO "roles"`).WillReturnRows(idRows(1))
	mock.ExpectQuery(`INSERT INTO "roles"`).WillReturnRows(idRows(1))
	mock.ExpectQuery(`INSERT INTO "role_permissions"`).WillReturnError(boom)
	mock.ExpectRollback()

	// A failure at the binding step must leave no tenant rows behind.
	if _, err := repo.Bootstrap(context.Background(), in); !errors.Is(err, boom) {
		t.Fatalf("expected insert failure to surface, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expected rollback, got: %v", err)
	}
}

func TestDefaultCatalogShape(t *testing.T) {
	perms := models.DefaultPermissionNames()
	if len(perms) != 36 {
		t.Fatalf("expected 36 default permissions, got %d", len(perms))
	}

	seen := make(map[string]bool, len(perms))
	for _, p := range perms {
		if seen[p] {
			t.Fatalf("duplicate permission %q", p)
		}
		seen[p] = true
	}
	if !seen["CreateProduct"] || !seen["ViewInbound"] || !seen["DeleteUser"] {
		t.Fatalf("expected catalog to cover product, inbound and user actions")
	}

	roles := models.DefaultRoleNames()
	if len(roles) != 4 {
		t.Fatalf("expected 4 default roles, got %d", len(roles))
	}
}
