package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stocka-io/stocka-api/internal/models"
)

func registerBody() models.RegisterRequest {
	return models.RegisterRequest{
		User: models.RegisterUser{
			FirstName: "Ama",
			LastName:  "Mensah",
			Email:     "admin@acme.com",
			Password:  "open sesame",
		},
		BusinessContact: models.BusinessContact{
			Name:    "Acme",
			Email:   "contact@acme.com",
			Phone:   "+233200000000",
			Address: "1 Acme Way",
		},
		BusinessData: models.BusinessProfile{
			Industry:  "Retail",
			RegStatus: "registered",
			Size:      "11-50",
		},
	}
}

func idRows(n int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id"})
	for i := 0; i < n; i++ {
		rows.AddRow(uuid.New().String())
	}
	return rows
}

func TestRegisterSuccess(t *testing.T) {
	f := newFixture(t)

	permCount := len(models.DefaultPermissionNames())
	roleCount := len(models.DefaultRoleNames())

	// Pre-check reads.
	f.mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	f.mock.ExpectQuery(`SELECT count\(\*\) FROM "businesses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	// The bootstrap transaction.
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`INSERT INTO "businesses"`).WillReturnRows(idRows(1))
	f.mock.ExpectQuery(`INSERT INTO "locations"`).WillReturnRows(idRows(1))
	f.mock.ExpectQuery(`INSERT INTO "permissions"`).WillReturnRows(idRows(permCount))
	for i := 0; i < roleCount; i++ {
		f.mock.ExpectQuery(`INSERT INTO "roles"`).WillReturnRows(idRows(1))
	}
	f.mock.ExpectQuery(`INSERT INTO "role_permissions"`).WillReturnRows(idRows(permCount * 2))
	f.mock.ExpectQuery(`INSERT INTO "users"`).WillReturnRows(idRows(1))
	f.mock.ExpectCommit()
	f.expectAudit()

	rec := f.do(t, http.MethodPost, "/register", "", registerBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.RegisterResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !resp.Auth || resp.BusinessID == uuid.Nil || resp.Access == "" || resp.Refresh == "" {
		t.Fatalf("incomplete register envelope: %+v", resp)
	}

	identity, err := f.tokens.VerifyAccessToken(resp.Access)
	if err != nil {
		t.Fatalf("access token rejected: %v", err)
	}
	if identity.RoleName != string(models.RoleSuperAdmin) {
		t.Fatalf("first session must carry the superadmin role, got %q", identity.RoleName)
	}
	if identity.BusinessID != resp.BusinessID {
		t.Fatalf("token business id mismatch")
	}

	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterBusinessEmailConflict(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	f.mock.ExpectQuery(`SELECT count\(\*\) FROM "businesses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rec := f.do(t, http.MethodPost, "/register", "", registerBody())
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "business") {
		t.Fatalf("expected conflict message to name the business email: %s", rec.Body.String())
	}
}

func TestRegisterMissingFields(t *testing.T) {
	f := newFixture(t)

	body := registerBody()
	body.User.Password = ""

	rec := f.do(t, http.MethodPost, "/register", "", body)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
