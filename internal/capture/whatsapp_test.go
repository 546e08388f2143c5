// internal/capture/whatsapp_test.go
//
// Widget capture tests: fail-fast config lookup, email-optional
// asymmetry, and deep-link construction.

package capture

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/converta/converta/internal/lead"
	"github.com/converta/converta/internal/requestinfo"
)

func whatsappChain(h *Handler) http.Handler {
	return requestinfo.Enrich(http.HandlerFunc(h.WhatsApp))
}

func configRow(phone, template string) *sqlmock.Rows {
	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "workspace_id", "phone", "message_template", "is_active",
		"button_color", "position", "greeting", "created_at", "updated_at",
	}).AddRow(1, "w1", phone, template, true, "#25D366", "bottom-right", "Fale conosco", now, now)
}

func TestWhatsApp_NoConfigFailsFastWithoutInsert(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewHandler(db)

	mock.ExpectQuery("SELECT (.+) FROM   whatsapp_config").
		WithArgs("w1").
		WillReturnError(sql.ErrNoRows)

	rr := postJSON(t, whatsappChain(h), "/leads/whatsapp",
		`{"workspace_id":"w1","data":{"name":"Ana"}}`)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("insert must not run without config: %v", err)
	}
}

func TestWhatsApp_MissingWorkspaceRejected(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewHandler(db)

	rr := postJSON(t, whatsappChain(h), "/leads/whatsapp",
		`{"data":{"name":"Ana"}}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestWhatsApp_EmailOptionalAndDeepLinkBuilt(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewHandler(db)

	mock.ExpectQuery("SELECT (.+) FROM   whatsapp_config").
		WithArgs("w1").
		WillReturnRows(configRow("+55 (11) 99999-0000", "Olá {{name}}"))

	mock.ExpectExec("INSERT INTO `lead`").
		WithArgs(sqlmock.AnyArg(), "w1", "", "Ana", "",
			"", lead.SourceWhatsAppWidget, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rr := postJSON(t, whatsappChain(h), "/leads/whatsapp",
		`{"workspace_id":"w1","data":{"name":"Ana"}}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp whatsappResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.LeadID == "" {
		t.Fatal("lead_id missing")
	}

	u, err := url.Parse(resp.RedirectURL)
	if err != nil {
		t.Fatalf("parse redirect_url: %v", err)
	}
	if !strings.HasSuffix(u.Path, "/5511999990000") {
		t.Fatalf("phone segment wrong: %q", u.Path)
	}
	if got := u.Query().Get("text"); got != "Olá Ana" {
		t.Fatalf("decoded text = %q, want %q", got, "Olá Ana")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestWhatsApp_ExtraDataTaggedWithWidgetSource(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewHandler(db)

	mock.ExpectQuery("SELECT (.+) FROM   whatsapp_config").
		WithArgs("w1").
		WillReturnRows(configRow("5511999990000", "Oi"))

	mock.ExpectExec("INSERT INTO `lead`").
		WithArgs(sqlmock.AnyArg(), "w1", "a@b.com", "Ana", "",
			"", lead.SourceWhatsAppWidget,
			extraMatch{check: func(extra map[string]any) bool {
				return extra["widget_source"] == "whatsapp" &&
					extra["interesse"] == "plano-pro"
			}},
			sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rr := postJSON(t, whatsappChain(h), "/leads/whatsapp",
		`{"workspace_id":"w1","data":{"name":"Ana","email":"A@B.com ","interesse":"plano-pro"}}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
