// internal/capture/handler_test.go
//
// Ingestion endpoint tests: validation, normalization, metadata nesting.
// Storage is sqlmock; requests go through the requestinfo middleware the
// same way the production router wires it.

package capture

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/converta/converta/internal/lead"
	"github.com/converta/converta/internal/requestinfo"
)

var errDuplicate = errors.New("duplicate entry 'a@b.com' for key 'uq_lead'")

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) Chrome/124.0.0.0")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func captureChain(h *Handler) http.Handler {
	return requestinfo.Enrich(http.HandlerFunc(h.Capture))
}

// extraMatch matches the JSON-encoded extra-fields bind argument.
type extraMatch struct {
	check func(map[string]any) bool
}

func (m extraMatch) Match(v driver.Value) bool {
	b, ok := v.([]byte)
	if !ok {
		if s, sok := v.(string); sok {
			b = []byte(s)
		} else {
			return false
		}
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return false
	}
	return m.check(decoded)
}

func TestCapture_MissingEmailRejectedWithoutInsert(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewHandler(db)

	rr := postJSON(t, captureChain(h), "/leads/capture",
		`{"workspace_id":"w1","name":"X"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no SQL should run on rejection: %v", err)
	}
}

func TestCapture_WhitespaceEmailCountsAsMissing(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewHandler(db)

	rr := postJSON(t, captureChain(h), "/leads/capture",
		`{"workspace_id":"w1","email":"   "}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestCapture_InvalidJSONRejected(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewHandler(db)

	rr := postJSON(t, captureChain(h), "/leads/capture", `{"workspace_id":`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestCapture_NormalizesEmailAndDefaultsSource(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewHandler(db)

	mock.ExpectExec("INSERT INTO `lead`").
		WithArgs(sqlmock.AnyArg(), "w1", "a@b.com", "X", "", "",
			lead.SourceLegacyForm, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rr := postJSON(t, captureChain(h), "/leads/capture",
		`{"workspace_id":"w1","email":"A@B.com ","name":"X"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp captureResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.LeadID == "" {
		t.Fatalf("response = %+v", resp)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCapture_ExtraFieldsVerbatimAndMetaNested(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewHandler(db)

	mock.ExpectExec("INSERT INTO `lead`").
		WithArgs(sqlmock.AnyArg(), "w1", "a@b.com", "", "", "",
			lead.SourceLegacyForm,
			extraMatch{check: func(extra map[string]any) bool {
				if extra["company"] != "ACME" {
					return false
				}
				meta, ok := extra[lead.MetaKey].(map[string]any)
				if !ok {
					return false
				}
				_, hasUA := meta["user_agent"]
				return hasUA
			}},
			sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rr := postJSON(t, captureChain(h), "/leads/capture",
		`{"workspace_id":"w1","email":"a@b.com","company":"ACME"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCapture_PayloadMetaKeySurvivesServerMeta(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewHandler(db)

	mock.ExpectExec("INSERT INTO `lead`").
		WithArgs(sqlmock.AnyArg(), "w1", "a@b.com", "", "", "",
			lead.SourceLegacyForm,
			extraMatch{check: func(extra map[string]any) bool {
				// Payload "_meta" and server metadata must coexist as an
				// ordered pair, payload value first.
				seq, ok := extra[lead.MetaKey].([]any)
				if !ok || len(seq) != 2 {
					return false
				}
				if seq[0] != "spoof" {
					return false
				}
				srv, ok := seq[1].(map[string]any)
				if !ok {
					return false
				}
				_, hasUA := srv["user_agent"]
				return hasUA
			}},
			sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rr := postJSON(t, captureChain(h), "/leads/capture",
		`{"workspace_id":"w1","email":"a@b.com","_meta":"spoof"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCapture_StorageFailurePassesMessage(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewHandler(db)

	mock.ExpectExec("INSERT INTO `lead`").
		WillReturnError(errDuplicate)

	rr := postJSON(t, captureChain(h), "/leads/capture",
		`{"workspace_id":"w1","email":"a@b.com"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "duplicate entry") {
		t.Fatalf("storage message not surfaced: %s", rr.Body.String())
	}
}
