// internal/capture/handler.go
//
// Public lead-ingestion endpoint.
//
/*
Context
--------
`POST /leads/capture` is the anonymous, cross-origin intake path behind
the embeddable capture script.  The trust boundary is deliberately thin:
a parseable JSON body carrying a workspace id and an email.  There is no
authentication, rate limiting, or spam control on this surface today;
any caller who knows a workspace id can inject leads (tracked as a
hardening gap, see DESIGN.md).

Workflow
--------
  1. Decode the body twice: into a typed struct for the known fields and
     into a map for everything else.
  2. Normalize the email (lowercase, trim), so a whitespace-only value
     counts as absent.
  3. Validate workspace_id and email (go-playground/validator).
  4. Copy unknown keys verbatim into the extra-fields bag, then fold the
     request metadata (UA, IP, geo, referer) under the reserved `_meta`
     key.  lead.Merge guarantees a payload-supplied `_meta` is preserved
     alongside ours instead of being overwritten.
  5. Insert the row and answer {success, lead_id}.

Errors
------
Malformed input → 400 with a static message.  Storage failure → 500 with
the storage-layer message (the backend's error shape exposes nothing
sensitive at this boundary).  CORS headers are applied by the router for
every branch, including preflight.
*/

package capture

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/converta/converta/internal/lead"
	"github.com/converta/converta/internal/metrics"
	"github.com/converta/converta/internal/requestinfo"
)

// Body size cap for intake payloads.  A legitimate form submission is a
// few KB; anything near the cap is junk.
const maxBodyBytes = 256 << 10

var v = validator.New()

// Handler serves the public capture endpoints.
type Handler struct {
	db *sqlx.DB
}

func NewHandler(db *sqlx.DB) *Handler { return &Handler{db: db} }

//
// request / response shapes
//

type captureRequest struct {
	WorkspaceID string `json:"workspace_id" validate:"required"`
	Email       string `json:"email"        validate:"required"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	PageURL     string `json:"page_url"`
	Source      string `json:"source"`
}

// knownKeys are the top-level payload keys bound to lead columns; every
// other key lands verbatim in the extra-fields bag.
var knownKeys = map[string]struct{}{
	"workspace_id": {}, "email": {}, "name": {},
	"phone": {}, "page_url": {}, "source": {},
}

type captureResponse struct {
	Success bool   `json:"success"`
	LeadID  string `json:"lead_id"`
}

// Capture handles POST /leads/capture.
func (h *Handler) Capture(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		metrics.CaptureRejectedTotal.WithLabelValues("invalid_json").Inc()
		return
	}

	var req captureRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		metrics.CaptureRejectedTotal.WithLabelValues("invalid_json").Inc()
		return
	}
	req.Email = lead.NormalizeEmail(req.Email)
	if err := v.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "workspace_id and email are required")
		metrics.CaptureRejectedTotal.WithLabelValues("missing_field").Inc()
		return
	}

	var raw map[string]any
	_ = json.Unmarshal(body, &raw) // cannot fail after the struct decode

	extra := lead.Extra{}
	for k, val := range raw {
		if _, known := knownKeys[k]; known {
			continue
		}
		lead.Merge(extra, k, val)
	}
	if info := requestinfo.FromContext(r.Context()); info != nil {
		lead.Merge(extra, lead.MetaKey, info.Meta())
	}

	source := req.Source
	if source == "" {
		source = lead.SourceLegacyForm
	}

	rec := &lead.Record{
		WorkspaceID: req.WorkspaceID,
		Email:       req.Email,
		Name:        req.Name,
		Phone:       req.Phone,
		PageURL:     req.PageURL,
		SourceType:  source,
		Extra:       extra,
	}
	if err := lead.Create(r.Context(), h.db, rec); err != nil {
		zap.S().Errorw("lead insert failed",
			"workspace", req.WorkspaceID, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		metrics.CaptureRejectedTotal.WithLabelValues("storage_error").Inc()
		return
	}

	metrics.LeadsCapturedTotal.WithLabelValues(rec.SourceType).Inc()
	writeJSON(w, http.StatusOK, captureResponse{Success: true, LeadID: rec.ID})
}

// Preflight answers OPTIONS for the capture endpoints with no body; the
// CORS middleware has already attached the response headers.
func (h *Handler) Preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

//
// JSON helpers
//

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
