// internal/capture/whatsapp.go
//
// Widget-driven capture: lead creation plus messaging redirect.
//
/*
Context
--------
`POST /leads/whatsapp` backs the WhatsApp widget.  Unlike the classic
form path, email is optional here: the visitor is about to open a chat,
so the phone number is the primary identifier.  That asymmetry is part
of the contract, not an oversight.

The workspace's WhatsApp configuration is resolved first; a workspace
without one gets a 404 before any row is written (fail fast, no orphan
leads).  On success the handler answers with the new lead id and the
wa.me deep link the widget navigates to.
*/

package capture

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/converta/converta/internal/lead"
	"github.com/converta/converta/internal/metrics"
	"github.com/converta/converta/internal/requestinfo"
	"github.com/converta/converta/internal/whatsapp"
)

type whatsappRequest struct {
	WorkspaceID string         `json:"workspace_id" validate:"required"`
	Data        map[string]any `json:"data"`
}

type whatsappResponse struct {
	Success     bool   `json:"success"`
	LeadID      string `json:"lead_id"`
	RedirectURL string `json:"redirect_url"`
}

// dataKeys are the nested data-object keys bound to lead columns.
var dataKeys = map[string]struct{}{
	"email": {}, "name": {}, "phone": {},
}

// WhatsApp handles POST /leads/whatsapp.
func (h *Handler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	var req whatsappRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		metrics.CaptureRejectedTotal.WithLabelValues("invalid_json").Inc()
		return
	}
	if err := v.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "workspace_id is required")
		metrics.CaptureRejectedTotal.WithLabelValues("missing_field").Inc()
		return
	}

	// Config lookup comes first: no configuration, no lead.
	cfg, err := whatsapp.ConfigByWorkspace(r.Context(), h.db, req.WorkspaceID)
	if err != nil {
		if errors.Is(err, whatsapp.ErrNotFound) {
			writeError(w, http.StatusNotFound, "whatsapp config not found")
			metrics.CaptureRejectedTotal.WithLabelValues("no_config").Inc()
			return
		}
		zap.S().Errorw("whatsapp config lookup failed",
			"workspace", req.WorkspaceID, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rec := &lead.Record{
		WorkspaceID: req.WorkspaceID,
		Email:       lead.NormalizeEmail(stringField(req.Data, "email")),
		Name:        stringField(req.Data, "name"),
		Phone:       stringField(req.Data, "phone"),
		SourceType:  lead.SourceWhatsAppWidget,
		Extra:       lead.Extra{"widget_source": "whatsapp"},
	}
	for k, val := range req.Data {
		if _, known := dataKeys[k]; known {
			continue
		}
		lead.Merge(rec.Extra, k, val)
	}
	if info := requestinfo.FromContext(r.Context()); info != nil {
		lead.Merge(rec.Extra, lead.MetaKey, info.Meta())
	}

	if err := lead.Create(r.Context(), h.db, rec); err != nil {
		zap.S().Errorw("whatsapp lead insert failed",
			"workspace", req.WorkspaceID, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		metrics.CaptureRejectedTotal.WithLabelValues("storage_error").Inc()
		return
	}

	metrics.LeadsCapturedTotal.WithLabelValues(rec.SourceType).Inc()
	writeJSON(w, http.StatusOK, whatsappResponse{
		Success:     true,
		LeadID:      rec.ID,
		RedirectURL: whatsapp.DeepLink(cfg, whatsapp.Fields{Name: rec.Name, Email: rec.Email}),
	})
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
