// internal/widget/handler.go
//
// Public, read-only widget configuration endpoint.
//
/*
Context
--------
`GET /widgets/whatsapp?workspace_id=…` tells an embedded widget how to
render: destination phone, message template, colors, greeting.  A
workspace with no configuration row — or one that disabled the widget —
answers `{"is_active": false}` with HTTP 200, so the widget simply does
not render instead of surfacing an error on the customer's page.  Only a
real storage failure is a 500.
*/

package widget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/converta/converta/internal/metrics"
	"github.com/converta/converta/internal/whatsapp"
)

// Handler serves widget configuration reads.
type Handler struct {
	db    *sqlx.DB
	cache *Cache // nil disables caching
}

func NewHandler(db *sqlx.DB, cache *Cache) *Handler {
	return &Handler{db: db, cache: cache}
}

var inactive = map[string]bool{"is_active": false}

// WhatsAppConfig handles GET /widgets/whatsapp.
func (h *Handler) WhatsAppConfig(w http.ResponseWriter, r *http.Request) {
	workspaceID := r.URL.Query().Get("workspace_id")
	if workspaceID == "" {
		writeJSON(w, http.StatusBadRequest,
			map[string]string{"error": "workspace_id is required"})
		return
	}

	if cfg, ok := h.cache.Get(r.Context(), workspaceID); ok {
		metrics.WidgetConfigLookupsTotal.WithLabelValues("hit").Inc()
		writeJSON(w, http.StatusOK, cfg)
		return
	}

	cfg, err := whatsapp.ConfigByWorkspace(r.Context(), h.db, workspaceID)
	if err != nil {
		if errors.Is(err, whatsapp.ErrNotFound) {
			metrics.WidgetConfigLookupsTotal.WithLabelValues("inactive").Inc()
			writeJSON(w, http.StatusOK, inactive)
			return
		}
		metrics.WidgetConfigLookupsTotal.WithLabelValues("error").Inc()
		zap.S().Errorw("widget config lookup failed",
			"workspace", workspaceID, "err", err)
		writeJSON(w, http.StatusInternalServerError,
			map[string]string{"error": err.Error()})
		return
	}

	// A deactivated row degrades exactly like a missing one: the widget
	// must not learn the phone or template of a tenant that switched the
	// feature off.  Inactive rows are never cached, so re-activation is
	// visible on the next read.
	if !cfg.IsActive {
		metrics.WidgetConfigLookupsTotal.WithLabelValues("inactive").Inc()
		writeJSON(w, http.StatusOK, inactive)
		return
	}

	h.cache.Set(r.Context(), workspaceID, cfg)
	metrics.WidgetConfigLookupsTotal.WithLabelValues("hit").Inc()
	writeJSON(w, http.StatusOK, cfg)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
