// internal/agent/agent.go
//
// Embeddable capture script, served at GET /embed/capture.js.
//
/*
Context
--------
Customers drop one <script> tag on their landing pages.  The script
binds to matching forms, canonicalizes field names with the same
vocabulary the intake API uses, and beacons the submission to
POST /leads/capture without ever interfering with the native submit.

The vocabulary lives in internal/lead; the template is rendered once at
startup so the browser and the server can never disagree on the table.
*/

package agent

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"text/template"

	"github.com/converta/converta/internal/lead"
)

//go:embed capture.js.tmpl
var captureTmpl string

// Handler serves the rendered capture script.
type Handler struct {
	script []byte
	etag   string
}

// NewHandler renders capture.js with the lead vocabulary injected.
func NewHandler() (*Handler, error) {
	tmpl, err := template.New("capture.js").Parse(captureTmpl)
	if err != nil {
		return nil, fmt.Errorf("agent: parse template: %w", err)
	}

	vocab, err := json.Marshal(lead.Synonyms())
	if err != nil {
		return nil, fmt.Errorf("agent: marshal synonyms: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Synonyms string }{string(vocab)}); err != nil {
		return nil, fmt.Errorf("agent: render: %w", err)
	}

	h := &Handler{script: buf.Bytes()}
	sum := fnv.New64a()
	sum.Write(h.script)
	h.etag = strconv.Quote(strconv.FormatUint(sum.Sum64(), 16))
	return h, nil
}

// Serve writes the script with cache headers.  The script only changes
// on deploy, so an hour of client caching is safe.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if match := r.Header.Get("If-None-Match"); match != "" && match == h.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("ETag", h.etag)
	w.Write(h.script)
}
