// internal/whatsapp/link.go
//
// Deep-link construction for widget-driven capture.
//
// Context
// -------
// After the widget submits a visitor's details, the server answers with a
// wa.me URL the widget navigates to.  The configured message template may
// carry {{name}} and {{email}} tokens; tokens whose value is absent stay
// intact in the message rather than being blanked, so operators can spot
// a misconfigured form instead of silently greeting nobody.

package whatsapp

import (
	"net/url"
	"strings"
)

// Fields holds the lead attributes available for template substitution.
type Fields struct {
	Name  string
	Email string
}

// RenderTemplate substitutes known placeholder tokens.  Unknown tokens
// and tokens without a value are left untouched.
func RenderTemplate(template string, f Fields) string {
	out := template
	if f.Name != "" {
		out = strings.ReplaceAll(out, "{{name}}", f.Name)
	}
	if f.Email != "" {
		out = strings.ReplaceAll(out, "{{email}}", f.Email)
	}
	return out
}

// DigitsOnly strips every non-digit rune from a configured phone number,
// so "+55 (11) 99999-0000" becomes "5511999990000".
func DigitsOnly(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DeepLink composes the outbound messaging URL from a configuration row
// and the captured lead's fields.  The message text is percent-encoded;
// the phone segment is digits only.
func DeepLink(cfg *Config, f Fields) string {
	msg := RenderTemplate(cfg.Template, f)
	v := url.Values{}
	v.Set("text", msg)
	return "https://wa.me/" + DigitsOnly(cfg.Phone) + "?" + v.Encode()
}
