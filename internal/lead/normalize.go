// internal/lead/normalize.go
//
// Field-name canonicalization shared by the capture API and the embed
// script (internal/agent injects the same vocabulary into capture.js).
//
// Context
// -------
// Third-party forms name their inputs however they like.  A submission
// may say "E-Mail", "seu_email", or "Correo"; the intake path promotes
// anything it recognises to the canonical email/name/phone keys and
// preserves everything else verbatim.  The vocabulary includes the
// Portuguese variants our customers' forms actually use.
//
// Policy
// ------
// No fallback email sniffing.  If nothing maps to the email key we do
// not scan values for an "@"; a guessed email poisons the CRM far worse
// than a dropped submission.

package lead

import "strings"

// Canonical keys a recognised field is promoted to.
const (
	FieldEmail = "email"
	FieldName  = "name"
	FieldPhone = "phone"
)

// synonyms maps lowercased input names to canonical keys.
var synonyms = map[string]string{
	// email
	"email":      FieldEmail,
	"e-mail":     FieldEmail,
	"e_mail":     FieldEmail,
	"mail":       FieldEmail,
	"seu_email":  FieldEmail,
	"seu-email":  FieldEmail,
	"seuemail":   FieldEmail,
	"correo":     FieldEmail,

	// name
	"name":          FieldName,
	"nome":          FieldName,
	"full_name":     FieldName,
	"fullname":      FieldName,
	"full-name":     FieldName,
	"nome_completo": FieldName,
	"first_name":    FieldName,
	"seu_nome":      FieldName,
	"seu-nome":      FieldName,

	// phone
	"phone":     FieldPhone,
	"telephone": FieldPhone,
	"telefone":  FieldPhone,
	"tel":       FieldPhone,
	"celular":   FieldPhone,
	"whatsapp":  FieldPhone,
	"mobile":    FieldPhone,
	"fone":      FieldPhone,
	"seu_telefone": FieldPhone,
}

// Synonyms returns a copy of the vocabulary.  The embed-script handler
// injects it into capture.js so the browser and the server agree on one
// table.
func Synonyms() map[string]string {
	out := make(map[string]string, len(synonyms))
	for k, v := range synonyms {
		out[k] = v
	}
	return out
}

// CanonicalField maps a raw form-field name to its canonical key.  The
// match is case-insensitive and whitespace-trimmed.  ok is false for
// unrecognised names, which callers keep under their original key.
func CanonicalField(name string) (canonical string, ok bool) {
	canonical, ok = synonyms[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// NormalizeEmail lowercases and trims an email address.  It performs no
// syntactic validation; presence, not well-formedness, is the contract.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Merge adds key=val to extra.  A repeated key collapses into an ordered
// []any rather than overwriting, so multi-valued inputs (checkbox groups)
// survive intact.
func Merge(extra Extra, key string, val any) {
	prev, exists := extra[key]
	if !exists {
		extra[key] = val
		return
	}
	if seq, ok := prev.([]any); ok {
		extra[key] = append(seq, val)
		return
	}
	extra[key] = []any{prev, val}
}
