package lead

import (
	"reflect"
	"testing"
)

func TestCanonicalField(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"email", FieldEmail, true},
		{"E-Mail", FieldEmail, true},
		{"  SEU_EMAIL ", FieldEmail, true},
		{"Nome", FieldName, true},
		{"nome_completo", FieldName, true},
		{"Telefone", FieldPhone, true},
		{"CELULAR", FieldPhone, true},
		{"whatsapp", FieldPhone, true},
		{"company", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := CanonicalField(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("CanonicalField(%q) = %q, %v; want %q, %v",
				c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  A@B.com "); got != "a@b.com" {
		t.Fatalf("NormalizeEmail = %q, want a@b.com", got)
	}
	if got := NormalizeEmail(""); got != "" {
		t.Fatalf("NormalizeEmail empty = %q", got)
	}
}

func TestMerge_RepeatedKeyCollapsesInOrder(t *testing.T) {
	extra := Extra{}
	Merge(extra, "interest", "seo")
	Merge(extra, "interest", "ads")
	Merge(extra, "interest", "social")

	want := []any{"seo", "ads", "social"}
	if !reflect.DeepEqual(extra["interest"], want) {
		t.Fatalf("interest = %#v, want %#v", extra["interest"], want)
	}
}

func TestMerge_SingleKeyStaysScalar(t *testing.T) {
	extra := Extra{}
	Merge(extra, "company", "ACME")
	if extra["company"] != "ACME" {
		t.Fatalf("company = %#v", extra["company"])
	}
}
