package artifacts

import "testing"

func TestParseKindAcceptsClosedSet(t *testing.T) {
	for _, raw := range []string{"resume", "cover_letter", "skills_optimization", "company_research", "match"} {
		kind, err := ParseKind(raw)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", raw, err)
		}
		if string(kind) != raw {
			t.Fatalf("ParseKind(%q) = %q", raw, kind)
		}
	}
}

func TestParseKindNormalizes(t *testing.T) {
	kind, err := ParseKind("  Cover_Letter ")
	if err != nil {
		t.Fatalf("ParseKind: %v", err)
	}
	if kind != KindCoverLetter {
		t.Fatalf("expected cover_letter, got %q", kind)
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	if _, err := ParseKind("poem"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if _, err := ParseKind(""); err == nil {
		t.Fatalf("expected error for empty kind")
	}
}
