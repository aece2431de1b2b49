package user

import "testing"

func TestParseRole(t *testing.T) {
	for _, s := range []string{"pending", "utente", "operatore", "admin", "superuser"} {
		if _, err := ParseRole(s); err != nil {
			t.Fatalf("expected %q to parse: %v", s, err)
		}
	}
	if _, err := ParseRole("generic"); err == nil {
		t.Fatalf("generic is not a stored role")
	}
	if _, err := ParseRole("root"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestParseAssignableRole_ExcludesSuperuser(t *testing.T) {
	if _, err := ParseAssignableRole("superuser"); err == nil {
		t.Fatalf("superuser must not be assignable")
	}
	if _, err := ParseAssignableRole("operatore"); err != nil {
		t.Fatalf("operatore should be assignable: %v", err)
	}
}
