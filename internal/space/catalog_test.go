package space

import "testing"

func TestCatalogHasSevenSpaces(t *testing.T) {
	if got := len(All()); got != 7 {
		t.Fatalf("expected 7 spaces, got %d", got)
	}
}

func TestExists(t *testing.T) {
	for _, name := range []string{"Spazio Open", "Giardino", "Foresteria"} {
		if !Exists(name) {
			t.Fatalf("expected catalog space %q", name)
		}
	}
	if Exists("Sala Grande") {
		t.Fatalf("unexpected catalog space")
	}
	if Exists("giardino") {
		t.Fatalf("catalog lookup is case sensitive")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].Name = "mutated"
	if All()[0].Name == "mutated" {
		t.Fatalf("All must not expose the backing catalog")
	}
}
