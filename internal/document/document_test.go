package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoreSave(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	storedName, err := s.Save(strings.NewReader("contenuto"), "carta-identita.pdf")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Ext(storedName) != ".pdf" {
		t.Fatalf("expected the original extension to survive, got %q", storedName)
	}
	if strings.Contains(storedName, "carta-identita") {
		t.Fatalf("original file name must not leak into the stored name: %q", storedName)
	}

	b, err := os.ReadFile(s.Path(storedName))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "contenuto" {
		t.Fatalf("unexpected blob content: %q", b)
	}
}

func TestStorePathRejectsTraversal(t *testing.T) {
	s := Store{Dir: "/srv/uploads"}
	if got := s.Path("../../etc/passwd"); got != "/srv/uploads/passwd" {
		t.Fatalf("expected traversal to be stripped, got %q", got)
	}
}

func TestNormalizeKind(t *testing.T) {
	if normalizeKind(" Poster ") != KindPoster {
		t.Fatalf("expected poster")
	}
	if normalizeKind("identity") != KindIdentity {
		t.Fatalf("expected identity")
	}
	if normalizeKind("anything-else") != KindIdentity {
		t.Fatalf("unknown kinds default to identity")
	}
}
