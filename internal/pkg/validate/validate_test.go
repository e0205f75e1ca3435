package validate_test

import (
	"testing"

	"github.com/ahsasnagar11/typeshit3/internal/pkg/validate"
)

func TestRequired(t *testing.T) {
	if validate.Required("") || validate.Required("   ") {
		t.Fatalf("blank values must not satisfy Required")
	}
	if !validate.Required(" x ") {
		t.Fatalf("non-blank value must satisfy Required")
	}
}

func TestUserID(t *testing.T) {
	if !validate.UserID("5a4b3c2d-1e0f-4a9b-8c7d-6e5f4a3b2c13") {
		t.Fatalf("well-formed uuid rejected")
	}
	if !validate.UserID("  5a4b3c2d-1e0f-4a9b-8c7d-6e5f4a3b2c13  ") {
		t.Fatalf("surrounding whitespace should be tolerated")
	}
	for _, bad := range []string{"", "dummy-1", "not-a-uuid", "5a4b3c2d"} {
		if validate.UserID(bad) {
			t.Fatalf("%q should not pass as a user id", bad)
		}
	}
}

func TestDummyID(t *testing.T) {
	if !validate.DummyID("dummy-42") || !validate.DummyID(" dummyuser ") {
		t.Fatalf("dummy-prefixed ids should be recognized")
	}
	if validate.DummyID("5a4b3c2d-1e0f-4a9b-8c7d-6e5f4a3b2c13") || validate.DummyID("") {
		t.Fatalf("non-dummy ids should not be recognized")
	}
}
