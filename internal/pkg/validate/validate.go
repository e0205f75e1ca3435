package validate

import (
	"strings"

	"github.com/google/uuid"
)

// DummyIDPrefix marks test identifiers that bypass store writes on
// match creation. Gated by debug config, see services/matches.
const DummyIDPrefix = "dummy"

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// UserID reports whether value is a well-formed user identifier.
func UserID(value string) bool {
	_, err := uuid.Parse(strings.TrimSpace(value))
	return err == nil
}

func DummyID(value string) bool {
	return strings.HasPrefix(strings.TrimSpace(value), DummyIDPrefix)
}
