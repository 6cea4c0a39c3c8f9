package services

import (
	"fmt"
	"os"
	"testing"
)

// TestMain ensures GO_ENV is set to "test" to prevent accidental execution
// against a development database.
func TestMain(m *testing.M) {
	if err := os.Setenv("GO_ENV", "test"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set GO_ENV=test: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}
