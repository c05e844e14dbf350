//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "ezelectronics-api"
	ConsumerName = "storefront-web"

	StateUsersBaseline    = "users baseline"
	StateSessionActive    = "customer pact-customer is logged in"
	StateCartWithProducts = "pact-customer has a cart with products"
	StateProductMissing   = "no product with model Ghost Phone"
	StateCatalogSeeded    = "catalog seeded with smartphones"
)

const (
	CustomerUsername = "pact-customer"
	CustomerPassword = "pact-pass"
	SessionToken     = "pact-session-token"

	SeededModel  = "iPhone 13"
	MissingModel = "Ghost Phone"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleUserPayload provides stable account data for pact interactions.
func ExampleUserPayload() map[string]any {
	return map[string]any{
		"username": CustomerUsername,
		"name":     "Pact",
		"surname":  "Customer",
		"email":    "pact.customer@example.com",
		"password": CustomerPassword,
		"role":     "Customer",
	}
}

// ExampleProductPayload provides stable catalog data for pact interactions.
func ExampleProductPayload() map[string]any {
	return map[string]any{
		"model":        SeededModel,
		"category":     "Smartphone",
		"quantity":     int32(10),
		"details":      "128GB, Midnight",
		"sellingPrice": 899.99,
		"arrivalDate":  "2024-06-01",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
