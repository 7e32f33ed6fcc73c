//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	platformauth "github.com/Apurer/go-gin-shop-server/internal/platform/auth"
	sharedauth "github.com/Apurer/go-gin-shop-server/internal/shared/auth"
)

const (
	ProviderName = "shop-api"
	ConsumerName = "shop-portal"

	StateOrdersBaseline = "orders baseline"
	StateOrderExists    = "order pact-order-301 exists"
	StateOrderMissing   = "no order with id pact-order-404"

	ExistingOrderID = "pact-order-301"
	MissingOrderID  = "pact-order-404"

	CustomerIdentity = "pact-customer"
	AdminIdentity    = "pact-admin"

	// JWTSecret is shared by the consumer (token baked into the pact file)
	// and the provider (verifying the replayed request).
	JWTSecret = "pact-contract-secret"
)

// tokenTTL is long so pact files stay verifiable between runs.
const tokenTTL = 10 * 365 * 24 * time.Hour

// Tokens returns the token authority both sides of the contract share.
func Tokens() *platformauth.Tokens {
	return platformauth.NewTokens(JWTSecret, tokenTTL)
}

// CustomerToken issues a bearer token for the pact customer.
func CustomerToken(t testing.TB) string {
	t.Helper()
	token, err := Tokens().Issue(CustomerIdentity, sharedauth.RoleCustomer)
	if err != nil {
		t.Fatalf("issue customer token: %v", err)
	}
	return token
}

// AdminToken issues a bearer token for the pact admin.
func AdminToken(t testing.TB) string {
	t.Helper()
	token, err := Tokens().Issue(AdminIdentity, sharedauth.RoleAdmin)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	return token
}

// ExampleItemPayload provides stable line-item data for pact interactions.
func ExampleItemPayload() map[string]any {
	return map[string]any{
		"productId":   "pact-prod-1",
		"productName": "Pact Mug",
		"ownerId":     "pact-seller-1",
		"quantity":    2,
		"lineCost":    7.5,
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the shop portal consumer.
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

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
