package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withStore points every invocation at a fresh file backend.
func withStore(t *testing.T) {
	t.Helper()
	t.Setenv("STOREFRONT_STORAGE_BACKEND", "file")
	t.Setenv("STOREFRONT_STORAGE_PATH", filepath.Join(t.TempDir(), "state"))
	t.Setenv("STOREFRONT_CHECKOUT_DELAY", "0s")
	t.Setenv("STOREFRONT_LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (map[string]any, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	var resp map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp), "output: %s", out.String())
	return resp, nil
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	resp, err := run(t, args...)
	require.NoError(t, err)
	return resp
}

func TestCLI_StatePersistsBetweenInvocations(t *testing.T) {
	withStore(t)

	mustRun(t, "cart", "add", "p1", "2")
	cart := mustRun(t, "cart", "show")
	assert.Equal(t, float64(2), cart["count"])
	assert.Equal(t, "24.97", cart["quote"].(map[string]any)["total"])

	mustRun(t, "cart", "add", "p3")
	cart = mustRun(t, "coupon", "apply", "SAVE10")
	assert.Equal(t, "62.973", cart["quote"].(map[string]any)["total"])
}

func TestCLI_CheckoutRequiresLogin(t *testing.T) {
	withStore(t)
	mustRun(t, "cart", "add", "p2")

	_, err := run(t, "checkout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User is not signed in")

	mustRun(t, "login", "--name", "Ada")
	resp := mustRun(t, "checkout", "--shipping", "express")
	receipt := resp["receipt"].(map[string]any)
	assert.True(t, strings.HasPrefix(receipt["id"].(string), "pi_mock_"))

	orders := mustRun(t, "orders")["orders"].([]any)
	require.Len(t, orders, 1)
	id := orders[0].(map[string]any)["id"].(string)
	shown := mustRun(t, "orders", id)
	assert.Equal(t, id, shown["order"].(map[string]any)["id"])
}

func TestCLI_Catalog(t *testing.T) {
	withStore(t)

	resp := mustRun(t, "catalog", "list", "--category", "stationery", "--max", "30")
	products := resp["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "p12", products[0].(map[string]any)["id"])

	_, err := run(t, "catalog", "list", "--format", "vinyl")
	assert.Error(t, err)
}

func TestCLI_Wishlist(t *testing.T) {
	withStore(t)

	assert.Equal(t, true, mustRun(t, "wishlist", "toggle", "p4")["saved"])
	cart := mustRun(t, "wishlist", "move", "p4")
	assert.Equal(t, float64(1), cart["count"])
	assert.Empty(t, mustRun(t, "wishlist", "show")["products"])
}

func TestCLI_RejectsBadQuantity(t *testing.T) {
	withStore(t)
	_, err := run(t, "cart", "add", "p1", "two")
	assert.Error(t, err)
}

func TestCLI_Version(t *testing.T) {
	var out bytes.Buffer
	t.Setenv("STOREFRONT_STORAGE_BACKEND", "memory")
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "storefront version 0.1.0\n", out.String())
}
