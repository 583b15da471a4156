// internal/config/loader_test.go
//
// Unit-tests for the config loader: layering, secret resolution, and the
// buyer degradation gate.

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const baseYAML = `
http:
  listen_addr: ":8080"
buyer:
  url: "https://buyer.example/post"
  campaign_id: "91001"
  supplier_id: "4415"
  api_key: "plain-key"
`

func writeConf(t *testing.T, yaml string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestLoad_Basic(t *testing.T) {
	t.Setenv("FUNNEL_ROOT", writeConf(t, baseYAML))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.ListenAddr != ":8080" {
		t.Errorf("listen_addr = %q", cfg.HTTP.ListenAddr)
	}
	if !cfg.Buyer.Configured() {
		t.Error("buyer should be configured")
	}
	if Get() != cfg {
		t.Error("Get() did not return the cached pointer")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FUNNEL_ROOT", writeConf(t, baseYAML))
	t.Setenv("FUNNEL_BUYER__CAMPAIGN_ID", "override-77")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Buyer.CampaignID != "override-77" {
		t.Errorf("campaign_id = %q, want env override", cfg.Buyer.CampaignID)
	}
}

func TestLoad_MissingListenAddrFails(t *testing.T) {
	t.Setenv("FUNNEL_ROOT", writeConf(t, "buyer:\n  url: \"x\"\n"))

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without http.listen_addr")
	}
}

func TestBuyer_ConfiguredNeedsAllFour(t *testing.T) {
	b := Buyer{URL: "u", CampaignID: "c", SupplierID: "s", APIKey: "k"}
	if !b.Configured() {
		t.Fatal("complete buyer reported unconfigured")
	}
	b.APIKey = ""
	if b.Configured() {
		t.Fatal("buyer without api key reported configured")
	}
}

type fakeResolver struct{ got string }

func (f *fakeResolver) Resolve(_ context.Context, ref string) (string, error) {
	f.got = ref
	return "resolved-secret", nil
}

func TestLoad_VaultReferenceResolved(t *testing.T) {
	yaml := `
http:
  listen_addr: ":8080"
buyer:
  url: "https://buyer.example/post"
  campaign_id: "91001"
  supplier_id: "4415"
  api_key: "vault:secret/funnel#lp_key"
`
	t.Setenv("FUNNEL_ROOT", writeConf(t, yaml))

	fr := &fakeResolver{}
	SetSecretResolver(fr)
	defer SetSecretResolver(nil)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Buyer.APIKey != "resolved-secret" {
		t.Errorf("api_key = %q, want resolved value", cfg.Buyer.APIKey)
	}
	if fr.got != "vault:secret/funnel#lp_key" {
		t.Errorf("resolver saw %q", fr.got)
	}
}

func TestLoad_VaultReferenceWithoutResolver(t *testing.T) {
	yaml := `
http:
  listen_addr: ":8080"
buyer:
  api_key: "vault:secret/funnel#lp_key"
`
	t.Setenv("FUNNEL_ROOT", writeConf(t, yaml))
	SetSecretResolver(nil)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Unresolvable secret blanks the field, which reads as unconfigured.
	if cfg.Buyer.Configured() {
		t.Fatal("buyer should degrade to unconfigured")
	}
}
