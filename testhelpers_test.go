package nokogiri

import "testing"

// newTestClient builds an httpClient suitable for hitting an httptest.Server
// (loopback, so the egress ACL must be disabled) without touching config.toml
// or the process-wide global singleton.
func newTestClient(t *testing.T) *httpClient {
	t.Helper()
	cfg := &Config{
		General: GeneralConfig{
			OperationTimeout:   5000,
			MaxRedirectHops:    5,
			ContentLengthLimit: "10 MB",
		},
		Security: SecurityConfig{BlockNonGlobalIPs: false},
	}
	c, err := NewHTTPClient(cfg, "nokogiri-test", "test")
	if err != nil {
		t.Fatalf("building test http client: %v", err)
	}
	return c
}
