package nokogiri

import (
	"os"
	"path/filepath"
	"testing"
)

// withWorkingDir temporarily chdirs into dir, restoring the original
// directory on test cleanup. LoadConfig reads config.toml relative to cwd.
func withWorkingDir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoadConfigBootstrapsOnFirstRun(t *testing.T) {
	withWorkingDir(t, t.TempDir())

	_, err := LoadConfig()
	if err != ErrConfigBootstrapped {
		t.Fatalf("first run: err = %v, want ErrConfigBootstrapped", err)
	}
	if _, statErr := os.Stat(configPath); statErr != nil {
		t.Errorf("expected config.toml to be written, stat err: %v", statErr)
	}
}

func TestLoadConfigReadsWrittenDefaults(t *testing.T) {
	withWorkingDir(t, t.TempDir())

	if _, err := LoadConfig(); err != ErrConfigBootstrapped {
		t.Fatalf("bootstrap run: err = %v", err)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if cfg.Server.Port == 0 {
		t.Error("expected a non-zero default server port")
	}
	if cfg.Security.BlockNonGlobalIPs != true {
		t.Error("expected the embedded default to block non-global IPs")
	}
}

func TestLoadConfigOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	withWorkingDir(t, dir)

	custom := "[server]\nhost = \"0.0.0.0\"\nport = 9999\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(custom), 0o644); err != nil {
		t.Fatalf("writing config.toml: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9999 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server = %+v, want overridden host/port", cfg.Server)
	}
	// Fields absent from the override file must still carry the embedded
	// default's value, matching LoadConfig's unmarshal-default-then-override.
	if cfg.Security.BlockNonGlobalIPs != true {
		t.Error("expected unspecified fields to keep the embedded default")
	}
}
