package profile

import "testing"

func TestConfigOptions(t *testing.T) {
	var cfg Config = func() (string, string, bool) {
		return "", "", false
	}

	cfg = WithMode("cpu")(cfg)
	cfg = WithPath("/tmp/profiles")(cfg)
	cfg = WithQuiet(true)(cfg)

	mode, path, quiet := cfg()

	if mode != "cpu" {
		t.Errorf("mode: got %q", mode)
	}

	if path != "/tmp/profiles" {
		t.Errorf("path: got %q", path)
	}

	if !quiet {
		t.Error("quiet not set")
	}
}

func TestStartWithoutMode(t *testing.T) {
	var cfg Config = func() (string, string, bool) {
		return "", "", false
	}

	// Must be a safe no-op in any build configuration.
	cfg.Start().Stop()
}
