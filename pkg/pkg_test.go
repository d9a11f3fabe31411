package pkg

import (
	"strings"
	"testing"
)

func TestVersionEmbedded(t *testing.T) {
	v := strings.TrimSpace(Version)
	if v == "" {
		t.Fatal("embedded version is empty")
	}

	if strings.Count(v, ".") != 2 {
		t.Errorf("version %q is not semantic", v)
	}
}

func TestIdentity(t *testing.T) {
	if Name == "" || Description == "" {
		t.Error("package identity is incomplete")
	}

	if strings.ToLower(Name) != Name {
		t.Errorf("name %q is not lowercase", Name)
	}
}
