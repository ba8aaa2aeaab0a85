package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (s *sample) Validate() error {
	if s.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "catenary")
	s := &sample{Port: 80}
	if err := Load(writeFile(t, "name: ${SAMPLE_NAME}\n"), s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "catenary" || s.Port != 80 {
		t.Errorf("got %+v", s)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	s := &sample{Port: 80}
	err := Load(writeFile(t, "nmae: typo\n"), s)
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadValidates(t *testing.T) {
	s := &sample{}
	err := Load(writeFile(t, "name: x\n"), s)
	if err == nil || !strings.Contains(err.Error(), "port must be positive") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	s := &sample{Port: 1}
	if err := Load(writeFile(t, ""), s); err != nil {
		t.Errorf("empty file: %v", err)
	}
}

func TestLoadOptional(t *testing.T) {
	s := &sample{Port: 8080}
	found, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"), s)
	if err != nil || found {
		t.Errorf("missing file: found=%v err=%v", found, err)
	}

	s = &sample{}
	if _, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"), s); err == nil {
		t.Error("invalid defaults should fail")
	}

	s = &sample{Port: 1}
	found, err = LoadOptional(writeFile(t, "port: 2\n"), s)
	if err != nil || !found || s.Port != 2 {
		t.Errorf("present file: found=%v err=%v port=%d", found, err, s.Port)
	}
}
