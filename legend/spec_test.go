package legend

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSetupSpec_ValidYAML_LoadsCorrectly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "setup.yaml")
	yaml := `
version: "1"
hall: snolab
filled: true
detectors: detectors.csv
output: run.gdml
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadSetupSpec(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Hall != HallSNOLab {
		t.Errorf("hall = %q, want %q", spec.Hall, HallSNOLab)
	}
	if !spec.Filled {
		t.Error("filled = false, want true")
	}
	if want := filepath.Join(dir, "detectors.csv"); spec.Detectors != want {
		t.Errorf("detectors = %q, want %q", spec.Detectors, want)
	}
	if spec.Output != "run.gdml" {
		t.Errorf("output = %q, want %q", spec.Output, "run.gdml")
	}
	if err := spec.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoadSetupSpec_UnknownKey_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	yaml := `
hall: lngs
filed: true
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSetupSpec(path); err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
}

func TestLoadSetupSpec_MissingFile_ReturnsError(t *testing.T) {
	if _, err := LoadSetupSpec(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadSetupSpec_AbsoluteDetectorsPathKept(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "setup.yaml")
	abs := filepath.Join(dir, "elsewhere", "det.csv")
	yaml := "filled: true\ndetectors: " + abs + "\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadSetupSpec(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Detectors != abs {
		t.Errorf("detectors = %q, want %q", spec.Detectors, abs)
	}
}

func TestSetupSpec_Validate_UnknownHall_ReturnsError(t *testing.T) {
	spec := &SetupSpec{Hall: "homestake"}
	err := spec.Validate()
	if err == nil {
		t.Fatal("expected error for unknown hall")
	}
	if !strings.Contains(err.Error(), "homestake") {
		t.Errorf("error should mention the invalid hall: %v", err)
	}
	if !strings.Contains(err.Error(), "lngs") {
		t.Errorf("error should list valid halls: %v", err)
	}
}

func TestSetupSpec_Validate_UnknownVersion_ReturnsError(t *testing.T) {
	spec := &SetupSpec{Version: "2"}
	if err := spec.Validate(); err == nil {
		t.Fatal("expected error for unknown version")
	}
}

func TestSetupSpec_Validate_ZeroValue_NoError(t *testing.T) {
	spec := &SetupSpec{}
	if err := spec.Validate(); err != nil {
		t.Errorf("expected no error for zero-value spec, got: %v", err)
	}
}
