package main

import (
	"path/filepath"
	"testing"
)

func TestDetectReportsFormat(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	video := writeTempPayload(t, "clip.mp4", []byte("detect me"))
	outDir := t.TempDir()

	_, _, err := runCLI(t, []string{"convert", video, "--method", "polyglot", "--output", outDir}, configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	out, _, err := runCLI(t, []string{"detect", filepath.Join(outDir, "clip_polyglot.svg")}, "")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	requireContains(t, out, "Polyglot")
}

func TestDetectJSONOutput(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	video := writeTempPayload(t, "clip.mp4", []byte("detect me"))
	outDir := t.TempDir()

	_, _, err := runCLI(t, []string{"convert", video, "--method", "ascii85", "--output", outDir}, configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	out, _, err := runCLI(t, []string{"detect", "--json", filepath.Join(outDir, "clip_ascii85.svg")}, "")
	if err != nil {
		t.Fatalf("detect --json: %v", err)
	}
	requireContains(t, out, `"format": "ascii85"`)
	requireContains(t, out, `"reversible": true`)
}

func TestDetectUnknownDocument(t *testing.T) {
	path := writeTempPayload(t, "plain.svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))

	out, _, err := runCLI(t, []string{"detect", path}, "")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	requireContains(t, out, "No known container format detected")
}
