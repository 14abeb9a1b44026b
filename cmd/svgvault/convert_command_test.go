package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestConvertAndExtractAscii85(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	payload := []byte("fake mp4 payload \x00\x01\x02 with binary bytes")
	video := writeTempPayload(t, "clip.mp4", payload)
	outDir := t.TempDir()

	out, _, err := runCLI(t, []string{"convert", video, "--method", "ascii85", "--output", outDir}, configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "ascii85")

	containerPath := filepath.Join(outDir, "clip_ascii85.svg")
	if _, err := os.Stat(containerPath); err != nil {
		t.Fatalf("expected container at %s: %v", containerPath, err)
	}

	target := filepath.Join(t.TempDir(), "recovered.mp4")
	out, _, err = runCLI(t, []string{"extract", containerPath, "--output", target}, configPath)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	requireContains(t, out, "ASCII85")

	recovered, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read recovered payload: %v", err)
	}
	if !bytes.Equal(recovered, payload) {
		t.Fatalf("recovered payload differs from input")
	}
}

func TestConvertPolyglotWithAttachment(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	payload := []byte("primary video bytes")
	attachment := []byte("%PDF-1.4 attachment bytes")
	video := writeTempPayload(t, "clip.mp4", payload)
	pdf := writeTempPayload(t, "doc.pdf", attachment)
	outDir := t.TempDir()

	_, _, err := runCLI(t, []string{
		"convert", video, "--method", "polyglot", "--output", outDir, "--pdf", pdf,
	}, configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	containerPath := filepath.Join(outDir, "clip_polyglot.svg")
	target := filepath.Join(t.TempDir(), "recovered.pdf")
	_, _, err = runCLI(t, []string{
		"extract", containerPath, "--section", "PDF", "--output", target,
	}, configPath)
	if err != nil {
		t.Fatalf("extract PDF section: %v", err)
	}
	recovered, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read recovered attachment: %v", err)
	}
	if !bytes.Equal(recovered, attachment) {
		t.Fatalf("recovered attachment differs from input")
	}
}

func TestConvertAllProducesThreeContainers(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	video := writeTempPayload(t, "clip.mp4", []byte("payload for every container family"))
	outDir := t.TempDir()

	_, _, err := runCLI(t, []string{"convert", video, "--output", outDir}, configPath)
	if err != nil {
		t.Fatalf("convert all: %v", err)
	}
	for _, name := range []string{"clip_polyglot.svg", "clip_ascii85.svg", "clip_qr.svg"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestConvertRejectsUnknownMethod(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	video := writeTempPayload(t, "clip.mp4", []byte("payload"))

	_, _, err := runCLI(t, []string{"convert", video, "--method", "steganography"}, configPath)
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
}
