package main

import (
	"testing"
)

func TestBatchValidatesDirectoryAndRecordsRun(t *testing.T) {
	configPath, cfg := setupCLIConfig(t)
	video := writeTempPayload(t, "clip.mp4", []byte("batch payload"))
	outDir := t.TempDir()

	for _, method := range []string{"polyglot", "ascii85"} {
		_, _, err := runCLI(t, []string{"convert", video, "--method", method, "--output", outDir}, configPath)
		if err != nil {
			t.Fatalf("convert %s: %v", method, err)
		}
	}

	out, _, err := runCLI(t, []string{"batch", outDir}, configPath)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	requireContains(t, out, "Processed 2, valid 2, errored 0")

	out, _, err = runCLI(t, []string{"runs"}, configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, outDir)
	if cfg.Paths.ReportDB == "" {
		t.Fatal("test config missing report db path")
	}
}

func TestBatchFailsWhenContainerBroken(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	outDir := t.TempDir()
	writeDirFile(t, outDir, "broken.svg", []byte(`<svg><metadata encoding="ascii85">garbage</metadata></svg>`))

	_, _, err := runCLI(t, []string{"batch", outDir, "--no-store"}, configPath)
	if err == nil {
		t.Fatal("expected batch failure for broken container")
	}
}

func TestBatchJSONIncludesRunID(t *testing.T) {
	configPath, _ := setupCLIConfig(t)
	video := writeTempPayload(t, "clip.mp4", []byte("json payload"))
	outDir := t.TempDir()

	_, _, err := runCLI(t, []string{"convert", video, "--method", "polyglot", "--output", outDir}, configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	out, _, err := runCLI(t, []string{"batch", outDir, "--json", "--no-store"}, configPath)
	if err != nil {
		t.Fatalf("batch --json: %v", err)
	}
	requireContains(t, out, `"run_id"`)
	requireContains(t, out, `"totals"`)
}
