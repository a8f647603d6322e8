package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/gigurra/subscription-tracker/internal"
)

// runCLI runs the subscription-tracker CLI against an isolated config and
// data directory, and returns stdout. Reminders are disabled so test runs
// never hit the OS notification system.
func runCLI(t *testing.T, dataDir string, args ...string) string {
	t.Helper()

	tmpDir := t.TempDir()
	emptyConfigPath := filepath.Join(tmpDir, "empty-config.yaml")
	if err := os.WriteFile(emptyConfigPath, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	fullArgs := append([]string{"--config", emptyConfigPath, "--data-dir", dataDir, "--no-notify"}, args...)
	cmd := exec.Command("go", append([]string{"run", "."}, fullArgs...)...)

	// Capture stdout only (stderr has go download messages)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			t.Fatalf("CLI failed: %v\nStderr: %s", err, exitErr.Stderr)
		}
		t.Fatalf("CLI failed: %v", err)
	}
	return string(output)
}

// runCLIJSON runs the CLI with JSON output and parses the result
func runCLIJSON(t *testing.T, dataDir string, args ...string) internal.JSONOutput {
	t.Helper()
	fullArgs := append(args, "--output", "json")
	output := runCLI(t, dataDir, fullArgs...)

	var result internal.JSONOutput
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

func TestCLI_SeedsDemoData(t *testing.T) {
	dataDir := t.TempDir()
	result := runCLIJSON(t, dataDir)

	total := result.Summary.ActiveCount + result.Summary.ExpiredCount
	if total != 7 {
		t.Errorf("expected 7 seeded subscriptions, got %d", total)
	}
	if result.Summary.ActiveCount != 3 {
		t.Errorf("expected 3 active demo subscriptions, got %d", result.Summary.ActiveCount)
	}
	if result.Summary.NextRenewal == nil || result.Summary.NextRenewal.ServiceProvider != "Netflix" {
		t.Errorf("expected Netflix as next renewal, got %+v", result.Summary.NextRenewal)
	}
}

func TestCLI_AddAndDelete(t *testing.T) {
	dataDir := t.TempDir()

	result := runCLIJSON(t, dataDir,
		"--add",
		"--provider", "YouTube Premium",
		"--amount", "11.99",
		"--cycle", "monthly",
		"--start", "2026-01-01",
		"--renewal", "2099-01-01")

	if result.Summary.ActiveCount != 4 {
		t.Fatalf("expected 4 active after add, got %d", result.Summary.ActiveCount)
	}

	var addedID string
	for _, sub := range result.Active {
		if sub.ServiceProvider == "YouTube Premium" {
			addedID = sub.ID
		}
	}
	if addedID == "" {
		t.Fatal("added subscription not found in active list")
	}

	result = runCLIJSON(t, dataDir, "--delete", addedID)
	if result.Summary.ActiveCount != 3 {
		t.Errorf("expected 3 active after delete, got %d", result.Summary.ActiveCount)
	}
}

func TestCLI_Cancel(t *testing.T) {
	dataDir := t.TempDir()
	runCLIJSON(t, dataDir) // seed

	result := runCLIJSON(t, dataDir, "--cancel", "demo-1")
	if result.Summary.ActiveCount != 2 {
		t.Errorf("expected 2 active after cancelling demo-1, got %d", result.Summary.ActiveCount)
	}
	if result.Summary.ExpiredCount != 5 {
		t.Errorf("expected 5 expired after cancelling demo-1, got %d", result.Summary.ExpiredCount)
	}
}

func TestCLI_Renew(t *testing.T) {
	dataDir := t.TempDir()
	before := runCLIJSON(t, dataDir)

	var beforeDate string
	for _, sub := range before.Active {
		if sub.ID == "demo-1" {
			beforeDate = sub.RenewalDate
		}
	}
	if beforeDate == "" {
		t.Fatal("demo-1 not found in active list")
	}

	after := runCLIJSON(t, dataDir, "--renew", "demo-1")
	for _, sub := range after.Active {
		if sub.ID == "demo-1" {
			if sub.RenewalDate <= beforeDate {
				t.Errorf("renewal date %q did not advance past %q", sub.RenewalDate, beforeDate)
			}
		}
	}
	if after.Summary.ActiveCount != before.Summary.ActiveCount {
		t.Errorf("renew changed the active count: %d -> %d", before.Summary.ActiveCount, after.Summary.ActiveCount)
	}
}

func TestCLI_SortByAmount(t *testing.T) {
	dataDir := t.TempDir()
	result := runCLIJSON(t, dataDir, "--sort", "amount")

	if len(result.Active) == 0 {
		t.Fatal("expected active subscriptions")
	}
	if result.Active[0].ServiceProvider != "Adobe Creative Cloud" {
		t.Errorf("expected Adobe Creative Cloud first when sorted by amount, got %s", result.Active[0].ServiceProvider)
	}
}

func TestCLI_CurrencyFlag(t *testing.T) {
	dataDir := t.TempDir()
	result := runCLIJSON(t, dataDir, "--currency", "USD")

	if result.Summary.Currency != "USD" {
		t.Errorf("expected currency USD, got %s", result.Summary.Currency)
	}
}

func TestCLI_ExportImportRoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	xlsxPath := filepath.Join(t.TempDir(), "subs.xlsx")

	before := runCLIJSON(t, dataDir, "--export", xlsxPath)

	// The importer reads the Active sheet, so only active records come back.
	freshDir := t.TempDir()
	runCLIJSON(t, freshDir) // seed the fresh store
	result := runCLIJSON(t, freshDir, "--import", xlsxPath)

	gotTotal := result.Summary.ActiveCount + result.Summary.ExpiredCount
	want := 7 + before.Summary.ActiveCount
	if gotTotal != want {
		t.Errorf("expected %d subscriptions after import, got %d", want, gotTotal)
	}
}
