package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script is a shell script")
	}
	// Arrange: a cbg-hello extension in PATH that prints its environment.
	tempDir := t.TempDir()
	out := filepath.Join(tempDir, "out.txt")
	script := "#!/bin/sh\necho \"$" + EnvFillsFile + " $" + EnvPrecision + " $1\" > " + out + "\nexit 3\n"
	if err := os.WriteFile(filepath.Join(tempDir, "cbg-hello"), []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write cbg-hello: %v", err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv(EnvFillsFile, "2021.csv")

	// Act
	found, code := RunExtension("hello", []string{"world"})

	// Assert
	if !found {
		t.Fatalf("RunExtension() did not find cbg-hello")
	}
	if code != 3 {
		t.Errorf("RunExtension() exit code = %d, want 3", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("extension did not run: %v", err)
	}
	if want := "2021.csv 13 world"; strings.TrimSpace(string(got)) != want {
		t.Errorf("extension output = %q, want %q", got, want)
	}

	if found, _ := RunExtension("missing", nil); found {
		t.Errorf("RunExtension() found a missing extension")
	}
}

func TestLedgerFlags_Environment(t *testing.T) {
	t.Setenv(EnvFillsFile, "2021.csv")
	t.Setenv(EnvToken, "BTC")
	t.Setenv(EnvWorkers, "4")

	var l ledgerFlags
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	l.SetFlags(f)
	if err := f.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if l.file != "2021.csv" || l.asset != "BTC" || l.workers != 4 {
		t.Errorf("ledger flags = %+v, want the environment defaults", l)
	}

	// flags override the environment
	if err := f.Parse([]string{"-f", "2022.csv", "-j", "1"}); err != nil {
		t.Fatal(err)
	}
	if l.file != "2022.csv" || l.workers != 1 {
		t.Errorf("ledger flags = %+v, want the flag values", l)
	}

	t.Setenv(EnvWorkers, "many")
	l = ledgerFlags{}
	l.SetFlags(flag.NewFlagSet("test", flag.ContinueOnError))
	if l.workers != 1 {
		t.Errorf("workers = %d with an invalid %s, want 1", l.workers, EnvWorkers)
	}
}
