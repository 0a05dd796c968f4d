package main_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestCLI_OfflineSync builds the CLI and runs a sync against a local
// catalog server, with one category deliberately broken. No network or
// Discord token involved.
func TestCLI_OfflineSync(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	tmp := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "uenum.yml") {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("specifiers:\n  - name: Transient\n  - name: Config\n"))
	}))
	defer srv.Close()

	bin := filepath.Join(tmp, "benbot.bin")
	build := exec.Command("go", "build", "-o", bin, "github.com/benbot/benbot/cmd/benbot")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build CLI: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, bin, "sync")
	cmd.Dir = tmp
	cmd.Env = append(os.Environ(),
		"BENBOT_CATALOG_BASE_URL="+srv.URL,
		"BENBOT_USAGE_DB="+filepath.Join(tmp, "usage.db"),
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("sync failed: %v\n%s", err, out)
	}

	output := string(out)
	if !strings.Contains(output, "property: 2 specifiers") {
		t.Fatalf("expected property count in output, got:\n%s", output)
	}
	if !strings.Contains(output, "enum: not loaded") {
		t.Fatalf("expected enum marked not loaded, got:\n%s", output)
	}
}

// TestCLI_OfflineLookup exercises the lookup path end to end.
func TestCLI_OfflineLookup(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	tmp := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("specifiers:\n  - name: Transient\n    comment: Not saved.\n"))
	}))
	defer srv.Close()

	bin := filepath.Join(tmp, "benbot.bin")
	build := exec.Command("go", "build", "-o", bin, "github.com/benbot/benbot/cmd/benbot")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build CLI: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, bin, "lookup", "Transient")
	cmd.Dir = tmp
	cmd.Env = append(os.Environ(),
		"BENBOT_CATALOG_BASE_URL="+srv.URL,
		"BENBOT_USAGE_DB="+filepath.Join(tmp, "usage.db"),
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("lookup failed: %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "Specifier: Transient") {
		t.Fatalf("expected card title in output, got:\n%s", out)
	}
	if !strings.Contains(string(out), "Not saved.") {
		t.Fatalf("expected comment in output, got:\n%s", out)
	}
}
