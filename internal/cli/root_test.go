package cli

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/evcraddock/propdb/internal/db"
	"github.com/evcraddock/propdb/internal/schema"
	"github.com/evcraddock/propdb/internal/web"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// isolate points HOME and the working directory at temp dirs and clears
// PROPDB_* variables so no real config leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range []string{"PROPDB_SERVER_URL", "PROPDB_DEV_MODE", "PROPDB_CORS_ORIGINS", "PROPDB_DB_DRIVER", "PROPDB_DB_DSN"} {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
	return home
}

// testAPI starts the real API over a temp SQLite database and returns its URL.
func testAPI(t *testing.T) string {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "cli.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})

	srv, err := web.NewServer(d, web.Config{Dialect: schema.SQLite})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestRootHelp(t *testing.T) {
	isolate(t)
	_, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	formatFlag := root.PersistentFlags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("expected --format flag to exist")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("expected --format default 'text', got %q", formatFlag.DefValue)
	}

	for _, name := range []string{"db", "driver", "server"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s flag to exist", name)
		}
	}
}

func TestInvalidFormat(t *testing.T) {
	isolate(t)
	_, err := executeCommand("version", "--format", "xml")
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != Version+"\n" {
		t.Errorf("output = %q, want %q", out, Version+"\n")
	}
}

func TestFlagsOverrideSettings(t *testing.T) {
	isolate(t)
	t.Setenv("PROPDB_SERVER_URL", "http://env:1")

	if _, err := executeCommand("version", "--server", "http://flag:2", "--driver", "pgx", "--db", "postgres://x/y"); err != nil {
		t.Fatalf("version: %v", err)
	}
	if settings.ServerURL != "http://flag:2" {
		t.Errorf("server_url = %q, want flag value", settings.ServerURL)
	}
	if settings.Database.Driver != "pgx" || settings.Database.DSN != "postgres://x/y" {
		t.Errorf("database = %+v", settings.Database)
	}
}
