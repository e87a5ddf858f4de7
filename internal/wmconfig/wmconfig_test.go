package wmconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func clearSearchEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HOME", "XDG_CONFIG_HOME", "XDG_CONFIG_DIRS", "SWAYSOCK", "XDG_RUNTIME_DIR"} {
		t.Setenv(k, "")
	}
}

func TestFindPrefersHomeDotDir(t *testing.T) {
	clearSearchEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".corewm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "config")
	if err := os.WriteFile(want, []byte("# empty"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Find("corewm", "i3", "")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFindFallsBackToLegacyName(t *testing.T) {
	clearSearchEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".i3")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "config")
	if err := os.WriteFile(want, []byte("# empty"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Find("corewm", "i3", "")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFindHonorsExplicitOverride(t *testing.T) {
	clearSearchEnv(t)
	dir := t.TempDir()
	want := filepath.Join(dir, "myconfig")
	if err := os.WriteFile(want, []byte("# empty"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Find("corewm", "i3", want)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFindReturnsConfigParseErrorWhenNothingExists(t *testing.T) {
	clearSearchEnv(t)
	t.Setenv("HOME", t.TempDir())

	if _, err := Find("corewm", "i3", ""); err == nil {
		t.Fatal("expected an error when no config file exists anywhere in the search path")
	}
}

func TestLoadCallsParseFuncWithFileBytes(t *testing.T) {
	clearSearchEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg")
	contents := []byte("set $mod Mod4\n")
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatal(err)
	}

	var gotPath string
	var gotData []byte
	_, err := Load("corewm", "i3", path, func(p string, data []byte) error {
		gotPath, gotData = p, data
		return nil
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gotPath != path || string(gotData) != string(contents) {
		t.Fatalf("ParseFunc got (%q, %q), want (%q, %q)", gotPath, gotData, path, contents)
	}
}

func TestSocketPathPrefersSwaysockWhenUnused(t *testing.T) {
	clearSearchEnv(t)
	dir := t.TempDir()
	nonSocket := filepath.Join(dir, "stale")
	t.Setenv("SWAYSOCK", nonSocket)
	t.Setenv("XDG_RUNTIME_DIR", dir)

	got := SocketPath("corewm")
	if got != nonSocket {
		t.Fatalf("got %q, want SWAYSOCK path %q reused since it names no live socket", got, nonSocket)
	}
}

func TestSocketPathFallsBackToXDGRuntimeDir(t *testing.T) {
	clearSearchEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)

	got := SocketPath("corewm")
	if filepath.Dir(got) != dir {
		t.Fatalf("got %q, want a path under %q", got, dir)
	}
}

func TestSocketPathFallsBackToTmpWhenNoRuntimeDir(t *testing.T) {
	clearSearchEnv(t)

	got := SocketPath("corewm")
	if filepath.Dir(got) != "/tmp" {
		t.Fatalf("got %q, want a path under /tmp", got)
	}
}
