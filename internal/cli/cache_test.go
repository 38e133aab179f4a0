package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestCachePathCommand(t *testing.T) {
	home := t.TempDir()
	out, err := runCLIWithCache(t, home, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(home, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearAfterGenerate(t *testing.T) {
	home := t.TempDir()
	if _, err := runCLIWithCache(t, home, "generate", "-n", "5", "-o", filepath.Join(t.TempDir(), "d")); err != nil {
		t.Fatal(err)
	}

	out, err := runCLIWithCache(t, home, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	// One layout entry plus one txt artifact.
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("clear output:\n%s", out)
	}

	out, err = runCLIWithCache(t, home, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 0 cached entries") {
		t.Errorf("second clear output:\n%s", out)
	}
}

func TestCacheClearRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.Set("roomgrow:layout:abc", "1")
	mr.Set("other:key", "2")

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "clear", "--redis-addr", mr.Addr()})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}

	if mr.Exists("roomgrow:layout:abc") {
		t.Error("scoped key should be cleared")
	}
	if !mr.Exists("other:key") {
		t.Error("keys outside the scope must survive")
	}
	if !strings.Contains(out.String(), "Cleared 1 cached entries") {
		t.Errorf("clear output:\n%s", out.String())
	}
}
