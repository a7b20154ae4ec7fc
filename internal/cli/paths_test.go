package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/weave/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default", "", filepath.Join(home, ".cache", "weave")},
		{"xdg", "/tmp/xdg-cache", filepath.Join("/tmp/xdg-cache", "weave")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenCacheMissingDir(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", root)

	fc, ok, err := openCache()
	if err != nil || ok || fc != nil {
		t.Fatalf("openCache() = %v, %v, %v; want nothing for a missing dir", fc, ok, err)
	}
	if _, err := os.Stat(filepath.Join(root, "weave")); !os.IsNotExist(err) {
		t.Errorf("openCache() created the cache dir: %v", err)
	}
}

func TestNewCache(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", root)

	c, err := newCache(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("newCache(noCache) = %T, want NullCache", c)
	}

	c, err = newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("newCache() = %T, want *FileCache", c)
	}
	if want := filepath.Join(root, "weave"); fc.Dir() != want {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), want)
	}

	// Once the frame cache exists, the cache commands can open it.
	if _, ok, err := openCache(); err != nil || !ok {
		t.Errorf("openCache() after newCache = %v, %v", ok, err)
	}
}
