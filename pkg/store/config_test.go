package store

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestResolveDefaults(t *testing.T) {
	home := t.TempDir()
	v := viper.New()
	v.Set("home", home)

	cfg, err := resolve(v)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.BasePath() != filepath.Join(home, "db") {
		t.Errorf("unexpected path %q", cfg.BasePath())
	}
	if cfg.AssetsPath() != filepath.Join(home, "assets") {
		t.Errorf("unexpected assets %q", cfg.AssetsPath())
	}
	if cfg.LogDir != filepath.Join(home, "logs") {
		t.Errorf("unexpected log dir %q", cfg.LogDir)
	}
}

func TestResolveOverrides(t *testing.T) {
	v := viper.New()
	v.Set("home", "/tmp/aurora")
	v.Set("path", "/srv/journal")
	v.Set("log.debug", true)

	cfg, err := resolve(v)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Path != "/srv/journal" || !cfg.Debug {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
