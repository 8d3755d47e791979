package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the on-disk state of the journal.
type Config interface {
	BasePath() string
}

// FileConfig is the resolved `.aurora` configuration.
type FileConfig struct {
	Home   string `json:"home"`
	Path   string `json:"path"`
	Assets string `json:"assets"`
	LogDir string `json:"logDir"`
	Debug  bool   `json:"debug"`
}

// LoadConfig reads `.aurora.yaml` from $AURORA_CONFIG_PATH, the working
// directory or $HOME, with AURORA_ prefixed environment overrides.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("home", "~/.aurora")
	v.SetDefault("log.debug", false)
	v.SetConfigName(".aurora") // .yaml is implicit
	v.SetEnvPrefix("AURORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("AURORA_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return resolve(v)
}

func resolve(v *viper.Viper) (*FileConfig, error) {
	home, err := homedir.Expand(v.GetString("home"))
	if err != nil {
		return nil, err
	}
	cfg := &FileConfig{
		Home:   home,
		Path:   v.GetString("path"),
		Assets: v.GetString("assets"),
		LogDir: v.GetString("log.dir"),
		Debug:  v.GetBool("log.debug"),
	}
	if cfg.Path == "" {
		cfg.Path = filepath.Join(home, "db")
	}
	if cfg.Assets == "" {
		cfg.Assets = filepath.Join(home, "assets")
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(home, "logs")
	}
	for _, p := range []*string{&cfg.Path, &cfg.Assets, &cfg.LogDir} {
		if *p, err = homedir.Expand(*p); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

// AssetsPath is where picked images are copied.
func (f *FileConfig) AssetsPath() string {
	return f.Assets
}
