package store

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved desk configuration.
// Precedence: flag > EDITDESK_* env > config file > default.
type Config struct {
	Server        string        `json:"server"`
	Token         string        `json:"-"`
	Dir           string        `json:"dir"`
	Storage       string        `json:"storage"`
	DefaultPage   string        `json:"defaultPage"`
	NotesDebounce time.Duration `json:"notesDebounce"`
	Timeout       time.Duration `json:"timeout"`
	LogLevel      string        `json:"logLevel"`

	TUI TUIConfig `json:"tui"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set: unicode|ascii
	Glyphs string `json:"glyphs,omitempty"`
	// Theme forces light|dark; empty means auto-detect.
	Theme string `json:"theme,omitempty"`
}

const (
	DefaultServer        = "http://127.0.0.1:5005"
	DefaultDir           = "~/.editdesk"
	DefaultNotesDebounce = 500 * time.Millisecond
)

// NewViper returns a viper instance with editdesk defaults and env binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("server", DefaultServer)
	v.SetDefault("token", "")
	v.SetDefault("dir", DefaultDir)
	v.SetDefault("storage", BackendDiskv)
	v.SetDefault("default_page", "home")
	v.SetDefault("notes_debounce", DefaultNotesDebounce)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("log_level", "warn")
	v.SetDefault("tui.glyphs", "unicode")
	v.SetDefault("tui.theme", "")
	v.SetDefault("config", "")

	v.SetEnvPrefix("EDITDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds persistent CLI flags by their viper key. Flags use dashes, keys underscores.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys ...string) error {
	for _, k := range keys {
		f := fs.Lookup(strings.ReplaceAll(k, "_", "-"))
		if f == nil {
			return errors.New("config: no flag for key " + k)
		}
		if err := v.BindPFlag(k, f); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig reads an optional config file and resolves the final Config.
// The file is EDITDESK_CONFIG when set, else "config.{yaml,json,toml}" in the data dir.
func LoadConfig(v *viper.Viper) (Config, error) {
	dir, err := homedir.Expand(v.GetString("dir"))
	if err != nil {
		return Config{}, err
	}

	if explicit := strings.TrimSpace(v.GetString("config")); explicit != "" {
		path, err := homedir.Expand(explicit)
		if err != nil {
			return Config{}, err
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	cfg := Config{
		Server:        strings.TrimRight(strings.TrimSpace(v.GetString("server")), "/"),
		Token:         strings.TrimSpace(v.GetString("token")),
		Dir:           filepath.Clean(dir),
		Storage:       strings.ToLower(strings.TrimSpace(v.GetString("storage"))),
		DefaultPage:   strings.TrimSpace(v.GetString("default_page")),
		NotesDebounce: v.GetDuration("notes_debounce"),
		Timeout:       v.GetDuration("timeout"),
		LogLevel:      strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		TUI: TUIConfig{
			Glyphs: strings.ToLower(strings.TrimSpace(v.GetString("tui.glyphs"))),
			Theme:  strings.ToLower(strings.TrimSpace(v.GetString("tui.theme"))),
		},
	}
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.NotesDebounce <= 0 {
		cfg.NotesDebounce = DefaultNotesDebounce
	}
	return cfg, nil
}
