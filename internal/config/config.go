package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	appDirName            = "todolist"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultLogName        = "todo.log"
	DefaultStorageKey     = "TodoApp"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Toggle   string `toml:"toggle"`
	Options  string `toml:"options"`
	Delete   string `toml:"delete"`
	Open     string `toml:"open"`
	Collapse string `toml:"collapse"`
	Theme    string `toml:"theme"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	Next     string `toml:"next"`
	Prev     string `toml:"prev"`
}

type Config struct {
	DBPath       string `toml:"db_path"`
	LogPath      string `toml:"log_path"`
	LogLevel     string `toml:"log_level"`
	Theme        string `toml:"theme"`
	Sort         string `toml:"sort"`
	PersistEmpty bool   `toml:"persist_empty"`
	StorageKey   string `toml:"storage_key"`
	Keys         Keymap `toml:"keys"`
}

// ResolveConfigPath returns $TODOLIST_CONFIG when set, otherwise
// config.toml inside the user config directory.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv("TODOLIST_CONFIG")); p != "" {
		return p
	}
	dir, err := ConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, DefaultConfigFileName)
}

func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, appDirName), nil
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	normalize(&cfg, filepath.Dir(path))
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg Config) error {
	return write(path, cfg)
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func normalize(cfg *Config, dir string) {
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dir, DefaultDBName)
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(dir, DefaultLogName)
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if cfg.Theme != "dark" {
		cfg.Theme = "light"
	}
	cfg.Sort = strings.ToLower(strings.TrimSpace(cfg.Sort))
	if cfg.Sort != "insertion" {
		cfg.Sort = "datetime"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	fillKeys(&cfg.Keys, defaultKeys())
}

func fillKeys(k *Keymap, def Keymap) {
	set := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	set(&k.Quit, def.Quit)
	set(&k.Add, def.Add)
	set(&k.Up, def.Up)
	set(&k.Down, def.Down)
	set(&k.Toggle, def.Toggle)
	set(&k.Options, def.Options)
	set(&k.Delete, def.Delete)
	set(&k.Open, def.Open)
	set(&k.Collapse, def.Collapse)
	set(&k.Theme, def.Theme)
	set(&k.Confirm, def.Confirm)
	set(&k.Cancel, def.Cancel)
	set(&k.Next, def.Next)
	set(&k.Prev, def.Prev)
}

func defaultKeys() Keymap {
	return Keymap{
		Quit:     "q",
		Add:      "a",
		Up:       "k",
		Down:     "j",
		Toggle:   " ",
		Options:  "o",
		Delete:   "d",
		Open:     "enter",
		Collapse: "c",
		Theme:    "t",
		Confirm:  "enter",
		Cancel:   "esc",
		Next:     "tab",
		Prev:     "shift+tab",
	}
}

// Default returns the configuration written on first launch for a config
// file living in dir.
func Default(dir string) Config {
	return defaultConfig(dir)
}

func defaultConfig(dir string) Config {
	return Config{
		DBPath:       filepath.Join(dir, DefaultDBName),
		LogPath:      filepath.Join(dir, DefaultLogName),
		LogLevel:     "info",
		Theme:        "light",
		Sort:         "datetime",
		PersistEmpty: false,
		StorageKey:   DefaultStorageKey,
		Keys:         defaultKeys(),
	}
}
