package gioui

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"gioui.org/unit"
)

type (
	Preferences struct {
		Window WindowPreferences
	}

	WindowPreferences struct {
		Width     int
		Height    int
		Maximized bool `yaml:",omitempty"`
	}
)

//go:embed preferences.yml
var defaultPreferences []byte

// ReadConfig reads a configuration first from the defaultYml and then tries
// to find a user specific config file, overriding the fields of the default
// config. The error returned is a warning only: the target is always filled
// with the defaults even when the user config could not be read.
func ReadConfig(defaultYml []byte, filename string, target any) (warn error) {
	if err := yaml.UnmarshalStrict(defaultYml, target); err != nil {
		// if the default config is corrupted, this is a programming error
		panic(fmt.Errorf("failed to unmarshal default config %v: %w", filename, err))
	}
	exists, err := ReadCustomConfigYml(filename, target)
	if exists && err != nil {
		return fmt.Errorf("warning: failed to read %v: %w", filename, err)
	}
	return nil
}

// ReadCustomConfigYml modifies the target argument, i.e. needs a pointer
func ReadCustomConfigYml(filename string, target any) (exists bool, err error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return false, err
	}
	path := filepath.Join(configDir, "otelauta", filename)
	bytes, err2 := os.ReadFile(path)
	if err2 != nil {
		return false, err2
	}
	err = yaml.Unmarshal(bytes, target)
	return true, err
}

func (p Preferences) WindowSize() (unit.Dp, unit.Dp) {
	return unit.Dp(p.Window.Width), unit.Dp(p.Window.Height)
}
