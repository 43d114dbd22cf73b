package engine

import (
	"github.com/spaghettifunk/gridflight/engine/config"
	"github.com/spaghettifunk/gridflight/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel
	// Everything else the systems need.
	Settings *config.Config
	// When set, the file is watched and changes are applied between frames.
	SettingsPath string
}

// NewApplicationConfig derives the window settings from a loaded config.
func NewApplicationConfig(cfg *config.Config, path string) (*ApplicationConfig, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	return &ApplicationConfig{
		StartPosX:    cfg.Window.X,
		StartPosY:    cfg.Window.Y,
		StartWidth:   cfg.Window.Width,
		StartHeight:  cfg.Window.Height,
		Name:         cfg.Window.Title,
		LogLevel:     level,
		Settings:     cfg,
		SettingsPath: path,
	}, nil
}
