package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/drfreeman816/VulkanTest/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing and instance creation.
	Name string `toml:"name"`
	// The engine name reported to the driver alongside the application name.
	EngineName string `toml:"engine_name"`
	LogLevel   string `toml:"log_level"`

	EnableValidation bool     `toml:"enable_validation"`
	ValidationLayers []string `toml:"validation_layers"`
	DeviceExtensions []string `toml:"device_extensions"`
}

// DefaultApplicationConfig describes a runnable application without any
// config file present.
func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:        100,
		StartPosY:        100,
		StartWidth:       800,
		StartHeight:      600,
		Name:             "Hello Triangle",
		EngineName:       "No Engine",
		LogLevel:         "debug",
		EnableValidation: true,
		ValidationLayers: []string{"VK_LAYER_KHRONOS_validation"},
		DeviceExtensions: []string{"VK_KHR_swapchain"},
	}
}

// LoadApplicationConfig reads path on top of the defaults. A missing file is
// not an error, a malformed one is.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			core.LogDebug("No config file at %s; using defaults.", path)
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name must not be empty")
	}
	if c.StartWidth == 0 || c.StartHeight == 0 {
		return fmt.Errorf("window size %dx%d is not usable", c.StartWidth, c.StartHeight)
	}
	return nil
}
