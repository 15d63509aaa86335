package commandstructure

import "image"

// Command is one preprocessing step applied to the source icon before resizing
type Command interface {
	Name() string
	Execute(img image.Image) (image.Image, error)
}

// CommandFactory creates a command from configuration parameters
type CommandFactory func(params map[string]any) (Command, error)

// CommandConfig names a registered command and carries its parameters
type CommandConfig struct {
	Name   string         `yaml:"name" validate:"required"`
	Params map[string]any `yaml:",inline"`
}
