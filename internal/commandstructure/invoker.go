package commandstructure

import (
	"fmt"
	"image"
	"log/slog"
	"time"
)

// CommandInvoker executes a sequence of commands on an image
type CommandInvoker struct {
	commands []Command
}

// NewCommandInvoker creates a new command invoker
func NewCommandInvoker(commands []Command) *CommandInvoker {
	return &CommandInvoker{
		commands: commands,
	}
}

// Len returns the number of commands in the pipeline
func (i *CommandInvoker) Len() int {
	return len(i.commands)
}

// Execute applies all commands in order, feeding each the previous result
func (i *CommandInvoker) Execute(img image.Image) (image.Image, error) {
	if len(i.commands) == 0 {
		slog.Debug("no preprocessing commands, using source image as is")
		return img, nil
	}

	start := time.Now()
	slog.Info("starting preprocessing pipeline", "command_count", len(i.commands))

	current := img
	for idx, command := range i.commands {
		commandStart := time.Now()
		before := current.Bounds()

		processed, err := command.Execute(current)
		if err != nil {
			slog.Error("command execution failed",
				"index", idx,
				"command_name", command.Name(),
				"error", err)
			return nil, fmt.Errorf("command %s (index %d) failed: %w", command.Name(), idx, err)
		}

		after := processed.Bounds()
		slog.Debug("command completed",
			"index", idx,
			"command_name", command.Name(),
			"duration_ms", time.Since(commandStart).Milliseconds(),
			"input_width", before.Dx(),
			"input_height", before.Dy(),
			"output_width", after.Dx(),
			"output_height", after.Dy())

		current = processed
	}

	slog.Info("preprocessing pipeline completed",
		"total_duration_ms", time.Since(start).Milliseconds(),
		"command_count", len(i.commands))
	return current, nil
}

// BuildCommands creates every configured command from DefaultRegistry
func BuildCommands(configs []CommandConfig) ([]Command, error) {
	commands := make([]Command, 0, len(configs))
	for i, config := range configs {
		command, err := DefaultRegistry.Create(config.Name, config.Params)
		if err != nil {
			return nil, fmt.Errorf("failed to create command at index %d (%s): %w", i, config.Name, err)
		}
		commands = append(commands, command)
	}
	return commands, nil
}

// ExecuteCommands builds the configured commands and applies them in order
func ExecuteCommands(img image.Image, configs []CommandConfig) (image.Image, error) {
	commands, err := BuildCommands(configs)
	if err != nil {
		return nil, err
	}
	return NewCommandInvoker(commands).Execute(img)
}
