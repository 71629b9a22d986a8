package commander

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

//go:generate mockery --name Sender --filename sender.go

// ErrEmptySource is returned when import command has no catalog source.
var ErrEmptySource = errors.New("empty catalog source")

// ImportCommand is command to import catalog file from source.
// Source is http(s) url or path of local file accessible by the worker.
type ImportCommand struct {
	Source string `json:"source"`
}

// Validate returns ErrEmptySource when command has no source.
func (c ImportCommand) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return ErrEmptySource
	}

	return nil
}

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// ImportCommander sends import commands.
type ImportCommander struct {
	sender Sender
}

// NewImportCommander returns new ImportCommander using provided sender for sending messages.
func NewImportCommander(sender Sender) ImportCommander {
	return ImportCommander{
		sender: sender,
	}
}

// SendImportCommand sends import command with provided source.
func (c ImportCommander) SendImportCommand(ctx context.Context, source string) error {
	cmd := ImportCommand{
		Source: source,
	}
	if err := cmd.Validate(); err != nil {
		return err
	}

	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal import command: %w", err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
