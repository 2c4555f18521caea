package sim

import (
	"time"

	"lift-simulator/internal/aero"
)

type CommandType string

const (
	CmdSetInputs CommandType = "inputs"
	CmdFreeze    CommandType = "freeze"
	CmdResume    CommandType = "resume"
	CmdReset     CommandType = "reset"
)

type Command interface {
	Type() CommandType
	ReceivedAt() time.Time
}

// SetInputsCommand replaces the base inputs used from the next frame on.
type SetInputsCommand struct {
	At     time.Time
	Inputs aero.Snapshot `json:"inputs"`
}

func (c SetInputsCommand) Type() CommandType     { return CmdSetInputs }
func (c SetInputsCommand) ReceivedAt() time.Time { return c.At }

// FreezeCommand stops computing frames; the last frame keeps being served.
type FreezeCommand struct{ At time.Time }

func (c FreezeCommand) Type() CommandType     { return CmdFreeze }
func (c FreezeCommand) ReceivedAt() time.Time { return c.At }

type ResumeCommand struct{ At time.Time }

func (c ResumeCommand) Type() CommandType     { return CmdResume }
func (c ResumeCommand) ReceivedAt() time.Time { return c.At }

// ResetCommand restores the initial inputs and clears environment state.
type ResetCommand struct{ At time.Time }

func (c ResetCommand) Type() CommandType     { return CmdReset }
func (c ResetCommand) ReceivedAt() time.Time { return c.At }
