package status

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 FileChangeType represents the kind of change made to a file
type FileChangeType int

const (
	FileCopied FileChangeType = iota
	FileRewritten
	FileSkipped
	FileError
)

// 🖼️ FileChange represents a change applied during a run
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
	Error       error
}

// 📢 UserLogger provides user-friendly per-file feedback on top of the
// structured zerolog stream
type UserLogger struct {
	log zerolog.Logger
}

// 🎯 NewUserLogger creates a new user logger from the context logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{log: *zerolog.Ctx(ctx)}
}

// 📝 LogFileChange logs a file change with appropriate prefix and formatting
func (u *UserLogger) LogFileChange(change FileChange) {
	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileCopied:
		action = "Copied"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"})
	case FileRewritten:
		action = "Rewrote"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "🔄"})
	case FileSkipped:
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"})
	case FileError:
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"})
	}

	msg := fmt.Sprintf("%s %s", action, change.Path)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	if change.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(change.Error)
		u.log.Error().Err(change.Error).Msg(msg)
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg)
	}
}

// 📊 LogRunNote logs a note about the overall run
func (u *UserLogger) LogRunNote(description string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(description)
	u.log.Info().Msg(description)
}
