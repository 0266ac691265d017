package provisioning

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/strmbox/strmbox/internal/ui"
)

// Observer receives severity-tagged status lines for every stage check,
// apply, and verification outcome.
type Observer interface {
	Info(format string, v ...any)
	Success(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// ConsoleObserver prints styled status lines to stdout and mirrors them to
// the structured log.
type ConsoleObserver struct {
	logger zerolog.Logger
	styled bool
}

// NewConsoleObserver creates an Observer writing to the operator console.
func NewConsoleObserver(logger zerolog.Logger) *ConsoleObserver {
	return &ConsoleObserver{
		logger: logger,
		styled: ui.IsInteractive(),
	}
}

// Info implements Observer.
func (o *ConsoleObserver) Info(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	o.logger.Info().Msg(msg)
	o.println(ui.DimStyle, ui.InfoMark, msg)
}

// Success implements Observer.
func (o *ConsoleObserver) Success(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	o.logger.Info().Msg(msg)
	o.println(ui.SuccessStyle, ui.CheckMark, msg)
}

// Warn implements Observer.
func (o *ConsoleObserver) Warn(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	o.logger.Warn().Msg(msg)
	o.println(ui.WarningStyle, ui.WarnMark, msg)
}

// Error implements Observer.
func (o *ConsoleObserver) Error(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	o.logger.Error().Msg(msg)
	o.println(ui.ErrorStyle, ui.CrossMark, msg)
}

func (o *ConsoleObserver) println(style interface{ Render(...string) string }, mark, msg string) {
	line := mark + " " + msg
	if o.styled {
		line = style.Render(line)
	}
	fmt.Println(line)
}
