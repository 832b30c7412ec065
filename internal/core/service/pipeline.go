package service

import (
	"context"
	"sync/atomic"
	"time"

	"imgconv/internal/core/domain"
	"imgconv/internal/core/port"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const successMessage = "image converted successfully"

// ProgressFunc receives milestone percentages while a conversion runs.
type ProgressFunc func(percent int)

// StatusFunc receives human-readable stage descriptions while a conversion
// runs.
type StatusFunc func(status string)

// Pipeline runs the validate-then-convert sequence for one request at a
// time. A second start attempt while a conversion is in flight is rejected
// with a busy outcome; there is no queueing and a running conversion is not
// cancelled. The configured timeout is kept for display but not enforced.
type Pipeline struct {
	validator *Validator
	converter port.ImageConverter
	timeout   time.Duration
	busy      atomic.Bool
}

func NewPipeline(validator *Validator, converter port.ImageConverter) *Pipeline {
	timeout, err := time.ParseDuration(viper.GetString("convert.timeout"))
	if err != nil {
		timeout = 0
	}

	return &Pipeline{validator: validator, converter: converter, timeout: timeout}
}

// Run executes one conversion attempt. progress and status may be nil; when
// set they are invoked from the calling goroutine at the fixed milestones.
func (p *Pipeline) Run(ctx context.Context, request domain.ConversionRequest,
	progress ProgressFunc, status StatusFunc) domain.ConversionOutcome {
	if !p.busy.CompareAndSwap(false, true) {
		log.Warn().Str("input", request.InputPath).Msg("conversion rejected, another one is running")
		return domain.ConversionOutcome{Message: domain.ErrConversionInProgress.Error()}
	}
	defer p.busy.Store(false)

	l := log.With().
		Str("input", request.InputPath).
		Str("output", request.OutputPath).
		Logger()

	l.Info().Msg("starting conversion")
	report(progress, domain.ProgressValidating)
	notify(status, "validating input...")

	if result := p.validator.Validate(request.InputPath); !result.Valid {
		notify(status, "validation failed")
		return domain.ConversionOutcome{Message: result.Message}
	}

	report(progress, domain.ProgressValidated)
	notify(status, "converting...")

	if err := p.converter.Convert(ctx, request); err != nil {
		l.Error().Err(err).Msg("conversion failed")
		notify(status, "conversion failed")
		return domain.ConversionOutcome{Message: err.Error()}
	}

	report(progress, domain.ProgressDone)
	notify(status, "conversion finished")
	l.Info().Msg("conversion finished")

	return domain.ConversionOutcome{Success: true, Message: successMessage}
}

func report(progress ProgressFunc, percent int) {
	if progress != nil {
		progress(percent)
	}
}

func notify(status StatusFunc, text string) {
	if status != nil {
		status(text)
	}
}
