package service

import (
	"fmt"
	"os"

	"imgconv/internal/core/domain"
	"imgconv/internal/core/port"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Validator checks a candidate input file against the existence, extension
// allow-list and size-ceiling rules, then asks the codec adapter to verify
// that the file decodes. Checks short-circuit on the first failure.
type Validator struct {
	inspector port.ImageInspector
	maxSize   int64
}

func NewValidator(inspector port.ImageInspector) *Validator {
	maxSize := int64(domain.MaxFileSize)
	if mib := viper.GetInt64("validate.max_file_size_mib"); mib > 0 {
		maxSize = mib << 20
	}

	return &Validator{inspector: inspector, maxSize: maxSize}
}

func (v *Validator) Validate(path string) domain.ValidationResult {
	stat, err := os.Stat(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("input file not found")
		return domain.ValidationResult{Message: fmt.Sprintf("file not found: %s", path)}
	}

	if !domain.ExtensionAllowed(path) {
		log.Error().Str("path", path).Msg("unsupported input format")
		return domain.ValidationResult{Message: fmt.Sprintf("unsupported format: %q", domain.NormalizedExt(path))}
	}

	if stat.Size() > v.maxSize {
		log.Error().Int64("size", stat.Size()).Int64("limit", v.maxSize).Msg("input file too large")
		return domain.ValidationResult{Message: fmt.Sprintf("file too large: %.1f MiB, limit is %d MiB",
			float64(stat.Size())/float64(1<<20), v.maxSize>>20)}
	}

	if err := v.inspector.Verify(path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("input file failed decode check")
		return domain.ValidationResult{Message: fmt.Sprintf("corrupt file: %v", err)}
	}

	log.Info().Str("path", path).Msg("input file validated")

	return domain.ValidationResult{Valid: true, Message: "ok"}
}
