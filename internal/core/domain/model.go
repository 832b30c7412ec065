package domain

// ConversionRequest describes a single conversion attempt. Immutable once
// constructed, discarded after the attempt completes.
type ConversionRequest struct {
	InputPath  string
	OutputPath string
}

// ValidationResult carries the verdict on a candidate input file together
// with a human-readable reason on failure.
type ValidationResult struct {
	Valid   bool
	Message string
}

// ConversionOutcome is the terminal result of one conversion attempt.
type ConversionOutcome struct {
	Success bool
	Message string
}

// ImageInfo is a read-only display snapshot of an image file.
type ImageInfo struct {
	Width     int
	Height    int
	Format    string
	ColorMode string
	SizeLabel string
}

// Progress milestones reported during a conversion. These are fixed stage
// markers, not a measurement of actual work completed.
const (
	ProgressValidating = 20
	ProgressValidated  = 40
	ProgressDone       = 100
)
