package port

import (
	"context"

	"imgconv/internal/core/domain"
)

type ImageConverter interface {
	// Convert decodes the image at the request's input path and writes it to the output path in the format
	// implied by the destination extension, overwriting any existing file.
	Convert(ctx context.Context, request domain.ConversionRequest) error
}

type ImageInspector interface {
	// Inspect returns display metadata for the image at path. The second return value is false when the file
	// cannot be opened or decoded; an unreadable file is not an error for display purposes.
	Inspect(path string) (domain.ImageInfo, bool)
	// Verify fully decodes the image at path and returns the decode error for a corrupt or truncated file.
	Verify(path string) error
}
