package codec

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"imgconv/internal/adapters/file"
	"imgconv/internal/core/domain"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog/log"
	ico "github.com/sergeymakinen/go-ico"
	"github.com/spf13/viper"
)

const defaultJPEGQuality = 95

// Converter implements image decoding and encoding across the supported
// formats using the imaging, go-ico and nativewebp libraries.
type Converter struct {
	jpegQuality int
}

func NewConverter() *Converter {
	quality := viper.GetInt("convert.jpeg_quality")
	if quality <= 0 || quality > 100 {
		quality = defaultJPEGQuality
	}

	return &Converter{jpegQuality: quality}
}

// Convert decodes the input image and saves it at the output path in the
// format implied by the destination extension. JPEG output flattens any
// alpha or palette source onto an opaque white background; ICO output packs
// the fixed multi-resolution size set.
func (c *Converter) Convert(ctx context.Context, request domain.ConversionRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, _, err := c.decode(request.InputPath)
	if err != nil {
		return fmt.Errorf("error opening input image: %w", err)
	}

	ext := domain.NormalizedExt(request.OutputPath)

	switch ext {
	case ".jpg", ".jpeg":
		if hasAlphaOrPalette(img) {
			log.Debug().Str("path", request.InputPath).Msg("flattening image for jpeg output")
			img = flattenOnWhite(img)
		}

		return file.WriteAtomic(request.OutputPath, func(w io.Writer) error {
			return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(c.jpegQuality))
		})
	case ".ico":
		return file.WriteAtomic(request.OutputPath, func(w io.Writer) error {
			return ico.EncodeAll(w, iconSizeSet(img))
		})
	case ".webp":
		// nativewebp expects a pixel-addressable image.
		flat := imaging.Clone(img)
		return file.WriteAtomic(request.OutputPath, func(w io.Writer) error {
			return nativewebp.Encode(w, flat, nil)
		})
	default:
		format, err := imaging.FormatFromExtension(ext)
		if err != nil {
			return fmt.Errorf("%w: %q", domain.ErrUnsupportedOutput, ext)
		}

		return file.WriteAtomic(request.OutputPath, func(w io.Writer) error {
			return imaging.Encode(w, img, format)
		})
	}
}

// Inspect returns display metadata for the image at path, or ok=false when
// the file cannot be opened or decoded.
func (c *Converter) Inspect(path string) (domain.ImageInfo, bool) {
	img, format, err := c.decode(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("could not inspect image")
		return domain.ImageInfo{}, false
	}

	size, err := file.Size(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("could not stat image")
		return domain.ImageInfo{}, false
	}

	bounds := img.Bounds()

	return domain.ImageInfo{
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Format:    strings.ToUpper(format),
		ColorMode: colorMode(img),
		SizeLabel: domain.SizeLabel(size),
	}, true
}

// Verify fully decodes the image at path and returns the decode error for a
// corrupt or truncated file.
func (c *Converter) Verify(path string) error {
	_, _, err := c.decode(path)
	return err
}

func (c *Converter) decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	// image.Decode chokes on some ICO files during format sniffing, so the
	// dedicated decoder handles those directly.
	if domain.NormalizedExt(path) == ".ico" {
		img, err := ico.Decode(f)
		if err != nil {
			return nil, "", err
		}
		return img, "ico", nil
	}

	return image.Decode(f)
}

// icoSizes is the fixed resolution set packed into every ICO output.
var icoSizes = []int{16, 24, 32, 48, 64, 128, 256}

func iconSizeSet(img image.Image) []image.Image {
	set := make([]image.Image, 0, len(icoSizes))
	for _, size := range icoSizes {
		set = append(set, resize.Resize(uint(size), uint(size), img, resize.Lanczos3))
	}

	return set
}

func hasAlphaOrPalette(img image.Image) bool {
	switch img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64,
		*image.Paletted, *image.Alpha, *image.Alpha16:
		return true
	}

	return false
}

func flattenOnWhite(img image.Image) image.Image {
	bounds := img.Bounds()
	background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(background, img, image.Pt(0, 0), 1.0)
}

func colorMode(img image.Image) string {
	switch img.(type) {
	case *image.NRGBA, *image.RGBA:
		return "RGBA"
	case *image.NRGBA64, *image.RGBA64:
		return "RGBA64"
	case *image.Paletted:
		return "Palette"
	case *image.Gray:
		return "Gray"
	case *image.Gray16:
		return "Gray16"
	case *image.YCbCr:
		return "YCbCr"
	case *image.CMYK:
		return "CMYK"
	default:
		return "Unknown"
	}
}
