package gui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"imgconv/internal/core/domain"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockInspector struct {
	info         domain.ImageInfo
	ok           bool
	inspectedFor string
}

func (m *mockInspector) Inspect(path string) (domain.ImageInfo, bool) {
	m.inspectedFor = path
	return m.info, m.ok
}

func (m *mockInspector) Verify(_ string) error {
	return nil
}

func newTestApp(mi *mockInspector) *App {
	return newWithApp(test.NewApp(), nil, mi)
}

func writePreviewPNG(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})

	path := filepath.Join(dir, "photo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, img))
	return path
}

func TestSetInputUpdatesPreviewAndInfo(t *testing.T) {
	mi := &mockInspector{
		info: domain.ImageInfo{Width: 8, Height: 8, Format: "PNG", ColorMode: "RGBA", SizeLabel: "90 B"},
		ok:   true,
	}
	a := newTestApp(mi)

	path := writePreviewPNG(t, t.TempDir())
	a.setInput(path)

	assert.Equal(t, path, a.inputPath)
	assert.Equal(t, "photo.png", a.inputLabel.Text)
	assert.Equal(t, path, a.inspectedFor)
	assert.Contains(t, a.infoLabel.Text, "8×8")
	assert.Contains(t, a.infoLabel.Text, "PNG")
	assert.Contains(t, a.infoLabel.Text, "RGBA")
	assert.True(t, a.convertBtn.Disabled(), "convert stays disabled without an output path")
}

func TestSetInputUnreadableImage(t *testing.T) {
	mi := &mockInspector{ok: false}
	a := newTestApp(mi)

	a.setInput(filepath.Join(t.TempDir(), "broken.png"))

	assert.Empty(t, a.infoLabel.Text)
	assert.Equal(t, "could not read image", a.statusLabel.Text)
}

func TestUpdateConvertState(t *testing.T) {
	a := newTestApp(&mockInspector{ok: true})

	assert.True(t, a.convertBtn.Disabled())

	a.setInput(writePreviewPNG(t, t.TempDir()))
	assert.True(t, a.convertBtn.Disabled())

	a.setOutput(filepath.Join(t.TempDir(), "out.jpg"))
	assert.False(t, a.convertBtn.Disabled())
	assert.Equal(t, "out.jpg", a.outputLabel.Text)
}

func TestHandleDropAcceptsAllowedExtension(t *testing.T) {
	mi := &mockInspector{ok: true}
	a := newTestApp(mi)

	path := writePreviewPNG(t, t.TempDir())
	a.handleDrop([]fyne.URI{storage.NewFileURI(path)})

	assert.Equal(t, path, a.inputPath)
	assert.Equal(t, "photo.png", a.inputLabel.Text)
}

func TestHandleDropRejectsDisallowedExtension(t *testing.T) {
	mi := &mockInspector{ok: true}
	a := newTestApp(mi)

	a.handleDrop([]fyne.URI{storage.NewFileURI(filepath.Join(t.TempDir(), "notes.txt"))})

	assert.Empty(t, a.inputPath)
	assert.Empty(t, mi.inspectedFor)
}

func TestHandleDropEmpty(t *testing.T) {
	a := newTestApp(&mockInspector{ok: true})

	a.handleDrop(nil)

	assert.Empty(t, a.inputPath)
}
