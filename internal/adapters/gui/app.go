package gui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"imgconv/internal/core/domain"
	"imgconv/internal/core/port"
	"imgconv/internal/core/service"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"
)

// saveFilters drives the output format selector. The extension to append to
// a chosen filename is extracted from the selected label via ExtFromFilter.
var saveFilters = []string{
	"PNG (*.png)",
	"JPEG (*.jpg)",
	"ICO (*.ico)",
	"GIF (*.gif)",
	"BMP (*.bmp)",
	"TIFF (*.tiff)",
	"WebP (*.webp)",
}

// App is the drag-and-drop converter window.
type App struct {
	app       fyne.App
	window    fyne.Window
	pipeline  *service.Pipeline
	inspector port.ImageInspector

	inputPath  string
	outputPath string

	inputLabel   *widget.Label
	outputLabel  *widget.Label
	preview      *canvas.Image
	infoLabel    *widget.Label
	formatSelect *widget.Select
	convertBtn   *widget.Button
	progress     *widget.ProgressBar
	statusLabel  *widget.Label
}

func New(pipeline *service.Pipeline, inspector port.ImageInspector) *App {
	return newWithApp(app.NewWithID("io.imgconv.app"), pipeline, inspector)
}

func newWithApp(fyneApp fyne.App, pipeline *service.Pipeline, inspector port.ImageInspector) *App {
	a := &App{
		app:       fyneApp,
		pipeline:  pipeline,
		inspector: inspector,
	}

	a.app.Settings().SetTheme(&darkTheme{})
	a.createUI()

	return a
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.window.ShowAndRun()
}

func (a *App) createUI() {
	a.window = a.app.NewWindow("Image Converter")
	a.window.Resize(fyne.NewSize(750, 650))

	title := widget.NewLabelWithStyle("Image Converter", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	a.inputLabel = widget.NewLabel("drop an image or choose a file")
	a.inputLabel.Truncation = fyne.TextTruncateEllipsis
	openBtn := widget.NewButton("Open", a.browseInput)

	a.outputLabel = widget.NewLabel("choose a destination")
	a.outputLabel.Truncation = fyne.TextTruncateEllipsis
	saveBtn := widget.NewButton("Save as", a.browseOutput)

	a.formatSelect = widget.NewSelect(saveFilters, nil)
	a.formatSelect.SetSelectedIndex(0)

	fileRow := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Input:"), openBtn, a.inputLabel),
		container.NewBorder(nil, nil, widget.NewLabel("Output:"), container.NewHBox(a.formatSelect, saveBtn),
			a.outputLabel),
	)

	a.preview = &canvas.Image{FillMode: canvas.ImageFillContain}
	a.preview.SetMinSize(fyne.NewSize(400, 300))

	a.infoLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	a.convertBtn = widget.NewButton("Convert", a.startConversion)
	a.convertBtn.Importance = widget.HighImportance
	a.convertBtn.Disable()

	a.progress = widget.NewProgressBar()
	a.progress.Hide()

	a.statusLabel = widget.NewLabelWithStyle("ready", fyne.TextAlignCenter, fyne.TextStyle{})

	content := container.NewBorder(
		container.NewVBox(title, fileRow),
		container.NewVBox(a.infoLabel, a.convertBtn, a.progress, a.statusLabel),
		nil, nil,
		container.NewPadded(a.preview),
	)

	a.window.SetContent(content)

	a.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		a.handleDrop(uris)
	})
}

func (a *App) handleDrop(uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}

	path := uris[0].Path()
	if !domain.ExtensionAllowed(path) {
		dialog.ShowInformation("Unsupported file",
			fmt.Sprintf("please drop an image file (%s)", strings.Join(domain.AllowedExtensions(), ", ")),
			a.window)
		return
	}

	a.setInput(path)
}

func (a *App) browseInput() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		a.setInput(reader.URI().Path())
	}, a.window)

	fd.SetFilter(storage.NewExtensionFileFilter(domain.AllowedExtensions()))
	fd.Show()
}

func (a *App) browseOutput() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}

		path := writer.URI().Path()
		writer.Close()

		if ext, ok := ExtFromFilter(a.formatSelect.Selected); ok {
			if !strings.HasSuffix(strings.ToLower(path), ext) {
				path += ext
			}
		}

		a.setOutput(path)
	}, a.window)

	if a.inputPath != "" {
		base := filepath.Base(a.inputPath)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		fd.SetFileName(name + "_converted")
	}

	fd.Show()
}

func (a *App) setInput(path string) {
	a.inputPath = path
	a.inputLabel.SetText(filepath.Base(path))
	a.statusLabel.SetText("file selected")

	log.Info().Str("path", path).Msg("input image selected")

	a.loadPreview(path)
	a.updateConvertState()
}

func (a *App) setOutput(path string) {
	a.outputPath = path
	a.outputLabel.SetText(filepath.Base(path))
	a.statusLabel.SetText("ready to convert")
	a.updateConvertState()
}

func (a *App) loadPreview(path string) {
	a.preview.Resource = nil
	a.preview.File = path
	a.preview.Refresh()

	info, ok := a.inspector.Inspect(path)
	if !ok {
		a.infoLabel.SetText("")
		a.statusLabel.SetText("could not read image")
		return
	}

	a.infoLabel.SetText(fmt.Sprintf("%d×%d  •  %s  •  %s  •  %s",
		info.Width, info.Height, info.Format, info.SizeLabel, info.ColorMode))
}

func (a *App) updateConvertState() {
	if a.inputPath != "" && a.outputPath != "" {
		a.convertBtn.Enable()
		return
	}

	a.convertBtn.Disable()
}

func (a *App) startConversion() {
	if a.inputPath == "" || a.outputPath == "" {
		dialog.ShowError(errors.New("please choose input and output files"), a.window)
		return
	}

	request := domain.ConversionRequest{InputPath: a.inputPath, OutputPath: a.outputPath}

	a.convertBtn.Disable()
	a.progress.SetValue(0)
	a.progress.Show()
	a.statusLabel.SetText("converting...")

	go func() {
		outcome := a.pipeline.Run(context.Background(), request,
			func(percent int) {
				fyne.Do(func() { a.progress.SetValue(float64(percent) / 100) })
			},
			func(status string) {
				fyne.Do(func() { a.statusLabel.SetText(status) })
			})

		fyne.Do(func() { a.finishConversion(outcome) })
	}()
}

func (a *App) finishConversion(outcome domain.ConversionOutcome) {
	a.progress.Hide()
	a.updateConvertState()

	if outcome.Success {
		a.statusLabel.SetText("done")
		dialog.ShowInformation("Success", outcome.Message, a.window)
		return
	}

	a.statusLabel.SetText("failed")
	dialog.ShowError(errors.New(outcome.Message), a.window)
}
