package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/text"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/models"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/services"
)

// languageCodes are the languages offered in the source/target selectors.
var languageCodes = []string{"ar", "de", "en", "es", "fr", "hi", "it", "ja", "ko", "pt", "ru", "zh"}

func languageOptions() []string {
	opts := make([]string, 0, len(languageCodes))
	for _, code := range languageCodes {
		opts = append(opts, fmt.Sprintf("%s (%s)", text.EnglishName(code), code))
	}
	sort.Strings(opts)
	return opts
}

// codeFromOption extracts the language code from a "Name (code)" option.
func codeFromOption(option string) string {
	start := strings.LastIndex(option, "(")
	end := strings.LastIndex(option, ")")
	if start < 0 || end <= start {
		return option
	}
	return option[start+1 : end]
}

func optionForCode(code string) string {
	return fmt.Sprintf("%s (%s)", text.EnglishName(code), code)
}

// MainUI is a single-window front end for the translation pipeline. One job
// runs at a time; all pipeline work happens off the Fyne event loop and UI
// updates are marshalled back with fyne.Do.
type MainUI struct {
	window   fyne.Window
	config   *models.Config
	pipeline *services.Pipeline

	inputEntry   *widget.Entry
	sourceSelect *widget.Select
	targetSelect *widget.Select
	voiceSelect  *widget.Select

	mixCheck     *widget.Check
	bgSlider     *widget.Slider
	speechSlider *widget.Slider
	keepCheck    *widget.Check

	progressBar  *widget.ProgressBar
	stageLabel   *widget.Label
	statusLabel  *widget.Label
	logView      *widget.Entry
	startButton  *widget.Button
	cancelButton *widget.Button

	cancelJob context.CancelFunc
}

func NewMainUI(w fyne.Window) *MainUI {
	config, err := models.LoadConfig()
	if err != nil {
		config = models.DefaultConfig()
	}

	ui := &MainUI{
		window:   w,
		config:   config,
		pipeline: services.NewPipeline(config),
	}

	ui.pipeline.SetProgressCallback(func(stage string, percent int, message string) {
		fyne.Do(func() {
			ui.stageLabel.SetText(stage)
			ui.statusLabel.SetText(message)
			ui.progressBar.SetValue(float64(percent))
			ui.appendLog(fmt.Sprintf("[%3d%%] %s: %s", percent, stage, message))
		})
	})

	return ui
}

func (ui *MainUI) Build() fyne.CanvasObject {
	ui.inputEntry = widget.NewEntry()
	ui.inputEntry.SetPlaceHolder("Video file or YouTube URL")

	browseButton := widget.NewButton("Browse...", func() {
		dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			ui.inputEntry.SetText(rc.URI().Path())
			rc.Close()
		}, ui.window).Show()
	})

	ui.sourceSelect = widget.NewSelect(languageOptions(), nil)
	ui.sourceSelect.SetSelected(optionForCode(ui.config.DefaultSourceLang))
	ui.targetSelect = widget.NewSelect(languageOptions(), nil)
	ui.targetSelect.SetSelected(optionForCode(ui.config.DefaultTargetLang))

	ui.voiceSelect = widget.NewSelect(services.VoiceIDs(), nil)
	ui.voiceSelect.SetSelected(ui.config.DefaultVoice)

	ui.bgSlider = widget.NewSlider(0, 1)
	ui.bgSlider.Step = 0.05
	ui.bgSlider.SetValue(ui.config.BackgroundAudioVolume)
	ui.speechSlider = widget.NewSlider(0, 1)
	ui.speechSlider.Step = 0.05
	ui.speechSlider.SetValue(ui.config.SpeechAudioVolume)

	ui.mixCheck = widget.NewCheck("Keep original audio in the background", func(on bool) {
		if on {
			ui.bgSlider.Show()
			ui.speechSlider.Show()
		} else {
			ui.bgSlider.Hide()
			ui.speechSlider.Hide()
		}
	})
	ui.mixCheck.SetChecked(ui.config.MixBackgroundAudio)
	if !ui.config.MixBackgroundAudio {
		ui.bgSlider.Hide()
		ui.speechSlider.Hide()
	}

	ui.keepCheck = widget.NewCheck("Keep intermediate files", nil)
	ui.keepCheck.SetChecked(ui.config.KeepTempFiles)

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Min = 0
	ui.progressBar.Max = 100
	ui.stageLabel = widget.NewLabel("")
	ui.statusLabel = widget.NewLabel("Ready")

	ui.logView = widget.NewMultiLineEntry()
	ui.logView.Wrapping = fyne.TextWrapWord
	ui.logView.Disable()

	ui.startButton = widget.NewButton("Translate", ui.onStart)
	ui.startButton.Importance = widget.HighImportance
	ui.cancelButton = widget.NewButton("Cancel", ui.onCancel)
	ui.cancelButton.Disable()

	checkButton := widget.NewButton("Check Dependencies", ui.showDependencies)

	form := widget.NewForm(
		widget.NewFormItem("Input", container.NewBorder(nil, nil, nil, browseButton, ui.inputEntry)),
		widget.NewFormItem("From", ui.sourceSelect),
		widget.NewFormItem("To", ui.targetSelect),
		widget.NewFormItem("Voice", ui.voiceSelect),
		widget.NewFormItem("", ui.mixCheck),
		widget.NewFormItem("Background", ui.bgSlider),
		widget.NewFormItem("Speech", ui.speechSlider),
		widget.NewFormItem("", ui.keepCheck),
	)

	top := container.NewVBox(
		form,
		widget.NewSeparator(),
		ui.stageLabel,
		ui.progressBar,
		ui.statusLabel,
	)
	bottom := container.NewVBox(
		widget.NewSeparator(),
		container.NewHBox(ui.startButton, ui.cancelButton, checkButton),
	)
	return container.NewBorder(top, bottom, nil, nil, ui.logView)
}

func (ui *MainUI) appendLog(line string) {
	if ui.logView.Text == "" {
		ui.logView.SetText(line)
		return
	}
	ui.logView.SetText(ui.logView.Text + "\n" + line)
	ui.logView.CursorRow = strings.Count(ui.logView.Text, "\n")
}

func (ui *MainUI) onStart() {
	input := strings.TrimSpace(ui.inputEntry.Text)
	if input == "" {
		dialog.ShowError(fmt.Errorf("select a video file or paste a YouTube URL"), ui.window)
		return
	}

	job := models.NewTranslationJob(input)
	job.SourceLang = codeFromOption(ui.sourceSelect.Selected)
	job.TargetLang = codeFromOption(ui.targetSelect.Selected)
	job.Voice = ui.voiceSelect.Selected
	job.MixBackground = ui.mixCheck.Checked
	job.BackgroundVolume = ui.bgSlider.Value
	job.SpeechVolume = ui.speechSlider.Value
	ui.config.KeepTempFiles = ui.keepCheck.Checked

	if err := ui.pipeline.ValidateJob(job); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	ui.cancelJob = cancel
	ui.startButton.Disable()
	ui.cancelButton.Enable()
	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText("Starting...")
	ui.logView.SetText("")

	go func() {
		err := ui.pipeline.Process(ctx, job)
		cancelled := ctx.Err() != nil
		cancel()

		fyne.Do(func() {
			ui.startButton.Enable()
			ui.cancelButton.Disable()
			ui.cancelJob = nil

			if err != nil {
				ui.statusLabel.SetText(job.StatusText())
				if !cancelled {
					dialog.ShowError(err, ui.window)
				}
				return
			}
			ui.statusLabel.SetText("Saved to " + job.OutputPath)
			dialog.ShowInformation("Translation complete", job.OutputPath, ui.window)
		})
	}()
}

func (ui *MainUI) onCancel() {
	if ui.cancelJob != nil {
		ui.cancelJob()
		ui.statusLabel.SetText("Cancelling...")
	}
}

func (ui *MainUI) showDependencies() {
	results := ui.pipeline.CheckDependencies()

	var lines []string
	for _, name := range []string{"ffmpeg", "openai"} {
		if err := results[name]; err != nil {
			lines = append(lines, fmt.Sprintf("✗ %s: %v", name, err))
		} else {
			lines = append(lines, fmt.Sprintf("✓ %s", name))
		}
	}
	dialog.ShowInformation("Dependencies", strings.Join(lines, "\n"), ui.window)
}
