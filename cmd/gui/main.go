package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/logger"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/ui"
)

func main() {
	godotenv.Load()
	logger.Init(false)
	defer logger.Sync()

	a := app.New()
	a.Settings().SetTheme(&ui.TranslatorTheme{})

	w := a.NewWindow("Video Translator")
	w.Resize(fyne.NewSize(640, 520))

	mainUI := ui.NewMainUI(w)
	w.SetContent(mainUI.Build())

	w.ShowAndRun()
}
