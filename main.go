package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/soundconv/flac2mp3/internal/batch"
	"github.com/soundconv/flac2mp3/internal/config"
	"github.com/soundconv/flac2mp3/internal/convert"
	"github.com/soundconv/flac2mp3/internal/tagmap"
	"github.com/soundconv/flac2mp3/internal/tags"
	"github.com/soundconv/flac2mp3/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.soundconv.flac2mp3"
	AppName = "Sound Converter"

	WindowWidth  = 640
	WindowHeight = 540
)

func main() {
	// Configure logrus
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger := logrus.StandardLogger()

	logger.WithField("version", version).Info("Sound Converter starting")

	// The embedded tag map must parse, otherwise nothing can be converted
	tagMap, err := tagmap.Default()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load tag map")
	}

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)

	translator := tags.NewTranslator(tagMap, logger)
	transcoder := convert.NewTranscoder(settings.GetEnginePath(), settings.GetConversionTimeout(), logger)
	writer := tags.NewWriter(tagMap, logger)
	runner := batch.NewRunner(translator, transcoder, writer, logger)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, runner, transcoder)

	// Show and run
	myWindow.ShowAndRun()
}
