// Package main implements the command line batch converter.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soundconv/flac2mp3/internal/batch"
	"github.com/soundconv/flac2mp3/internal/convert"
	"github.com/soundconv/flac2mp3/internal/model"
	"github.com/soundconv/flac2mp3/internal/platform"
	"github.com/soundconv/flac2mp3/internal/tagmap"
	"github.com/soundconv/flac2mp3/internal/tags"
)

func main() {
	var (
		dir        string
		bitrateArg string
		outDir     string
		mapPath    string
		engine     string
		timeout    time.Duration
		remove     bool
		logLevel   string
	)

	flag.StringVar(&dir, "dir", "", "Folder holding the FLAC files to convert (required)")
	flag.StringVar(&bitrateArg, "bitrate", model.DefaultBitrate.String(), "Target MP3 bitrate (128k, 192k, 256k, 320k)")
	flag.StringVar(&outDir, "out", "", "Output folder (default: alongside the sources)")
	flag.StringVar(&mapPath, "tag-map", "", "Path to a tag map JSON file (default: built-in map)")
	flag.StringVar(&engine, "ffmpeg", convert.DefaultBinary, "Name or path of the ffmpeg binary")
	flag.DurationVar(&timeout, "timeout", convert.DefaultTimeout, "Per-file conversion timeout")
	flag.BoolVar(&remove, "remove-originals", false, "Delete each source file after it converted")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// Configure logrus
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to parse log level")
	}
	logrus.SetLevel(level)
	logger := logrus.StandardLogger()

	if dir == "" {
		flag.Usage()
		logger.Fatal("-dir is required")
	}

	bitrate, err := model.ParseBitrate(bitrateArg)
	if err != nil {
		logger.WithError(err).Fatal("Invalid bitrate")
	}

	tagMap, err := loadTagMap(mapPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load tag map")
	}

	transcoder := convert.NewTranscoder(engine, timeout, logger)
	if err := transcoder.Available(); err != nil {
		logger.WithError(err).Fatal("ffmpeg is not available")
	}

	if outDir != "" {
		if err := platform.CreateDirectoryIfNotExists(outDir); err != nil {
			logger.WithError(err).WithField("dir", outDir).Fatal("Cannot create output folder")
		}
	}

	runner := batch.NewRunner(tags.NewTranslator(tagMap, logger), transcoder, tags.NewWriter(tagMap, logger), logger)
	runner.SetOutputDirectory(outDir)
	runner.SetRemoveOriginals(remove)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First interrupt stops the run after the in-flight file; a second one
	// kills the in-flight engine as well.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn("Interrupt received, stopping after the current file")
		runner.Cancel()
		<-sigChan
		logger.Warn("Second interrupt, aborting the current file")
		cancel()
	}()

	summary, err := runner.Run(ctx, dir, bitrate, nil)
	if err != nil {
		logger.WithError(err).Fatal("Conversion failed")
	}

	if summary.Failed > 0 || summary.Interrupted {
		os.Exit(1)
	}
}

// loadTagMap reads the map from disk when a path is given, with the
// embedded default otherwise
func loadTagMap(path string) (*tagmap.Map, error) {
	if path == "" {
		return tagmap.Default()
	}
	return tagmap.Load(path)
}
