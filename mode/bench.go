package mode

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/currencylens/cnc-go/classifier"
	"github.com/currencylens/cnc-go/model"
	"github.com/currencylens/cnc-go/pipeline"
	"github.com/currencylens/cnc-go/service/lgr"
)

// Bench classifies every decodable image in the bench input folder
// once and renders each reading. No camera, no throttle; this is the
// offline check for a model/label pair.
func Bench(canxCtx context.Context,
	svcs pipeline.ServicesFactory,
	_ []string,
	_ pipeline.Displayer) error {
	folder := svcs.CfgSvc.GetBenchInputFolder()

	entries, err := os.ReadDir(folder)
	if err != nil {
		return fmt.Errorf("error reading bench folder %s: %w", folder, err)
	}

	classified := 0
	skipped := 0

	for _, entry := range entries {
		if canxCtx.Err() != nil {
			lgr.Logger.Info("bench mode context cancelled")
			break
		}

		if entry.IsDir() {
			continue
		}

		path := filepath.Join(folder, entry.Name())
		img, err := decodeImage(path)
		if err != nil {
			skipped++
			lgr.Logger.Warn(
				"skipping undecodable file",
				slog.String("file", entry.Name()),
				slog.Any("error", err),
			)
			continue
		}

		result, err := classifier.Classify(classifier.AdaptFrame(img), svcs.InferenceSvc, svcs.Labels)
		if err != nil {
			return fmt.Errorf("error classifying %s: %w", entry.Name(), err)
		}

		reading := model.Reading{
			Camera:     entry.Name(),
			Label:      result.Label,
			Confidence: result.Confidence,
			Message:    result.Message,
			Timestamp:  time.Now(),
		}

		if err := svcs.DisplaySvc.Render(reading); err != nil {
			lgr.Logger.Error(
				"error rendering bench reading",
				slog.Any("error", err),
			)
		}

		if err := svcs.DataSvc.NewReading(reading); err != nil {
			lgr.Logger.Error(
				"error persisting bench reading",
				slog.Any("error", err),
			)
		}

		classified++
	}

	lgr.Logger.Info(
		"bench mode done",
		slog.Int("classified", classified),
		slog.Int("skipped", skipped),
	)

	return nil
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	return img, err
}
