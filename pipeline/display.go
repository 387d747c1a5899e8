package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/currencylens/cnc-go/classifier"
	"github.com/currencylens/cnc-go/model"
	"github.com/currencylens/cnc-go/service/lgr"
)

// SimpleDisplayer renders readings in arrival order (which is
// completion order, since one classification runs at a time), persists
// confident readings with a snapshot, and notifies the webhook.
func SimpleDisplayer(canx context.Context, svcs ServicesFactory, errorStream chan interface{}, statsStream chan interface{}) chan ReadingData {
	in := make(chan ReadingData, 100)

	go func() {
		defer close(in)

		readings := 0
		snapshots := 0
		errors := 0
		beginTime := time.Now().Unix()

		defer func() {
			uptime := time.Now().Unix() - beginTime
			if uptime == 0 {
				uptime = 1
			}
			statsStream <- model.DisplayStats{
				Name:      "simpleDisplayer",
				Readings:  readings,
				Snapshots: snapshots,
				Errors:    errors,
				Uptime:    uptime,
			}
		}()

		for {
			select {
			case <-canx.Done():
				lgr.Logger.Info(
					"displayer context cancelled",
				)
				return

			case rd := <-in:
				readings++

				reading := model.Reading{
					Camera:     rd.Camera.Name,
					Label:      rd.Result.Label,
					Confidence: rd.Result.Confidence,
					Message:    rd.Result.Message,
					Timestamp:  rd.Timestamp,
				}

				if err := svcs.DisplaySvc.Render(reading); err != nil {
					errors++
					errorStream <- model.GenError("displayer",
						err,
						map[string]interface{}{},
						"error rendering reading")
				}

				// Only confident readings leave a trail: a snapshot,
				// a persisted record and a webhook notification
				if rd.Result.RawLabel != classifier.BackgroundLabel &&
					rd.Result.Confidence >= classifier.ConfidenceFloor {
					url, err := svcs.StorageSvc.SaveSnapshot(rd.Mat, reading)
					if err != nil {
						errors++
						errorStream <- model.GenError("displayer",
							err,
							map[string]interface{}{},
							"error saving snapshot")
					} else if url != "" {
						snapshots++
					}

					if err := svcs.DataSvc.NewReading(reading); err != nil {
						errors++
						lgr.Logger.Error(
							"error persisting reading",
							slog.Any("error", err),
						)
					}

					payload := map[string]interface{}{
						"source":      reading.Camera,
						"label":       reading.Label,
						"confidence":  reading.Confidence,
						"message":     reading.Message,
						"snapshotUrl": url,
						"timestamp":   reading.Timestamp.Format(time.RFC3339),
					}
					if err := svcs.WebhookSvc.Post(payload); err != nil {
						errors++
						lgr.Logger.Error(
							"error posting webhook",
							slog.Any("error", err),
						)
					}
				}

				rd.Mat.Close()
			}
		}
	}()

	return in
}
