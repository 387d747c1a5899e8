package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/natefinch/lumberjack"
	"gocv.io/x/gocv"

	"github.com/currencylens/cnc-go/classifier"
	"github.com/currencylens/cnc-go/model"
	"github.com/currencylens/cnc-go/service/lgr"
)

const NoteClassifierName = "noteClassifier"

// NoteClassifier is the streamer that turns frames into readings. One
// dedicated worker classifies sequentially: throttle gate, frame to
// tensor, synchronous model invoke, display policy. Readings flow to
// the displayer in completion order.
func NoteClassifier(canx context.Context, svcs ServicesFactory, camera model.Camera, errorStream chan interface{}, statsStream chan interface{}, readingStream chan ReadingData) *Mailbox {
	box := NewMailbox()

	go func() {
		defer box.Close()

		lgr.Logger.Info("note classifier starting...",
			slog.String("camera", camera.Name),
			slog.Int("labels", len(svcs.Labels)),
			slog.String("openCV", gocv.Version()),
		)

		readingsLogger := &lumberjack.Logger{
			Filename:   svcs.CfgSvc.GetReadingsLogFile(),
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     7,    // days
			Compress:   true, // compress old logs
		}

		throttle := classifier.NewThrottle(svcs.CfgSvc.GetThrottleInterval())

		frames := 0
		throttledFrames := 0
		errors := 0
		beginTime := time.Now().Unix()
		var totalInferenceTime time.Duration

		defer func() {
			uptime := time.Now().Unix() - beginTime
			if uptime == 0 {
				uptime = 1
			}
			fps := int(float64(frames) / float64(uptime))
			if fps == 0 {
				fps = 1
			}
			var avgProcTime float64
			if frames > 0 {
				avgProcTime = totalInferenceTime.Seconds() / float64(frames)
			}
			statsStream <- model.ClassifierStats{
				Name:            NoteClassifierName,
				Camera:          camera.Name,
				Frames:          frames,
				ThrottledFrames: throttledFrames,
				Errors:          errors,
				Uptime:          uptime,
				FPS:             fps,
				AvgProcTime:     avgProcTime,
			}
		}()

		proc := func(frame FrameData) {
			defer frame.Mat.Close()

			if frame.Mat.Empty() {
				errors++
				return
			}

			img, err := frame.Mat.ToImage()
			if err != nil {
				errors++
				errorStream <- model.GenError("note_classifier",
					err,
					map[string]interface{}{},
					"error converting frame to image")
				return
			}

			result, err := classifier.Classify(classifier.AdaptFrame(img), svcs.InferenceSvc, svcs.Labels)
			if err != nil {
				errors++
				errorStream <- model.GenError("note_classifier",
					err,
					map[string]interface{}{},
					"error classifying frame")
				return
			}

			logReading(readingsLogger, camera.Name, result)

			reading := ReadingData{
				Mat:       frame.Mat.Clone(),
				Camera:    camera,
				Result:    result,
				Timestamp: time.Now(),
			}

			// WARNING: We need an extra check to make sure we don't send on a closed channel
			select {
			case <-canx.Done():
				lgr.Logger.Info("note classifier context cancelled while sending!!")
				reading.Mat.Close()
				return
			case readingStream <- reading:
				// Successfully sent to the displayer
			}
		}

		// The single classification worker. The mailbox keeps only the
		// latest frame, so a slow inference never builds a queue.
		for {
			frame, ok := box.Take()
			if !ok {
				lgr.Logger.Info("note classifier mailbox closed")
				return
			}

			select {
			case <-canx.Done():
				lgr.Logger.Info("note classifier worker context cancelled")
				frame.Mat.Close()
				return
			default:
				if !throttle.Allow() {
					throttledFrames++
					frame.Mat.Close()
					continue
				}

				startInference := time.Now()
				proc(frame)
				frames++
				totalInferenceTime += time.Since(startInference)
			}
		}
	}()

	// Close the mailbox when the context goes away so a blocked Take
	// wakes up
	go func() {
		<-canx.Done()
		box.Close()
	}()

	return box
}

func logReading(logger *lumberjack.Logger, camera string, result classifier.Result) {
	entry := map[string]interface{}{
		"time":       time.Now().Format(time.RFC3339),
		"camera":     camera,
		"label":      result.RawLabel,
		"confidence": result.Confidence,
		"message":    result.Message,
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Println("Error marshaling reading:", err)
		return
	}

	if _, err := logger.Write(append(jsonData, '\n')); err != nil {
		fmt.Println("Error writing to readings log file:", err)
	}
}
