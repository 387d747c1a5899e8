package pipeline

import (
	"context"
	"time"

	"gocv.io/x/gocv"

	"github.com/currencylens/cnc-go/model"
	"github.com/currencylens/cnc-go/service/lgr"
)

func framer(canxCtx context.Context, svcs ServicesFactory, camera model.Camera, errorStream chan interface{}, statsStream chan interface{}, mailboxes []*Mailbox) {
	if camera.FramerType == "synthetic" {
		go syntheticFramer(canxCtx, svcs, camera, errorStream, statsStream, mailboxes)
		return
	}

	go deviceFramer(canxCtx, svcs, camera, errorStream, statsStream, mailboxes)
}

// deviceFramer captures frames from a local device or an RTSP URL and
// publishes them latest-frame-wins into the streamer mailboxes.
func deviceFramer(canxCtx context.Context, svcs ServicesFactory, camera model.Camera, errorStream chan interface{}, statsStream chan interface{}, mailboxes []*Mailbox) {
	webcam, err := gocv.OpenVideoCapture(camera.DeviceURL)
	if err != nil {
		errorStream <- model.GenError("device_framer",
			err,
			map[string]interface{}{},
			"error opening capture device %s", camera.DeviceURL)
		return
	}
	defer webcam.Close()

	var startTime = time.Now().Unix()
	var frames = 0
	var skippedFrames = 0
	var errors = 0

	defer func() {
		uptime := time.Now().Unix() - startTime
		if uptime == 0 {
			uptime = 1
		}
		statsStream <- model.FramerStats{
			Name:          "deviceFramer",
			Camera:        camera.Name,
			Frames:        frames,
			SkippedFrames: skippedFrames,
			Errors:        errors,
			Uptime:        uptime,
			FPS:           int(float64(frames) / float64(uptime)),
		}
	}()

	// Capture frames, publish them to the streamer mailboxes and
	// monitor cancellations
	for {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info(
				"deviceFramer context cancelled",
			)
			return

		default:
			img := gocv.NewMat()
			if ok := webcam.Read(&img); !ok || img.Empty() {
				errors++
				img.Close() // Crucial to close the image to avoid memory leaks
				continue
			}

			frames++
			// Determine if we should skip the frame
			if svcs.InferenceSvc.CanSkipFrame(frames) {
				skippedFrames++
				img.Close() // Crucial to close the image to avoid memory leaks
				continue
			}

			for _, box := range mailboxes {
				// The mailbox takes ownership of the clone; a stale
				// unconsumed frame is overwritten, never queued
				box.Put(FrameData{Mat: img.Clone(), Timestamp: time.Now()})
			}

			img.Close() // Crucial to close the image to avoid memory leaks
		}
	}
}

// syntheticFramer generates gray frames at a steady rate. Used when no
// capture device is available (dev runs and soak tests).
func syntheticFramer(canxCtx context.Context, svcs ServicesFactory, camera model.Camera, _ chan interface{}, statsStream chan interface{}, mailboxes []*Mailbox) {
	var startTime = time.Now().Unix()
	var frames = 0
	var skippedFrames = 0

	defer func() {
		uptime := time.Now().Unix() - startTime
		if uptime == 0 {
			uptime = 1
		}
		statsStream <- model.FramerStats{
			Name:          "syntheticFramer",
			Camera:        camera.Name,
			Frames:        frames,
			SkippedFrames: skippedFrames,
			Uptime:        uptime,
			FPS:           int(float64(frames) / float64(uptime)),
		}
	}()

	ticker := time.NewTicker(33 * time.Millisecond) // ~30fps source
	defer ticker.Stop()

	for {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info(
				"syntheticFramer context cancelled",
			)
			return

		case <-ticker.C:
			frames++
			// Determine if we should skip the frame
			if svcs.InferenceSvc.CanSkipFrame(frames) {
				skippedFrames++
				continue
			}

			img := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
			for _, box := range mailboxes {
				box.Put(FrameData{Mat: img.Clone(), Timestamp: time.Now()})
			}
			img.Close() // Crucial to close the image to avoid memory leaks
		}
	}
}
