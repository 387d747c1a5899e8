package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/currencylens/cnc-go/model"
	"github.com/currencylens/cnc-go/service/lgr"
)

// Streamer processes
var streamerProcs = map[string]Streamer{
	NoteClassifierName: NoteClassifier,
}

func RegisterStreamer(name string, streamer Streamer) {
	if _, ok := streamerProcs[name]; ok {
		lgr.Logger.Warn("streamer already registered", slog.String("name", name))
		return
	}
	streamerProcs[name] = streamer
}

// Session binds one camera to its streamers for the life of the
// context: framer → streamer mailboxes → reading stream. It reports
// session stats periodically until cancelled.
func Session(canxCtx context.Context,
	svcs ServicesFactory,
	errorStream chan interface{},
	statsStream chan interface{},
	readingStream chan ReadingData,
	camera model.Camera,
	streamNames []string) error {
	sessionID := uuid.NewString()
	lgr.Logger.Info(
		"session starting....",
		slog.String("sessionID", sessionID),
		slog.String("camera", camera.Name),
		slog.String("framerType", camera.FramerType),
		slog.String("device", camera.DeviceURL),
		slog.String("streamers", fmt.Sprintf("%v", streamNames)),
	)

	var sessionStartTime = time.Now().Unix()
	sessionStats := model.SessionStats{
		ID:     sessionID,
		Camera: camera.Name,
	}

	// Bind the camera to this session
	err := svcs.DataSvc.UpdateCameraSessionID(camera.ID, sessionID)
	if err != nil {
		return fmt.Errorf("error updating camera session id: %w", err)
	}

	// Setup the streamer mailboxes
	mailboxes := []*Mailbox{}
	for _, name := range streamNames {
		streamer, ok := streamerProcs[name]
		if !ok {
			return fmt.Errorf("streamer %s not found", name)
		}
		mailboxes = append(mailboxes, streamer(canxCtx, svcs, camera, errorStream, statsStream, readingStream))
	}

	// Start the session frame capturer
	framer(canxCtx, svcs, camera, errorStream, statsStream, mailboxes)

	// Monitor cancellations and report session stats
	for {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info(
				"session context cancelled",
			)
			return nil

		case <-time.After(time.Duration(svcs.CfgSvc.GetSessionPeriodicTimeout()) * time.Second):
			sessionStats.Uptime = time.Now().Unix() - sessionStartTime
			statsStream <- sessionStats
		}
	}
}
