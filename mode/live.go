package mode

import (
	"context"
	"log/slog"
	"time"

	"github.com/currencylens/cnc-go/pipeline"
	"github.com/currencylens/cnc-go/service/lgr"
)

// Live runs the continuous pipeline for the configured camera: framer
// into the classifier mailbox, readings out to the displayer. It owns
// the error and stats streams and keeps draining them for the mode
// shutdown grace period after cancellation.
func Live(canxCtx context.Context,
	svcs pipeline.ServicesFactory,
	streamNames []string,
	displayer pipeline.Displayer) error {
	// Create an error stream
	errorStream := make(chan interface{}, 10)

	// Create a stats stream
	statsStream := make(chan interface{}, 10)

	// Create the reading stream via the displayer
	readingStream := displayer(canxCtx, svcs, errorStream, statsStream)

	// This is a single-device system: one active camera at a time
	camera, err := svcs.DataSvc.RetrieveActiveCamera()
	if err != nil {
		return err
	}

	sessionResult := make(chan error, 1)
	go func() {
		sessionResult <- pipeline.Session(canxCtx, svcs, errorStream, statsStream, readingStream, camera, streamNames)
	}()

	// Wait for cancellation, session exit, stats or errors
	for {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info(
				"live mode context cancelled",
			)
			goto resume

		case err := <-sessionResult:
			if err != nil {
				lgr.Logger.Error(
					"live mode session exited",
					slog.Any("error", err),
				)
				return err
			}
			goto resume

		case e := <-errorStream:
			lgr.Logger.Error(
				"live mode received a pipeline error",
				slog.Any("error", e),
			)
			procError(svcs.DataSvc, e)

		case s := <-statsStream:
			procStats(svcs.DataSvc, s)
		}
	}

	// Keep draining so exiting goroutines can still report stats and
	// errors during the shutdown grace period
resume:
	timer := time.NewTimer(time.Duration(svcs.CfgSvc.GetModeMaxShutdownTime()) * time.Second)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			lgr.Logger.Info(
				"live mode shutdown waiting period expired",
			)
			return nil

		case e := <-errorStream:
			procError(svcs.DataSvc, e)

		case s := <-statsStream:
			procStats(svcs.DataSvc, s)
		}
	}
}
