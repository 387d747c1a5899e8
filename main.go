package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/xerrors"

	"github.com/currencylens/cnc-go/classifier"
	"github.com/currencylens/cnc-go/mode"
	"github.com/currencylens/cnc-go/pipeline"
	"github.com/currencylens/cnc-go/service/config"
	"github.com/currencylens/cnc-go/service/data"
	"github.com/currencylens/cnc-go/service/display"
	"github.com/currencylens/cnc-go/service/inference"
	"github.com/currencylens/cnc-go/service/lgr"
	"github.com/currencylens/cnc-go/service/storage"
	"github.com/currencylens/cnc-go/service/webhook"
)

const (
	// WARNING: this has to be bigger than the mode processor shutdown time
	waitOnShutdown = 8 * time.Second
)

var modeProcessors = map[string]mode.Processor{
	"live":  mode.Live,
	"bench": mode.Bench,
}

func main() {
	rootCtx := context.Background()
	canxCtx, canxFn := context.WithCancel(rootCtx)

	// Hook up a signal handler to cancel the context
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		lgr.Logger.Info(
			"received kill signal",
			slog.Any("signal", sig),
		)
		canxFn()
	}()

	// Load env vars if we are in DEV mode
	if os.Getenv("RUN_TIME_ENV") == "dev" || os.Getenv("RUN_TIME_ENV") == "" {
		lgr.Logger.Info("loading env vars from .env file")
		err := godotenv.Load()
		if err != nil {
			lgr.Logger.Error("error loading .env file", slog.Any("error", xerrors.New(err.Error())))
			panic("error loading .env file")
		}
	}

	modeType := "live"
	args := os.Args[1:]
	if len(args) > 0 {
		modeType = args[0]
	}

	modeProc, ok := modeProcessors[modeType]
	if !ok {
		lgr.Logger.Error("invalid mode", slog.String("mode", modeType))
		panic("invalid mode")
	}

	// Create the services needed for the mode processor
	// Config service
	cfgSvc := config.NewEnvVars()
	// Data service
	dataSvc := data.NewFilesDB(cfgSvc)

	// The label set is loaded once and is immutable for the process
	// lifetime; its length fixes the model output vector length
	labels, err := classifier.LoadLabels(cfgSvc.GetLabelsPath())
	if err != nil {
		lgr.Logger.Error("error loading labels", slog.Any("error", xerrors.New(err.Error())))
		panic("error loading labels")
	}

	// Inference service holds the model for the process lifetime
	inferenceSvc, err := inference.NewOnnx(cfgSvc, len(labels))
	if err != nil {
		lgr.Logger.Error("error loading model", slog.Any("error", xerrors.New(err.Error())))
		panic("error loading model")
	}

	// Display service
	displaySvc := display.NewConsole()
	// Storage service
	storageSvc := storage.NewFiles(cfgSvc)
	// Webhook service
	webhookSvc := webhook.NewFake(cfgSvc)

	svcs := pipeline.ServicesFactory{
		CfgSvc:       cfgSvc,
		DataSvc:      dataSvc,
		InferenceSvc: inferenceSvc,
		DisplaySvc:   displaySvc,
		StorageSvc:   storageSvc,
		WebhookSvc:   webhookSvc,
		Labels:       labels,
	}

	// Create mode processor result
	modeProcResult := make(chan error)
	defer close(modeProcResult)

	// Decide on streamers
	streamNames := []string{
		pipeline.NoteClassifierName,
	}

	// Start the mode processor with the library simple displayer
	go func() {
		modeProcResult <- modeProc(canxCtx, svcs, streamNames, pipeline.SimpleDisplayer)
	}()

	// Wait for cancellation, mode proc exit or error
	for {
		select {
		case <-canxCtx.Done():
			lgr.Logger.Info(
				"classifier pod context cancelled",
			)
			goto resume

		case err := <-modeProcResult:
			if err != nil {
				lgr.Logger.Info(
					"classifier pod mode processor exited",
					slog.Any("error", xerrors.New(err.Error())),
				)
			}
			goto resume
		}
	}

	// Wait in a non-blocking way for `waitOnShutdown` for all the go routines to exit
	// This is needed because the go routines may need to report errors as they are exiting
resume:
	// Cancel the context if not already cancelled
	if canxCtx.Err() == nil {
		// Force cancel the context
		canxFn()
	}

	lgr.Logger.Info(
		"classifier pod is waiting for all go routines to exit",
	)

	// The only way to exit the main function is to wait for the shutdown
	// duration
	timer := time.NewTimer(waitOnShutdown)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			// Timer expired, proceed with shutdown.
			// The workers are done by now, so the model can be
			// released without racing an in-flight inference
			inferenceSvc.Close()

			lgr.Logger.Info(
				"classifier pod shutdown waiting period expired. Exiting now",
				slog.Duration("period", waitOnShutdown),
			)

			return

		case err := <-modeProcResult:
			if err != nil {
				lgr.Logger.Info(
					"classifier pod mode processor exited",
					slog.Any("error", xerrors.New(err.Error())),
				)
			}
		}
	}
}
