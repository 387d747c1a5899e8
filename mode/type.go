package mode

import (
	"context"
	"log/slog"

	"github.com/currencylens/cnc-go/model"
	"github.com/currencylens/cnc-go/pipeline"
	"github.com/currencylens/cnc-go/service/data"
	"github.com/currencylens/cnc-go/service/lgr"
)

type Processor func(canxCtx context.Context,
	svcs pipeline.ServicesFactory,
	streamNames []string,
	displayer pipeline.Displayer) error

func procStats(datasvc data.IService, stats interface{}) {
	switch stats := stats.(type) {
	case model.FramerStats:
		procFramerStats(datasvc, stats)
	case model.ClassifierStats:
		procClassifierStats(datasvc, stats)
	case model.DisplayStats:
		procDisplayStats(datasvc, stats)
	case model.SessionStats:
		procSessionStats(datasvc, stats)
	default:
		lgr.Logger.Error(
			"unknown stats type",
			slog.Any("stats", stats),
		)
	}
}

func procFramerStats(datasvc data.IService, stats model.FramerStats) {
	err := datasvc.NewFramerStats(stats)
	if err != nil {
		lgr.Logger.Error(
			"failed to store framer stats",
			slog.Any("stats", stats),
			slog.Any("error", err),
		)
	}
}

func procClassifierStats(datasvc data.IService, stats model.ClassifierStats) {
	err := datasvc.NewClassifierStats(stats)
	if err != nil {
		lgr.Logger.Error(
			"failed to store classifier stats",
			slog.Any("stats", stats),
			slog.Any("error", err),
		)
	}
}

func procDisplayStats(datasvc data.IService, stats model.DisplayStats) {
	err := datasvc.NewDisplayStats(stats)
	if err != nil {
		lgr.Logger.Error(
			"failed to store display stats",
			slog.Any("stats", stats),
			slog.Any("error", err),
		)
	}
}

func procSessionStats(datasvc data.IService, stats model.SessionStats) {
	err := datasvc.NewSessionStats(stats)
	if err != nil {
		lgr.Logger.Error(
			"failed to store session stats",
			slog.Any("stats", stats),
			slog.Any("error", err),
		)
	}
}

func procError(datasvc data.IService, err interface{}) {
	errTemp := datasvc.NewError(err)
	if errTemp != nil {
		lgr.Logger.Error(
			"failed to store error",
			slog.Any("error", errTemp),
		)
	}
}
