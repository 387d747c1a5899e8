package pipeline

import (
	"context"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/currencylens/cnc-go/classifier"
	"github.com/currencylens/cnc-go/model"
	"github.com/currencylens/cnc-go/service/config"
	"github.com/currencylens/cnc-go/service/data"
	"github.com/currencylens/cnc-go/service/display"
	"github.com/currencylens/cnc-go/service/storage"
	"github.com/currencylens/cnc-go/service/webhook"
)

func TestSimpleDisplayerRendersInOrder(t *testing.T) {
	t.Setenv("CNC_STATS_FOLDER", t.TempDir())
	t.Setenv("CNC_SNAPSHOTS_FOLDER", t.TempDir())

	cfgSvc := config.NewEnvVars()
	displaySvc := display.NewFake()
	svcs := ServicesFactory{
		CfgSvc:     cfgSvc,
		DataSvc:    data.NewFilesDB(cfgSvc),
		DisplaySvc: displaySvc,
		StorageSvc: storage.NewFake(cfgSvc),
		WebhookSvc: webhook.NewFake(cfgSvc),
	}

	canxCtx, canxFn := context.WithCancel(context.Background())
	defer canxFn()

	errorStream := make(chan interface{}, 10)
	statsStream := make(chan interface{}, 10)

	in := SimpleDisplayer(canxCtx, svcs, errorStream, statsStream)

	camera := model.Camera{Name: "front"}
	readings := []ReadingData{
		{
			Mat:    gocv.NewMatWithSize(224, 224, gocv.MatTypeCV8UC3),
			Camera: camera,
			Result: classifier.Result{
				RawLabel:   "background",
				Label:      "Background",
				Confidence: 0.8,
				Message:    classifier.MsgNoCurrency,
			},
			Timestamp: time.Now(),
		},
		{
			Mat:    gocv.NewMatWithSize(224, 224, gocv.MatTypeCV8UC3),
			Camera: camera,
			Result: classifier.Result{
				Index:      1,
				RawLabel:   "real_1",
				Label:      "Real 1",
				Confidence: 0.9,
				Message:    "Real 1: 90.00%",
			},
			Timestamp: time.Now(),
		},
	}

	for _, reading := range readings {
		in <- reading
	}

	deadline := time.After(3 * time.Second)
	for len(displaySvc.Readings()) < 2 {
		select {
		case <-deadline:
			t.Fatalf("displayer rendered %d readings, want 2", len(displaySvc.Readings()))
		case <-time.After(10 * time.Millisecond):
		}
	}

	rendered := displaySvc.Readings()
	if rendered[0].Message != classifier.MsgNoCurrency {
		t.Errorf("first rendered message = %q, want %q", rendered[0].Message, classifier.MsgNoCurrency)
	}
	if rendered[1].Message != "Real 1: 90.00%" {
		t.Errorf("second rendered message = %q, want %q", rendered[1].Message, "Real 1: 90.00%")
	}
}
