package pipeline

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/currencylens/cnc-go/model"
	"github.com/currencylens/cnc-go/service/config"
	"github.com/currencylens/cnc-go/service/display"
	"github.com/currencylens/cnc-go/service/inference"
	"github.com/currencylens/cnc-go/service/storage"
	"github.com/currencylens/cnc-go/service/webhook"
)

func testServices(t *testing.T, inferenceSvc inference.IService) ServicesFactory {
	t.Helper()
	t.Setenv("CNC_READINGS_LOG_FILE", filepath.Join(t.TempDir(), "readings.log"))
	t.Setenv("CNC_STATS_FOLDER", t.TempDir())

	cfgSvc := config.NewEnvVars()
	return ServicesFactory{
		CfgSvc:       cfgSvc,
		InferenceSvc: inferenceSvc,
		StorageSvc:   storage.NewFake(cfgSvc),
		WebhookSvc:   webhook.NewFake(cfgSvc),
		DisplaySvc:   display.NewFake(),
		Labels:       []string{"background", "real_1", "real_2"},
	}
}

func TestNoteClassifierProducesReading(t *testing.T) {
	svcs := testServices(t, inference.NewFake([]float32{0.1, 0.9, 0.3}))

	canxCtx, canxFn := context.WithCancel(context.Background())
	defer canxFn()

	errorStream := make(chan interface{}, 10)
	statsStream := make(chan interface{}, 10)
	readingStream := make(chan ReadingData, 10)

	box := NoteClassifier(canxCtx, svcs, model.Camera{Name: "front"}, errorStream, statsStream, readingStream)

	box.Put(FrameData{
		Mat:       gocv.NewMatWithSize(224, 224, gocv.MatTypeCV8UC3),
		Timestamp: time.Now(),
	})

	select {
	case reading := <-readingStream:
		defer reading.Mat.Close()
		if reading.Result.Message != "Real 1: 90.00%" {
			t.Errorf("reading message = %q, want %q", reading.Result.Message, "Real 1: 90.00%")
		}
		if reading.Camera.Name != "front" {
			t.Errorf("reading camera = %q, want front", reading.Camera.Name)
		}
	case e := <-errorStream:
		t.Fatalf("classifier reported an error: %v", e)
	case <-time.After(3 * time.Second):
		t.Fatal("no reading produced")
	}
}

func TestNoteClassifierThrottlesBackToBackFrames(t *testing.T) {
	svcs := testServices(t, inference.NewFake([]float32{0.1, 0.9, 0.3}))
	// A very long throttle interval: only the first frame of the test
	// can ever be classified
	t.Setenv("CNC_THROTTLE_INTERVAL_MS", "60000")

	canxCtx, canxFn := context.WithCancel(context.Background())
	defer canxFn()

	errorStream := make(chan interface{}, 10)
	statsStream := make(chan interface{}, 10)
	readingStream := make(chan ReadingData, 10)

	box := NoteClassifier(canxCtx, svcs, model.Camera{Name: "front"}, errorStream, statsStream, readingStream)

	for i := 0; i < 5; i++ {
		box.Put(FrameData{
			Mat:       gocv.NewMatWithSize(224, 224, gocv.MatTypeCV8UC3),
			Timestamp: time.Now(),
		})
		time.Sleep(5 * time.Millisecond)
	}

	// Exactly one reading: the first admitted frame
	select {
	case reading := <-readingStream:
		reading.Mat.Close()
	case <-time.After(3 * time.Second):
		t.Fatal("no reading produced")
	}

	select {
	case reading := <-readingStream:
		reading.Mat.Close()
		t.Fatal("a second reading slipped past the throttle")
	case <-time.After(300 * time.Millisecond):
		// throttled as expected
	}
}

func TestNoteClassifierReportsVectorMismatch(t *testing.T) {
	// Two-value vector against three labels must surface an error
	svcs := testServices(t, inference.NewFake([]float32{0.1, 0.9}))

	canxCtx, canxFn := context.WithCancel(context.Background())
	defer canxFn()

	errorStream := make(chan interface{}, 10)
	statsStream := make(chan interface{}, 10)
	readingStream := make(chan ReadingData, 10)

	box := NoteClassifier(canxCtx, svcs, model.Camera{Name: "front"}, errorStream, statsStream, readingStream)

	box.Put(FrameData{
		Mat:       gocv.NewMatWithSize(224, 224, gocv.MatTypeCV8UC3),
		Timestamp: time.Now(),
	})

	select {
	case e := <-errorStream:
		custom, ok := e.(model.CustomError)
		if !ok {
			t.Fatalf("error stream carried %T, want model.CustomError", e)
		}
		if custom.Processor != "note_classifier" {
			t.Errorf("error processor = %q, want note_classifier", custom.Processor)
		}
	case reading := <-readingStream:
		reading.Mat.Close()
		t.Fatal("a reading was produced from a mismatched vector")
	case <-time.After(3 * time.Second):
		t.Fatal("no error reported")
	}
}
