package pipeline

import (
	"context"
	"time"

	"gocv.io/x/gocv"

	"github.com/currencylens/cnc-go/classifier"
	"github.com/currencylens/cnc-go/model"
	"github.com/currencylens/cnc-go/service/config"
	"github.com/currencylens/cnc-go/service/data"
	"github.com/currencylens/cnc-go/service/display"
	"github.com/currencylens/cnc-go/service/inference"
	"github.com/currencylens/cnc-go/service/storage"
	"github.com/currencylens/cnc-go/service/webhook"
)

type FrameData struct {
	Mat       gocv.Mat
	Timestamp time.Time
}

// ReadingData carries one classification outcome plus a snapshot of
// the classified frame towards the displayer.
type ReadingData struct {
	Mat       gocv.Mat
	Camera    model.Camera
	Result    classifier.Result
	Timestamp time.Time
}

// Signature of streamer function. A streamer owns its worker and
// returns the mailbox the framer publishes frames into.
type Streamer func(canx context.Context, svcs ServicesFactory, camera model.Camera, errorStream chan interface{}, statsStream chan interface{}, readingStream chan ReadingData) *Mailbox

// Signature of displayer function
type Displayer func(canx context.Context, svcs ServicesFactory, errorStream chan interface{}, statsStream chan interface{}) chan ReadingData

type ServicesFactory struct {
	CfgSvc       config.IService
	DataSvc      data.IService
	InferenceSvc inference.IService
	DisplaySvc   display.IService
	StorageSvc   storage.IService
	WebhookSvc   webhook.IService

	// Labels is the ordered label set loaded once at startup;
	// immutable for the process lifetime.
	Labels []string
}
