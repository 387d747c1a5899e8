package display

import (
	"sync"

	"github.com/currencylens/cnc-go/model"
)

// NewFake records every rendered reading for test inspection.
func NewFake() *FakeService {
	return &FakeService{}
}

type FakeService struct {
	mutex    sync.Mutex
	readings []model.Reading
}

func (svc *FakeService) Render(reading model.Reading) error {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	svc.readings = append(svc.readings, reading)
	return nil
}

// Readings returns a snapshot of everything rendered so far.
func (svc *FakeService) Readings() []model.Reading {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	out := make([]model.Reading, len(svc.readings))
	copy(out, svc.readings)
	return out
}
