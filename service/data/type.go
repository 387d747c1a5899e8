package data

import "github.com/currencylens/cnc-go/model"

type IService interface {
	RetrieveCameras() ([]model.Camera, error)
	RetrieveCameraByID(id string) (model.Camera, error)
	RetrieveActiveCamera() (model.Camera, error)
	UpdateCameraExcluded(id string, excluded bool) error
	UpdateCameraSessionID(cameraID, sessionID string) error

	NewError(err interface{}) error
	NewReading(reading model.Reading) error
	NewFramerStats(stats model.FramerStats) error
	NewClassifierStats(stats model.ClassifierStats) error
	NewDisplayStats(stats model.DisplayStats) error
	NewSessionStats(stats model.SessionStats) error
}
