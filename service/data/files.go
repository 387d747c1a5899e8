package data

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/currencylens/cnc-go/model"
	"github.com/currencylens/cnc-go/service/config"
)

type filesDBService struct {
	CfgSvc config.IService
}

func NewFilesDB(cfgsvc config.IService) IService {
	return &filesDBService{
		CfgSvc: cfgsvc,
	}
}

func (svc *filesDBService) RetrieveCameras() ([]model.Camera, error) {
	cameras := []model.Camera{}

	input := svc.CfgSvc.GetCamerasInputFile()
	data, err := os.ReadFile(input)
	if err != nil {
		return cameras, err
	}

	err = json.Unmarshal(data, &cameras)
	if err != nil {
		return cameras, err
	}

	return cameras, nil
}

func (svc *filesDBService) RetrieveCameraByID(id string) (model.Camera, error) {
	cameras, err := svc.RetrieveCameras()
	if err != nil {
		return model.Camera{}, err
	}

	for _, camera := range cameras {
		if camera.ID == id {
			return camera, nil
		}
	}

	return model.Camera{}, fmt.Errorf("camera %s not found", id)
}

// RetrieveActiveCamera returns the first non-excluded camera. This is
// a single-device system; only one camera is live at a time.
func (svc *filesDBService) RetrieveActiveCamera() (model.Camera, error) {
	cameras, err := svc.RetrieveCameras()
	if err != nil {
		return model.Camera{}, err
	}

	for _, camera := range cameras {
		if !camera.Excluded {
			return camera, nil
		}
	}

	return model.Camera{}, fmt.Errorf("no active camera configured")
}

func (svc *filesDBService) UpdateCameraExcluded(id string, excluded bool) error {
	cameras, err := svc.RetrieveCameras()
	if err != nil {
		return err
	}

	for i, camera := range cameras {
		if camera.ID == id {
			cameras[i].Excluded = excluded
			break
		}
	}

	return svc.writeCameras(cameras)
}

func (svc *filesDBService) UpdateCameraSessionID(cameraID, sessionID string) error {
	cameras, err := svc.RetrieveCameras()
	if err != nil {
		return err
	}

	for i, camera := range cameras {
		if camera.ID == cameraID {
			cameras[i].SessionID = sessionID
			cameras[i].StartupTime = time.Now().Unix()
			cameras[i].Uptime = 0
			break
		}
	}

	return svc.writeCameras(cameras)
}

func (svc *filesDBService) writeCameras(cameras []model.Camera) error {
	data, err := json.MarshalIndent(cameras, "", "  ")
	if err != nil {
		return err
	}

	output := svc.CfgSvc.GetCamerasInputFile()
	// Write the JSON data to the file (with truncation)
	return os.WriteFile(output, data, 0644)
}

func (svc *filesDBService) NewError(err interface{}) error {
	// Determine if the error is custom
	var customErr model.CustomError
	if custom, ok := err.(model.CustomError); ok {
		customErr = custom
	} else if inner, ok := err.(error); ok {
		customErr.Processor = "N/A"
		customErr.Inner = inner
		customErr.Message = inner.Error()
		customErr.StackTrace = "N/A"
	} else {
		customErr.Processor = "N/A"
		customErr.Inner = fmt.Errorf("%v", err)
		customErr.Message = customErr.Inner.Error()
		customErr.StackTrace = "N/A"
	}

	// Create an error object to persist
	errorData := struct {
		Timestamp  int64                  `json:"timestamp"`
		Processor  string                 `json:"processor"`
		Inner      string                 `json:"innerError"`
		Message    string                 `json:"message"`
		StackTrace string                 `json:"stackTrace"`
		Misc       map[string]interface{} `json:"misc"`
	}{
		Timestamp:  time.Now().Unix(),
		Processor:  customErr.Processor,
		Inner:      customErr.Inner.Error(),
		Message:    customErr.Message,
		StackTrace: customErr.StackTrace,
		Misc:       customErr.Misc,
	}
	return newEntity(errorData, "errors", svc.CfgSvc)
}

func (svc *filesDBService) NewReading(reading model.Reading) error {
	return newEntity(reading, "readings", svc.CfgSvc)
}

func (svc *filesDBService) NewFramerStats(stats model.FramerStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "framer-stats", svc.CfgSvc)
}

func (svc *filesDBService) NewClassifierStats(stats model.ClassifierStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "classifier-stats", svc.CfgSvc)
}

func (svc *filesDBService) NewDisplayStats(stats model.DisplayStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "display-stats", svc.CfgSvc)
}

func (svc *filesDBService) NewSessionStats(stats model.SessionStats) error {
	stats.Timestamp = time.Now().Unix()
	return newEntity(stats, "session-stats", svc.CfgSvc)
}

func newEntity[T any](entity T, filename string, cfgsvc config.IService) error {
	entities, err := retrieveEntities[T](filename, cfgsvc)
	if err != nil {
		return err
	}

	entities = append(entities, entity)

	data, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgsvc.GetStatsFolder(), 0755); err != nil {
		return err
	}

	// Write the JSON data to the file (with truncation)
	output := fmt.Sprintf("%s/%s.json", cfgsvc.GetStatsFolder(), filename)
	return os.WriteFile(output, data, 0644)
}

func retrieveEntities[T any](filename string, cfgsvc config.IService) ([]T, error) {
	var entities []T

	data, err := os.ReadFile(fmt.Sprintf("%s/%s.json", cfgsvc.GetStatsFolder(), filename))
	if err != nil {
		// File not found yet, start with an empty slice
		return entities, nil
	}

	entities = []T{}
	err = json.Unmarshal(data, &entities)
	if err != nil {
		return entities, err
	}

	return entities, nil
}
