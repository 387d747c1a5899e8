package model

import (
	"fmt"
	"runtime/debug"
	"time"
)

type CustomError struct {
	Processor  string                 `json:"processor"`
	Inner      error                  `json:"innerError"`
	Message    string                 `json:"message"`
	StackTrace string                 `json:"stackTrace"`
	Misc       map[string]interface{} `json:"misc"`
}

func GenError(proc string, err error, misc map[string]interface{}, messagef string, args ...interface{}) CustomError {
	return CustomError{
		Processor:  proc,
		Inner:      err,
		Message:    fmt.Sprintf(messagef, args...),
		StackTrace: string(debug.Stack()),
		Misc:       misc,
	}
}

type Camera struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DeviceURL   string `json:"deviceUrl"` // device index ("0") or an RTSP URL
	FramerType  string `json:"framerType"`
	Excluded    bool   `json:"excluded"`
	SessionID   string `json:"sessionId"` // The session that is currently bound to this camera
	StartupTime int64  `json:"startupTime"`
	Uptime      int64  `json:"uptime"`
}

// Reading is one classification outcome produced for one frame.
type Reading struct {
	Camera     string    `json:"camera"`
	Label      string    `json:"label"`
	Confidence float32   `json:"confidence"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

type FramerStats struct {
	Name          string `json:"name"`
	Camera        string `json:"camera"`
	FPS           int    `json:"fps"`
	Frames        int    `json:"frames"`
	SkippedFrames int    `json:"skippedFrames"`
	Errors        int    `json:"errors"`
	Uptime        int64  `json:"uptime"`
	Timestamp     int64  `json:"timestamp"`
}

type ClassifierStats struct {
	Name            string  `json:"name"`
	Camera          string  `json:"camera"`
	Frames          int     `json:"frames"`
	ThrottledFrames int     `json:"throttledFrames"`
	Errors          int     `json:"errors"`
	Uptime          int64   `json:"uptime"`
	FPS             int     `json:"fps"`
	AvgProcTime     float64 `json:"avgProcTime"`
	Timestamp       int64   `json:"timestamp"`
}

type DisplayStats struct {
	Name      string `json:"name"`
	Readings  int    `json:"readings"`
	Snapshots int    `json:"snapshots"`
	Errors    int    `json:"errors"`
	Uptime    int64  `json:"uptime"`
	Timestamp int64  `json:"timestamp"`
}

type SessionStats struct {
	ID        string `json:"id"`     // Session ID
	Camera    string `json:"camera"` // Camera name
	Uptime    int64  `json:"uptime"`
	Timestamp int64  `json:"timestamp"`
}
