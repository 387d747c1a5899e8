package config

import "time"

type IService interface {
	GetModeMaxShutdownTime() int
	GetInputFolder() string
	GetCamerasInputFile() string
	GetStatsFolder() string
	GetSnapshotsFolder() string
	GetModelPath() string
	GetLabelsPath() string
	GetReadingsLogFile() string
	GetThrottleInterval() time.Duration
	GetFrameSampleModulo() int
	GetSessionPeriodicTimeout() int
	GetBenchInputFolder() string
}
