package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/currencylens/cnc-go/classifier"
)

type envVarsService struct {
}

// NewEnvVars returns a config service backed by environment variables
// with sensible defaults for every key.
func NewEnvVars() IService {
	return &envVarsService{}
}

func (svc *envVarsService) GetModeMaxShutdownTime() int {
	return intEnv("CNC_MODE_MAX_SHUTDOWN_TIME", 5)
}

func (svc *envVarsService) GetInputFolder() string {
	return stringEnv("CNC_INPUT_FOLDER", "./settings")
}

func (svc *envVarsService) GetCamerasInputFile() string {
	return stringEnv("CNC_CAMERAS_INPUT_FILE", fmt.Sprintf("%s/cameras.json", svc.GetInputFolder()))
}

func (svc *envVarsService) GetStatsFolder() string {
	return stringEnv("CNC_STATS_FOLDER", "./stats")
}

func (svc *envVarsService) GetSnapshotsFolder() string {
	return stringEnv("CNC_SNAPSHOTS_FOLDER", "./snapshots")
}

func (svc *envVarsService) GetModelPath() string {
	return stringEnv("CNC_MODEL_PATH", "./models/currency.onnx")
}

func (svc *envVarsService) GetLabelsPath() string {
	return stringEnv("CNC_LABELS_PATH", "./models/labels.txt")
}

func (svc *envVarsService) GetReadingsLogFile() string {
	return stringEnv("CNC_READINGS_LOG_FILE", "readings.log")
}

func (svc *envVarsService) GetThrottleInterval() time.Duration {
	millis := intEnv("CNC_THROTTLE_INTERVAL_MS", 0)
	if millis <= 0 {
		return classifier.MinInterval
	}
	return time.Duration(millis) * time.Millisecond
}

func (svc *envVarsService) GetFrameSampleModulo() int {
	// Classify every Nth captured frame; 1 means every frame
	return intEnv("CNC_FRAME_SAMPLE_MODULO", 1)
}

func (svc *envVarsService) GetSessionPeriodicTimeout() int {
	return intEnv("CNC_SESSION_PERIODIC_TIMEOUT", 30)
}

func (svc *envVarsService) GetBenchInputFolder() string {
	return stringEnv("CNC_BENCH_INPUT_FOLDER", "./bench")
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
