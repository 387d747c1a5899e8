package storage

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"github.com/currencylens/cnc-go/model"
	"github.com/currencylens/cnc-go/service/config"
)

type filesService struct {
	CfgSvc config.IService
}

// NewFiles stores snapshots as JPEG files under the configured
// snapshots folder.
func NewFiles(cfgsvc config.IService) IService {
	return &filesService{
		CfgSvc: cfgsvc,
	}
}

func (svc *filesService) SaveSnapshot(mat gocv.Mat, reading model.Reading) (string, error) {
	folder := svc.CfgSvc.GetSnapshotsFolder()
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", err
	}

	path := fmt.Sprintf("%s/%s_%s_%d.jpg", folder, reading.Camera, reading.Label, reading.Timestamp.UnixNano())
	if ok := gocv.IMWrite(path, mat); !ok {
		return "", fmt.Errorf("error writing snapshot %s", path)
	}

	return path, nil
}
