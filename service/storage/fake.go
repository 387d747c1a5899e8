package storage

import (
	"gocv.io/x/gocv"

	"github.com/currencylens/cnc-go/model"
	"github.com/currencylens/cnc-go/service/config"
)

type fakeService struct {
	CfgSvc config.IService
}

func NewFake(cfgsvc config.IService) IService {
	return &fakeService{
		CfgSvc: cfgsvc,
	}
}

func (svc *fakeService) SaveSnapshot(_ gocv.Mat, _ model.Reading) (string, error) {
	return "", nil
}
