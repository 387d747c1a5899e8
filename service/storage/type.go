package storage

import (
	"gocv.io/x/gocv"

	"github.com/currencylens/cnc-go/model"
)

// IService persists snapshot images of classified frames and returns a
// location for each stored snapshot.
type IService interface {
	SaveSnapshot(mat gocv.Mat, reading model.Reading) (string, error)
}
