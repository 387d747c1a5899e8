package display

import "github.com/currencylens/cnc-go/model"

// IService renders classification messages on the display surface.
// Render is called in reading completion order by a single displayer.
type IService interface {
	Render(reading model.Reading) error
}
