package display

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/currencylens/cnc-go/classifier"
	"github.com/currencylens/cnc-go/model"
)

type consoleService struct {
}

// NewConsole renders readings on stdout: green for confident readings,
// yellow for the uncertain guidance, dim white when no note is in view.
func NewConsole() IService {
	return &consoleService{}
}

func (svc *consoleService) Render(reading model.Reading) error {
	stamp := reading.Timestamp.Format("15:04:05.000")

	switch reading.Message {
	case classifier.MsgNoCurrency:
		fmt.Printf("%s  %s\n", stamp, color.HiBlackString(reading.Message))
	case classifier.MsgUncertain:
		fmt.Printf("%s  %s\n", stamp, color.YellowString(reading.Message))
	default:
		fmt.Printf("%s  %s\n", stamp, color.New(color.FgGreen, color.Bold).Sprint(reading.Message))
	}

	return nil
}
