package inference

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/currencylens/cnc-go/classifier"
	"github.com/currencylens/cnc-go/service/config"
)

type onnxService struct {
	cfgSvc       config.IService
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]

	// Serializes Invoke against Close so the session is never
	// destroyed while an inference is in flight
	mutex  sync.Mutex
	closed bool
}

// NewOnnx loads the model artifact once and binds fixed input/output
// tensors: input [1, 224, 224, 3], output [1, labelCount]. The session
// is held for the process lifetime and released by Close.
func NewOnnx(cfgSvc config.IService, labelCount int) (IService, error) {
	if labelCount <= 0 {
		return nil, fmt.Errorf("label count must be positive, got %d", labelCount)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	inputShape := ort.NewShape(1, classifier.FrameSize, classifier.FrameSize, classifier.Channels)
	outputShape := ort.NewShape(1, int64(labelCount))

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(cfgSvc.GetModelPath(),
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &onnxService{
		cfgSvc:       cfgSvc,
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

func (svc *onnxService) Invoke(tensor []float32) ([]float32, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	if svc.closed {
		return nil, fmt.Errorf("inference service is closed")
	}

	input := svc.inputTensor.GetData()
	if len(tensor) != len(input) {
		return nil, fmt.Errorf("expected tensor of %d values, got %d", len(input), len(tensor))
	}
	copy(input, tensor)

	if err := svc.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	output := svc.outputTensor.GetData()
	vector := make([]float32, len(output))
	copy(vector, output)
	return vector, nil
}

func (svc *onnxService) CanSkipFrame(frames int) bool {
	modulo := svc.cfgSvc.GetFrameSampleModulo()
	if modulo <= 1 {
		return false
	}
	return frames%modulo != 0
}

func (svc *onnxService) Close() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	if svc.closed {
		return
	}
	svc.closed = true

	if svc.inputTensor != nil {
		svc.inputTensor.Destroy()
	}
	if svc.outputTensor != nil {
		svc.outputTensor.Destroy()
	}
	if svc.session != nil {
		svc.session.Destroy()
	}
	ort.DestroyEnvironment()
}
