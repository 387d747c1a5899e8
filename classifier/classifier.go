package classifier

import (
	"fmt"
	"image"
)

const (
	// BackgroundLabel is the sentinel class emitted when no note is in view.
	BackgroundLabel = "background"
	// ConfidenceFloor is the lowest confidence rendered as a reading.
	// Exactly 0.4 is still a reading; below it is the uncertain message.
	ConfidenceFloor = 0.4

	MsgNoCurrency = "No currency detected"
	MsgUncertain  = "Not sure, reposition the note"
)

// Invoker runs the model synchronously against one input tensor.
type Invoker interface {
	Invoke(tensor []float32) ([]float32, error)
}

// Result is the outcome of classifying one frame.
type Result struct {
	Index      int
	RawLabel   string
	Label      string
	Confidence float32
	Message    string
}

// Argmax returns the index of the maximum value in vector.
// The comparison is strictly greater-than, so ties resolve to the
// lower index.
func Argmax(vector []float32) int {
	maxIdx := 0
	for i, v := range vector {
		if v > vector[maxIdx] {
			maxIdx = i
		}
	}
	return maxIdx
}

// Decide selects the winning label from one output vector and applies
// the display policy: background beats everything, then the confidence
// floor, then the standard "<Label>: <pct>%" reading.
func Decide(labels []string, vector []float32) (Result, error) {
	if len(labels) == 0 {
		return Result{}, fmt.Errorf("empty label set")
	}
	if len(vector) != len(labels) {
		return Result{}, fmt.Errorf("output vector length %d does not match %d labels", len(vector), len(labels))
	}

	idx := Argmax(vector)
	result := Result{
		Index:      idx,
		RawLabel:   labels[idx],
		Label:      DisplayName(labels[idx]),
		Confidence: vector[idx],
	}

	switch {
	case result.RawLabel == BackgroundLabel:
		result.Message = MsgNoCurrency
	case result.Confidence < ConfidenceFloor:
		result.Message = MsgUncertain
	default:
		result.Message = fmt.Sprintf("%s: %.2f%%", result.Label, result.Confidence*100)
	}

	return result, nil
}

// Classify converts one 224x224 frame into a human-readable reading:
// tensor build, synchronous model invoke, argmax, display policy.
// It is a pure transform; callers own throttling and frame adaptation.
func Classify(frame image.Image, mdl Invoker, labels []string) (Result, error) {
	tensor, err := FrameToTensor(frame)
	if err != nil {
		return Result{}, err
	}

	vector, err := mdl.Invoke(tensor)
	if err != nil {
		return Result{}, err
	}

	return Decide(labels, vector)
}
