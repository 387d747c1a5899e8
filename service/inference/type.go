package inference

// IService runs the pre-loaded classification model against one input
// tensor and returns the raw confidence vector, one entry per label.
//
// The model is stateless between invocations. Close must not run while
// an Invoke is in flight; implementations sequence the two.
type IService interface {
	Invoke(tensor []float32) ([]float32, error)
	CanSkipFrame(frames int) bool
	Close()
}
