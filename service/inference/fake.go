package inference

import "fmt"

type fakeService struct {
	vectors [][]float32
	calls   int
}

// NewFake returns a scripted inference service that replays the given
// confidence vectors in order, repeating the last one forever. Used by
// tests and the synthetic framer.
func NewFake(vectors ...[]float32) IService {
	if len(vectors) == 0 {
		vectors = [][]float32{{1.0}}
	}
	return &fakeService{
		vectors: vectors,
	}
}

func (svc *fakeService) Invoke(_ []float32) ([]float32, error) {
	idx := svc.calls
	if idx >= len(svc.vectors) {
		idx = len(svc.vectors) - 1
	}
	svc.calls++

	vector := svc.vectors[idx]
	if vector == nil {
		return nil, fmt.Errorf("scripted inference failure on call %d", svc.calls)
	}

	out := make([]float32, len(vector))
	copy(out, vector)
	return out, nil
}

func (svc *fakeService) CanSkipFrame(_ int) bool {
	return false
}

func (svc *fakeService) Close() {
}
