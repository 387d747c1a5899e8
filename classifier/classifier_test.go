package classifier

import (
	"image"
	"image/color"
	"testing"
	"time"
)

func uniformFrame(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, FrameSize, FrameSize))
	for y := 0; y < FrameSize; y++ {
		for x := 0; x < FrameSize; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFrameToTensorBlack(t *testing.T) {
	tensor, err := FrameToTensor(uniformFrame(color.RGBA{0, 0, 0, 255}))
	if err != nil {
		t.Fatalf("FrameToTensor() failed: %v", err)
	}
	if len(tensor) != TensorLen {
		t.Fatalf("tensor length = %d, want %d", len(tensor), TensorLen)
	}
	for i, v := range tensor {
		if v != -1.0 {
			t.Fatalf("tensor[%d] = %f, want -1.0 for all-black frame", i, v)
		}
	}
}

func TestFrameToTensorWhite(t *testing.T) {
	tensor, err := FrameToTensor(uniformFrame(color.RGBA{255, 255, 255, 255}))
	if err != nil {
		t.Fatalf("FrameToTensor() failed: %v", err)
	}
	want := float32(255)/127.5 - 1
	for i, v := range tensor {
		if v != want {
			t.Fatalf("tensor[%d] = %f, want %f for all-white frame", i, v, want)
		}
	}
}

func TestFrameToTensorRange(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, FrameSize, FrameSize))
	for y := 0; y < FrameSize; y++ {
		for x := 0; x < FrameSize; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), uint8((x + y) % 256), 255})
		}
	}

	tensor, err := FrameToTensor(img)
	if err != nil {
		t.Fatalf("FrameToTensor() failed: %v", err)
	}
	for i, v := range tensor {
		if v < -1.0 || v > 1.0 {
			t.Fatalf("tensor[%d] = %f, outside [-1, 1]", i, v)
		}
	}
}

func TestFrameToTensorLayout(t *testing.T) {
	// One red pixel at (x=3, y=2) must land at HWC offset (y*224+x)*3
	img := uniformFrame(color.RGBA{0, 0, 0, 255})
	img.SetRGBA(3, 2, color.RGBA{255, 0, 0, 255})

	tensor, err := FrameToTensor(img)
	if err != nil {
		t.Fatalf("FrameToTensor() failed: %v", err)
	}

	offset := (2*FrameSize + 3) * Channels
	if tensor[offset] != 1.0 {
		t.Errorf("red channel at offset %d = %f, want 1.0", offset, tensor[offset])
	}
	if tensor[offset+1] != -1.0 || tensor[offset+2] != -1.0 {
		t.Errorf("green/blue at offset %d = %f/%f, want -1.0/-1.0", offset, tensor[offset+1], tensor[offset+2])
	}
}

func TestFrameToTensorRejectsGeometry(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 224))
	if _, err := FrameToTensor(img); err == nil {
		t.Error("FrameToTensor() accepted a 100x224 frame")
	}
}

func TestAdaptFrame(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 640, 480))
	adapted := AdaptFrame(big)
	if adapted.Bounds().Dx() != FrameSize || adapted.Bounds().Dy() != FrameSize {
		t.Errorf("AdaptFrame() = %v, want %dx%d", adapted.Bounds(), FrameSize, FrameSize)
	}

	exact := image.NewRGBA(image.Rect(0, 0, FrameSize, FrameSize))
	if AdaptFrame(exact) != image.Image(exact) {
		t.Error("AdaptFrame() copied an already-sized frame")
	}
}

func TestArgmax(t *testing.T) {
	tests := []struct {
		name   string
		vector []float32
		want   int
	}{
		{"single", []float32{0.5}, 0},
		{"middle wins", []float32{0.1, 0.9, 0.3}, 1},
		{"last wins", []float32{0.1, 0.2, 0.8}, 2},
		{"tie resolves to lower index", []float32{0.2, 0.6, 0.6}, 1},
		{"all equal", []float32{0.5, 0.5, 0.5}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Argmax(tc.vector); got != tc.want {
				t.Errorf("Argmax(%v) = %d, want %d", tc.vector, got, tc.want)
			}
		})
	}
}

func TestDecide(t *testing.T) {
	labels := []string{"background", "real_1", "real_2"}

	tests := []struct {
		name        string
		vector      []float32
		wantMessage string
	}{
		{"confident reading", []float32{0.1, 0.9, 0.3}, "Real 1: 90.00%"},
		{"background wins regardless of confidence", []float32{0.99, 0.2, 0.1}, MsgNoCurrency},
		{"below the floor", []float32{0.1, 0.39, 0.2}, MsgUncertain},
		{"exactly at the floor", []float32{0.1, 0.4, 0.2}, "Real 1: 40.00%"},
		{"tie picks lower index", []float32{0.1, 0.6, 0.6}, "Real 1: 60.00%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Decide(labels, tc.vector)
			if err != nil {
				t.Fatalf("Decide() failed: %v", err)
			}
			if result.Message != tc.wantMessage {
				t.Errorf("Decide(%v) = %q, want %q", tc.vector, result.Message, tc.wantMessage)
			}
		})
	}
}

func TestDecideLengthMismatch(t *testing.T) {
	if _, err := Decide([]string{"a", "b"}, []float32{0.1, 0.2, 0.3}); err == nil {
		t.Error("Decide() accepted a vector longer than the label set")
	}
	if _, err := Decide([]string{}, []float32{}); err == nil {
		t.Error("Decide() accepted an empty label set")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"real_1", "Real 1"},
		{"fifty_dollar_note", "Fifty dollar note"},
		{"background", "Background"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := DisplayName(tc.in); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type scriptedInvoker struct {
	vector []float32
	err    error
}

func (s *scriptedInvoker) Invoke(_ []float32) ([]float32, error) {
	return s.vector, s.err
}

func TestClassify(t *testing.T) {
	labels := []string{"background", "real_1", "real_2"}
	mdl := &scriptedInvoker{vector: []float32{0.1, 0.9, 0.3}}

	result, err := Classify(uniformFrame(color.RGBA{128, 128, 128, 255}), mdl, labels)
	if err != nil {
		t.Fatalf("Classify() failed: %v", err)
	}
	if result.Index != 1 || result.Confidence != 0.9 {
		t.Errorf("Classify() picked index %d confidence %f, want 1/0.9", result.Index, result.Confidence)
	}
	if result.Message != "Real 1: 90.00%" {
		t.Errorf("Classify() message = %q, want %q", result.Message, "Real 1: 90.00%")
	}
}

func TestThrottle(t *testing.T) {
	now := time.Unix(1000, 0)
	throttle := NewThrottle(MinInterval)
	throttle.now = func() time.Time { return now }

	if !throttle.Allow() {
		t.Fatal("first frame must pass the gate")
	}

	// Second frame 10ms later: under the ~16.7ms interval, dropped
	now = now.Add(10 * time.Millisecond)
	if throttle.Allow() {
		t.Error("frame 10ms after the last one must be dropped")
	}

	// Third frame a full interval after the first: admitted
	now = now.Add(7 * time.Millisecond)
	if !throttle.Allow() {
		t.Error("frame past the interval must be admitted")
	}
}
