package inference

import "testing"

func TestFakeReplaysVectorsInOrder(t *testing.T) {
	svc := NewFake(
		[]float32{0.9, 0.1},
		[]float32{0.2, 0.8},
	)

	first, err := svc.Invoke(nil)
	if err != nil {
		t.Fatalf("Invoke() failed: %v", err)
	}
	if first[0] != 0.9 {
		t.Errorf("first vector = %v, want [0.9 0.1]", first)
	}

	second, err := svc.Invoke(nil)
	if err != nil {
		t.Fatalf("Invoke() failed: %v", err)
	}
	if second[1] != 0.8 {
		t.Errorf("second vector = %v, want [0.2 0.8]", second)
	}

	// Past the script the last vector repeats
	third, err := svc.Invoke(nil)
	if err != nil {
		t.Fatalf("Invoke() failed: %v", err)
	}
	if third[1] != 0.8 {
		t.Errorf("third vector = %v, want the last scripted one", third)
	}
}

func TestFakeScriptedFailure(t *testing.T) {
	svc := NewFake(nil)
	if _, err := svc.Invoke(nil); err == nil {
		t.Error("Invoke() succeeded on a scripted failure")
	}
}

func TestFakeReturnsACopy(t *testing.T) {
	svc := NewFake([]float32{0.5, 0.5})

	out, err := svc.Invoke(nil)
	if err != nil {
		t.Fatalf("Invoke() failed: %v", err)
	}
	out[0] = 99

	again, err := svc.Invoke(nil)
	if err != nil {
		t.Fatalf("Invoke() failed: %v", err)
	}
	if again[0] != 0.5 {
		t.Errorf("scripted vector was mutated by a caller: %v", again)
	}
}
