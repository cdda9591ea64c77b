package engine

import "testing"

func TestEventInvokesInOrder(t *testing.T) {
	var e Event
	var order []int
	e.AddListener(func() { order = append(order, 1) })
	e.AddListener(nil)
	e.AddListener(func() { order = append(order, 2) })

	e.Invoke()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Expected [1 2], got %v", order)
	}
	if e.GetListenerCount() != 2 {
		t.Errorf("Expected 2 listeners, got %d", e.GetListenerCount())
	}
}

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[float32]
	var sum float32
	e.AddListener(func(v float32) { sum += v })
	e.AddListener(func(v float32) { sum += 2 * v })

	e.Invoke(1.5)
	if sum != 4.5 {
		t.Errorf("Expected 4.5, got %f", sum)
	}

	e.RemoveAllListeners()
	e.Invoke(10)
	if sum != 4.5 {
		t.Errorf("Listeners should be gone, got %f", sum)
	}
}

func TestLayers(t *testing.T) {
	var l Layers
	l.Set(LayerCameraCollision)
	if !l.Has(LayerCameraCollision) || l.Has(LayerDefault) {
		t.Errorf("Set should leave only the camera layer, got %b", l)
	}

	l.Enable(LayerDefault)
	if !l.Test(DefaultLayers) {
		t.Error("Enabled layer should match the default mask")
	}

	l.Disable(LayerCameraCollision)
	if l.Test(LayerBit(LayerCameraCollision)) {
		t.Error("Disabled layer should not match")
	}
	if l.Mask() != 1 {
		t.Errorf("Expected mask 1, got %d", l.Mask())
	}
}

func TestRemoveListener(t *testing.T) {
	var e EventWithArg[int]
	var got []int
	first := e.AddListener(func(v int) { got = append(got, v) })
	var second Listener
	second = e.AddListener(func(v int) {
		got = append(got, -v)
		e.RemoveListener(second)
	})
	if first == second || first == 0 {
		t.Fatalf("Expected distinct non-zero ids, got %d and %d", first, second)
	}

	e.Invoke(1)
	e.Invoke(2)
	if len(got) != 3 || got[0] != 1 || got[1] != -1 || got[2] != 2 {
		t.Errorf("Expected [1 -1 2], got %v", got)
	}

	e.RemoveListener(first)
	if e.GetListenerCount() != 0 {
		t.Errorf("Expected no listeners, got %d", e.GetListenerCount())
	}
	if id := e.AddListener(nil); id != 0 {
		t.Errorf("Expected id 0 for a nil callback, got %d", id)
	}
}
