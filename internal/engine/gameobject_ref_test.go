package engine

import "testing"

func TestGameObjectRefGet(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Target")
	scene.AddGameObject(obj)

	ref := RefTo(obj)

	if found := ref.Get(scene); found != obj {
		t.Errorf("Get() failed: expected %v, got %v", obj, found)
	}
}

func TestGameObjectRefGetNil(t *testing.T) {
	scene := NewScene("Test")

	if (GameObjectRef{}).Get(scene) != nil {
		t.Error("Get() with UID=0 should return nil")
	}
	if (GameObjectRef{UID: 99999}).Get(scene) != nil {
		t.Error("Get() with non-existent UID should return nil")
	}
	if (GameObjectRef{UID: 123}).Get(nil) != nil {
		t.Error("Get() with nil scene should return nil")
	}
	if RefTo(nil).IsValid() {
		t.Error("RefTo(nil) should be invalid")
	}
}

func TestGameObjectRefAfterRemoval(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Platform")
	scene.AddGameObject(obj)
	ref := RefTo(obj)

	scene.RemoveGameObject(obj)

	if ref.Get(scene) != nil {
		t.Error("Reference should not resolve after the object left the scene")
	}
}

func TestGameObjectRefClear(t *testing.T) {
	ref := GameObjectRef{UID: 123}
	if !ref.IsValid() {
		t.Error("GameObjectRef with UID > 0 should be valid")
	}

	ref.Clear()
	if ref.IsValid() {
		t.Error("Cleared reference should be invalid")
	}
}
