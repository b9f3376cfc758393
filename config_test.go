package rock

import "testing"

func TestConfigStoreDefaultsAndUpdate(t *testing.T) {
	store := NewConfigStore()
	got := store.Get()
	want := DefaultConfig()
	if got != want {
		t.Fatalf("fresh store should return defaults, got %+v, want %+v", got, want)
	}

	updated := want
	updated.AiLevel = 9
	store.Update(updated)

	if got := store.Get(); got.AiLevel != 9 {
		t.Fatalf("expected AiLevel 9 after update, got %d", got.AiLevel)
	}
}
