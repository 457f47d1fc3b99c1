package theme

import (
	"context"
	"errors"
	"testing"
)

type mapSlot map[string]string

func (m mapSlot) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapSlot) Set(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

type brokenSlot struct{}

func (brokenSlot) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("boom")
}
func (brokenSlot) Set(context.Context, string, string) error { return errors.New("boom") }

func TestToggledReturnsNewTheme(t *testing.T) {
	light := New(Light)
	dark := light.Toggled()

	if light.Mode != Light {
		t.Fatal("original theme mutated")
	}
	if dark.Mode != Dark || dark.Palette != darkPalette {
		t.Fatalf("toggled theme = %v", dark.Mode)
	}
	if back := dark.Toggled(); back.Mode != Light || back.Palette != lightPalette {
		t.Fatalf("double toggle = %v", back.Mode)
	}
}

func TestNewUnknownModeFallsBackToLight(t *testing.T) {
	if got := New(Mode("sepia")); got.Mode != Light {
		t.Fatalf("mode = %v", got.Mode)
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode(" DARK ") != Dark {
		t.Fatal("expected dark")
	}
	if ParseMode("") != Light {
		t.Fatal("expected light")
	}
}

func TestRestoreAndPersist(t *testing.T) {
	ctx := context.Background()
	slot := mapSlot{}

	got, err := Restore(ctx, slot, "TodoAppTheme", Dark)
	if err != nil || got.Mode != Dark {
		t.Fatalf("Restore fallback = %v %v", got.Mode, err)
	}

	if err := Persist(ctx, slot, "TodoAppTheme", New(Light)); err != nil {
		t.Fatal(err)
	}
	got, err = Restore(ctx, slot, "TodoAppTheme", Dark)
	if err != nil || got.Mode != Light {
		t.Fatalf("Restore stored = %v %v", got.Mode, err)
	}

	got, err = Restore(ctx, brokenSlot{}, "TodoAppTheme", Dark)
	if err == nil || got.Mode != Dark {
		t.Fatalf("Restore on error = %v %v", got.Mode, err)
	}
}
