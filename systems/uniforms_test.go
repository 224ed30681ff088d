package systems

import (
	"testing"
	"time"
)

func TestTimeDriverApply(t *testing.T) {
	tests := []struct {
		name    string
		scale   float32
		elapsed float64
		want    float32
	}{
		{"start", 10, 0, 0},
		{"one and a half seconds", 10, 1.5, 15},
		{"unit scale", 1, 2.25, 2.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var state MaterialState
			TimeDriver{Scale: tt.scale}.Apply(&state, tt.elapsed)
			if state.Time != tt.want {
				t.Errorf("Time = %v, want %v", state.Time, tt.want)
			}
			if !state.Dirty {
				t.Error("expected Dirty after Apply")
			}
		})
	}
}

func TestTimeDriverKeepsColor(t *testing.T) {
	state := MaterialState{Color: [3]float32{1, 1, 0.25}}
	TimeDriver{Scale: 10}.Apply(&state, 3)
	if state.Color != [3]float32{1, 1, 0.25} {
		t.Errorf("Color changed to %v", state.Color)
	}
}

func TestClockElapsed(t *testing.T) {
	base := time.Unix(1000, 0)
	now := base
	clock := NewClockWithSource(func() time.Time { return now })

	if got := clock.Elapsed(); got != 0 {
		t.Errorf("Elapsed() at start = %v, want 0", got)
	}

	now = base.Add(2500 * time.Millisecond)
	if got := clock.Elapsed(); got != 2.5 {
		t.Errorf("Elapsed() = %v, want 2.5", got)
	}
}
