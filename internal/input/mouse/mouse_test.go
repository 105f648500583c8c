package mouse

import "testing"

func TestState_ButtonTracking(t *testing.T) {
	var s State

	if s.Button(ButtonLeft) != ButtonReleased {
		t.Error("expected zero-value state to have all buttons released")
	}

	s.PressButton(ButtonLeft)
	s.PressButton(ButtonRight)

	if s.Button(ButtonLeft) != ButtonPressed {
		t.Error("expected left button pressed")
	}

	pressed := s.PressedButtons()
	if len(pressed) != 2 || pressed[0] != ButtonLeft || pressed[1] != ButtonRight {
		t.Errorf("expected [left right], got %v", pressed)
	}

	s.ReleaseButton(ButtonLeft)
	if s.Button(ButtonLeft) != ButtonReleased {
		t.Error("expected left button released")
	}
}

func TestState_Diff(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*State)
		want   Property
	}{
		{
			name:   "no change",
			mutate: func(*State) {},
			want:   PropertyNone,
		},
		{
			name:   "button press",
			mutate: func(s *State) { s.PressButton(ButtonLeft) },
			want:   PropertyButtons,
		},
		{
			name:   "position move",
			mutate: func(s *State) { s.SetPosition(Position{X: 3, Y: 7}) },
			want:   PropertyPosition,
		},
		{
			name:   "scroll delta",
			mutate: func(s *State) { s.AddScrollDelta(Scroll{Y: 1.5}) },
			want:   PropertyScroll,
		},
		{
			name:   "window entry",
			mutate: func(s *State) { s.SetInWindow(true) },
			want:   PropertyInWindow,
		},
		{
			name: "combined",
			mutate: func(s *State) {
				s.PressButton(ButtonMiddle)
				s.SetPosition(Position{X: 1, Y: 1})
			},
			want: PropertyButtons | PropertyPosition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prev, cur State
			tt.mutate(&cur)

			if got := cur.Diff(prev); got != tt.want {
				t.Errorf("Diff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestState_ScrollAccumulation(t *testing.T) {
	var s State

	s.AddScrollDelta(Scroll{X: 1, Y: 2})
	s.AddScrollDelta(Scroll{X: 0.5, Y: -1})

	if got := s.Scroll(); got.X != 1.5 || got.Y != 1 {
		t.Errorf("expected scroll (1.5, 1), got (%g, %g)", got.X, got.Y)
	}

	s.ResetScroll()
	if got := s.Scroll(); got != (Scroll{}) {
		t.Errorf("expected scroll reset to zero, got (%g, %g)", got.X, got.Y)
	}
}

func TestScrollButtonAndDelta(t *testing.T) {
	tests := []struct {
		name       string
		delta      Scroll
		wantButton Button
		wantDelta  float64
	}{
		{"vertical", Scroll{Y: 2.5}, ButtonVScroll, 2.5},
		{"vertical negative", Scroll{Y: -1}, ButtonVScroll, -1},
		{"horizontal", Scroll{X: 0.5}, ButtonHScroll, 0.5},
		{"vertical wins", Scroll{X: 1, Y: 1}, ButtonVScroll, 1},
		{"noise", Scroll{X: 0.0000001, Y: 0.0000001}, ButtonUnknown, 0},
		{"zero", Scroll{}, ButtonUnknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			button, delta := ScrollButtonAndDelta(tt.delta)
			if button != tt.wantButton || delta != tt.wantDelta {
				t.Errorf("ScrollButtonAndDelta(%v) = (%v, %g), want (%v, %g)",
					tt.delta, button, delta, tt.wantButton, tt.wantDelta)
			}
		})
	}
}

func TestProperty_String(t *testing.T) {
	if got := PropertyNone.String(); got != "none" {
		t.Errorf("expected \"none\", got %q", got)
	}
	if got := (PropertyButtons | PropertyScroll).String(); got != "buttons|scroll" {
		t.Errorf("expected \"buttons|scroll\", got %q", got)
	}
}
