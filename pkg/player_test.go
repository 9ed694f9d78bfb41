package pkg

import (
	"testing"
)

func TestPlayers(t *testing.T) {
	tests := []struct {
		computer     string
		white, black PlayerKind
		err          bool
	}{
		{"", Human, Computer, false},
		{"black", Human, Computer, false},
		{"White", Computer, Human, false},
		{"both", Computer, Computer, false},
		{"none", Human, Human, false},
		{"red", Human, Human, true},
	}
	for _, tt := range tests {
		white, black, err := Players(tt.computer)
		if (err != nil) != tt.err {
			t.Errorf("%q: unexpected error %v", tt.computer, err)
			continue
		}
		if tt.err {
			continue
		}
		if white.Kind != tt.white || black.Kind != tt.black {
			t.Errorf("%q: got %s/%s", tt.computer, white.Kind, black.Kind)
		}
	}

	white, _, _ := Players("white")
	if white.String() != "White (Computer)" {
		t.Errorf("unexpected name %q", white.String())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		check, capture bool
		want           Sound
	}{
		{false, false, SoundMove},
		{false, true, SoundCapture},
		{true, false, SoundCheck},
		{true, true, SoundCheck},
	}
	for _, tt := range tests {
		if got := classify(tt.check, tt.capture); got != tt.want {
			t.Errorf("classify(%v, %v) = %s, want %s", tt.check, tt.capture, got, tt.want)
		}
	}
}
