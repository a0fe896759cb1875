package input

import (
	"testing"
	"time"
)

func feed(s *Stream, b string) {
	for i := 0; i < len(b); i++ {
		s.ch <- b[i]
	}
}

func TestReadInputKeys(t *testing.T) {
	tests := []struct {
		name  string
		bytes string
		check func(Input) bool
	}{
		{"arrow up", "\x1b[A", func(in Input) bool { return in.Up && !in.Escape }},
		{"arrow left", "\x1b[D", func(in Input) bool { return in.Left }},
		{"wasd right", "d", func(in Input) bool { return in.Right }},
		{"shoot", " ", func(in Input) bool { return in.Shoot }},
		{"poke", "f", func(in Input) bool { return in.Poke }},
		{"combo", "wd", func(in Input) bool { return in.Up && in.Right && !in.Left }},
		{"quit", "q", func(in Input) bool { return in.Quit }},
		{"lone escape", "\x1b", func(in Input) bool { return in.Escape }},
	}
	for _, tt := range tests {
		s := newStream()
		feed(s, tt.bytes)
		in := ReadInput(s)
		if !tt.check(in) {
			t.Errorf("%s: unexpected input %+v", tt.name, in)
		}
		if string(in.Pressed) != tt.bytes {
			t.Errorf("%s: pressed = %q, want %q", tt.name, in.Pressed, tt.bytes)
		}
	}
}

func TestKeyHoldExpires(t *testing.T) {
	s := newStream()
	clock := time.Unix(1000, 0)
	s.now = func() time.Time { return clock }

	feed(s, "w")
	if in := ReadInput(s); !in.Up {
		t.Fatal("up not held right after press")
	}

	clock = clock.Add(keyHoldDuration / 2)
	if in := ReadInput(s); !in.Up {
		t.Fatal("up released inside the hold window")
	}

	clock = clock.Add(keyHoldDuration)
	if in := ReadInput(s); in.Up {
		t.Fatal("up still held after the hold window")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := newStream()
	feed(s, "a ")
	ReadInput(s)
	ResetKeyInput(s)
	if in := ReadInput(s); in.Left || in.Shoot {
		t.Fatalf("keys survived reset: %+v", in)
	}
}

func TestShootHoldsThroughRepeatDelay(t *testing.T) {
	s := newStream()
	clock := time.Unix(1000, 0)
	s.now = func() time.Time { return clock }

	feed(s, " ")
	ReadInput(s)

	// Gap before the terminal starts auto-repeating.
	clock = clock.Add(400 * time.Millisecond)
	if in := ReadInput(s); !in.Shoot {
		t.Fatal("shoot released during the repeat delay")
	}

	clock = clock.Add(shootHoldDuration)
	if in := ReadInput(s); in.Shoot {
		t.Fatal("shoot still held after release")
	}
}
