package puzzle

import (
	"strings"
	"testing"
)

func TestDecodeMove(t *testing.T) {
	m, err := DecodeMove([]byte(`{"type":"row","index":1,"direction":"left"}`))
	if err != nil {
		t.Fatalf("DecodeMove failed: %v", err)
	}
	want := Move{Kind: KindRow, Index: 1, Direction: DirLeft}
	if m != want {
		t.Errorf("DecodeMove = %v, want %v", m, want)
	}
}

func TestDecodeMoveIgnoresUnknownFields(t *testing.T) {
	m, err := DecodeMove([]byte(`{"type":"column","index":2,"direction":"up","comment":"x","ply":3}`))
	if err != nil {
		t.Fatalf("unknown fields should be ignored: %v", err)
	}
	if m.Kind != KindColumn || m.Index != 2 || m.Direction != DirUp {
		t.Errorf("DecodeMove = %v", m)
	}
}

func TestDecodeMoveMissingKeys(t *testing.T) {
	payloads := []string{
		`{}`,
		`{"type":"row"}`,
		`{"type":"row","index":1}`,
		`{"index":1,"direction":"left"}`,
	}
	for _, payload := range payloads {
		if _, err := DecodeMove([]byte(payload)); err == nil {
			t.Errorf("DecodeMove(%s) should fail on missing keys", payload)
		} else if !strings.Contains(err.Error(), "missing required keys") {
			t.Errorf("DecodeMove(%s) error = %q, want missing-keys message", payload, err)
		}
	}
}

func TestDecodeMoveBadJSON(t *testing.T) {
	if _, err := DecodeMove([]byte(`not json`)); err == nil {
		t.Error("DecodeMove should fail on garbage input")
	}
}

func TestApplyMoveJSON(t *testing.T) {
	p := newSolved(t, 3)
	ok, msg := p.ApplyMoveJSON([]byte(`{"type":"row","index":2,"direction":"right"}`))
	if !ok {
		t.Fatalf("apply failed: %s", msg)
	}
	if msg != "Moved row 2 right." {
		t.Errorf("confirmation = %q, want %q", msg, "Moved row 2 right.")
	}
	if got := strings.Join(p.Board()[1], " "); got != "6 4 5" {
		t.Errorf("row 2 after right shift = %q, want %q", got, "6 4 5")
	}
}

func TestApplyMoveRejectsBadIndex(t *testing.T) {
	p := newSolved(t, 3)
	before := p.StateString()
	for _, idx := range []int{0, -1, 4, 100} {
		ok, msg := p.ApplyMove(Move{Kind: KindRow, Index: idx, Direction: DirLeft})
		if ok {
			t.Errorf("index %d should be rejected", idx)
		}
		if !strings.Contains(msg, "between 1 and 3") {
			t.Errorf("index %d reason = %q, want bounds message", idx, msg)
		}
	}
	if p.StateString() != before {
		t.Error("board mutated by rejected moves")
	}
}

func TestApplyMoveRejectsWrongDirection(t *testing.T) {
	p := newSolved(t, 3)
	before := p.StateString()
	bad := []Move{
		{Kind: KindRow, Index: 1, Direction: DirUp},
		{Kind: KindRow, Index: 1, Direction: DirDown},
		{Kind: KindColumn, Index: 1, Direction: DirLeft},
		{Kind: KindColumn, Index: 1, Direction: DirRight},
		{Kind: "diagonal", Index: 1, Direction: DirLeft},
		{Kind: KindRow, Index: 1, Direction: "sideways"},
	}
	for _, m := range bad {
		if ok, _ := p.ApplyMove(m); ok {
			t.Errorf("move %v should be rejected", m)
		}
	}
	if p.StateString() != before {
		t.Error("board mutated by rejected moves")
	}
}

func TestApplyMoveJSONGarbage(t *testing.T) {
	p := newSolved(t, 3)
	before := p.StateString()
	payloads := []string{
		`{{{`,
		`[]`,
		`{"type":"row","direction":"left"}`,
		`{"type":"row","index":9,"direction":"left"}`,
	}
	for _, payload := range payloads {
		if ok, _ := p.ApplyMoveJSON([]byte(payload)); ok {
			t.Errorf("payload %s should be rejected", payload)
		}
	}
	if p.StateString() != before {
		t.Error("board mutated by rejected payloads")
	}
}

func TestMoveInverse(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{DirLeft, DirRight},
		{DirRight, DirLeft},
		{DirUp, DirDown},
		{DirDown, DirUp},
	}
	for _, tt := range tests {
		m := Move{Kind: KindRow, Index: 2, Direction: tt.in}
		inv := m.Inverse()
		if inv.Direction != tt.want {
			t.Errorf("Inverse(%s) = %s, want %s", tt.in, inv.Direction, tt.want)
		}
		if inv.Kind != m.Kind || inv.Index != m.Index {
			t.Errorf("Inverse changed line selection: %v -> %v", m, inv)
		}
	}
}

func TestReverseSequence(t *testing.T) {
	seq := []Move{
		{Kind: KindRow, Index: 1, Direction: DirLeft},
		{Kind: KindColumn, Index: 2, Direction: DirUp},
		{Kind: KindRow, Index: 3, Direction: DirRight},
	}
	rev := ReverseSequence(seq)
	want := []Move{
		{Kind: KindRow, Index: 3, Direction: DirLeft},
		{Kind: KindColumn, Index: 2, Direction: DirDown},
		{Kind: KindRow, Index: 1, Direction: DirRight},
	}
	for i := range want {
		if rev[i] != want[i] {
			t.Errorf("rev[%d] = %v, want %v", i, rev[i], want[i])
		}
	}

	// Input must not be modified.
	if seq[0].Direction != DirLeft {
		t.Error("ReverseSequence mutated its input")
	}
}

func TestReverseSequenceEmpty(t *testing.T) {
	if rev := ReverseSequence(nil); len(rev) != 0 {
		t.Errorf("ReverseSequence(nil) = %v, want empty", rev)
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{Move{Kind: KindRow, Index: 1, Direction: DirLeft}, "R1 L"},
		{Move{Kind: KindRow, Index: 12, Direction: DirRight}, "R12 R"},
		{Move{Kind: KindColumn, Index: 2, Direction: DirUp}, "C2 U"},
		{Move{Kind: KindColumn, Index: 3, Direction: DirDown}, "C3 D"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String(%v) = %q, want %q", tt.m, got, tt.want)
		}
	}
}
