package engagement

import "testing"

func TestResolveTransitionTable(t *testing.T) {
	cases := []struct {
		name      string
		existing  Polarity
		requested Polarity
		action    Action
		delta     int
		result    Polarity
	}{
		{"none up creates", None, Up, ActionCreate, 1, Up},
		{"none down creates", None, Down, ActionCreate, -1, Down},
		{"up up toggles off", Up, Up, ActionDelete, -1, None},
		{"down down toggles off", Down, Down, ActionDelete, 1, None},
		{"up down switches", Up, Down, ActionUpdate, -2, Down},
		{"down up switches", Down, Up, ActionUpdate, 2, Up},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := Resolve(tc.existing, tc.requested)
			if tr.Action != tc.action {
				t.Errorf("action = %v, want %v", tr.Action, tc.action)
			}
			if tr.Delta != tc.delta {
				t.Errorf("delta = %d, want %d", tr.Delta, tc.delta)
			}
			if tr.Result != tc.result {
				t.Errorf("result = %q, want %q", tr.Result, tc.result)
			}
		})
	}
}

func TestPolarityValue(t *testing.T) {
	if Up.Value() != 1 || Down.Value() != -1 || None.Value() != 0 {
		t.Fatal("polarity unit values are off")
	}
	if None.Valid() || !Up.Valid() || !Down.Valid() {
		t.Fatal("polarity validity is off")
	}
}
