package fare

import "testing"

func TestEstimate_Deterministic(t *testing.T) {
	t.Parallel()

	first := DefaultSchedule.Estimate(5.5, 18, 1.0)
	for i := 0; i < 10; i++ {
		if got := DefaultSchedule.Estimate(5.5, 18, 1.0); got != first {
			t.Fatalf("estimate varies between calls: %v vs %v", got, first)
		}
	}
}

func TestEstimate_Components(t *testing.T) {
	t.Parallel()

	s := Schedule{Base: 60, PerKm: 10, PerMinute: 2}

	if got := s.Estimate(0, 0, 1.0); got != 60 {
		t.Errorf("zero-length trip = %v, want base fare 60", got)
	}
	if got := s.Estimate(4, 10, 1.0); got != 120 {
		t.Errorf("4km/10min trip = %v, want 120", got)
	}
	if got := s.Estimate(4, 10, 1.5); got != 180 {
		t.Errorf("surged trip = %v, want 180", got)
	}
}

func TestEstimate_MultiplierClampedToOne(t *testing.T) {
	t.Parallel()

	s := Schedule{Base: 60, PerKm: 10, PerMinute: 2}
	if got, want := s.Estimate(4, 10, 0.5), s.Estimate(4, 10, 1.0); got != want {
		t.Errorf("sub-1 multiplier not clamped: got %v, want %v", got, want)
	}
}

func TestEstimate_NegativeInputsTreatedAsZero(t *testing.T) {
	t.Parallel()

	if got := DefaultSchedule.Estimate(-3, -10, 1.0); got != DefaultSchedule.Base {
		t.Errorf("negative route = %v, want base %v", got, DefaultSchedule.Base)
	}
}
