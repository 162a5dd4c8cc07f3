package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestDefaultPolicy verifies the baseline default values.
func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.Mode != ModeLinear {
		t.Fatalf("expected linear default mode got %s", p.Mode)
	}
	if p.Initial != time.Second {
		t.Fatalf("expected initial 1s got %v", p.Initial)
	}
	if p.Max != 30*time.Second {
		t.Fatalf("expected max 30s got %v", p.Max)
	}
	if p.MaxRetries != 2 {
		t.Fatalf("expected max retries 2 got %d", p.MaxRetries)
	}
}

// TestNewPolicyOverrides checks override precedence and clamping when initial > max.
func TestNewPolicyOverrides(t *testing.T) {
	p := NewPolicy(ModeFixed, 5*time.Second, 2*time.Second, 5)
	if p.Initial != 2*time.Second {
		t.Fatalf("expected clamped initial 2s got %v", p.Initial)
	}
	if p.Max != 2*time.Second {
		t.Fatalf("expected max 2s got %v", p.Max)
	}
	if p.Mode != ModeFixed {
		t.Fatalf("expected fixed mode got %s", p.Mode)
	}
	if p.MaxRetries != 5 {
		t.Fatalf("expected maxRetries 5 got %d", p.MaxRetries)
	}

	if got := NewPolicy("sideways", 0, 0, -1); got != DefaultPolicy() {
		t.Fatalf("invalid fields should fall back to defaults, got %+v", got)
	}
	if got := NewPolicy("EXPONENTIAL", 0, 0, 0).Mode; got != ModeExponential {
		t.Fatalf("mode should be case-folded, got %s", got)
	}
}

// TestDelayModes ensures fixed, linear, exponential behave and respect cap.
func TestDelayModes(t *testing.T) {
	fixed := NewPolicy(ModeFixed, 100*time.Millisecond, 500*time.Millisecond, 3)
	for i := 1; i <= 3; i++ {
		if d := fixed.Delay(i); d != 100*time.Millisecond {
			t.Fatalf("fixed attempt %d expected 100ms got %v", i, d)
		}
	}

	linear := NewPolicy(ModeLinear, 100*time.Millisecond, 250*time.Millisecond, 5)
	cases := []struct {
		attempt int
		want    time.Duration
	}{{1, 100 * time.Millisecond}, {2, 200 * time.Millisecond}, {3, 250 * time.Millisecond}, {4, 250 * time.Millisecond}}
	for _, c := range cases {
		if d := linear.Delay(c.attempt); d != c.want {
			t.Fatalf("linear attempt %d expected %v got %v", c.attempt, c.want, d)
		}
	}

	exp := NewPolicy(ModeExponential, 50*time.Millisecond, 300*time.Millisecond, 5)
	expCases := []struct {
		attempt int
		want    time.Duration
	}{{1, 50 * time.Millisecond}, {2, 100 * time.Millisecond}, {3, 200 * time.Millisecond}, {4, 300 * time.Millisecond}}
	for _, c := range expCases {
		if d := exp.Delay(c.attempt); d != c.want {
			t.Fatalf("exponential attempt %d expected %v got %v", c.attempt, c.want, d)
		}
	}

	if d := linear.Delay(0); d != 0 {
		t.Fatalf("attempt 0 expected 0 got %v", d)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy should validate: %v", err)
	}
	if err := (Policy{Initial: 0, Max: time.Second}).Validate(); err == nil {
		t.Fatal("expected error for zero initial")
	}
	if err := (Policy{Initial: time.Second, Max: time.Second, MaxRetries: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative retries")
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	p := NewPolicy(ModeFixed, time.Millisecond, time.Millisecond, 3)
	calls := 0
	var retried []int
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("locked")
		}
		return nil
	}, nil, func(attempt int, _ time.Duration, _ error) { retried = append(retried, attempt) })

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls got %d", calls)
	}
	if len(retried) != 2 || retried[0] != 1 || retried[1] != 2 {
		t.Fatalf("unexpected retry attempts %v", retried)
	}
}

func TestDoStopsOnPermanentError(t *testing.T) {
	p := NewPolicy(ModeFixed, time.Millisecond, time.Millisecond, 5)
	permanent := errors.New("bad config")
	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return permanent
	}, func(err error) bool { return !errors.Is(err, permanent) }, nil)

	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single call got %d", calls)
	}
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	p := NewPolicy(ModeFixed, time.Millisecond, time.Millisecond, 2)
	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return errors.New("still locked")
	}, nil, nil)

	if err == nil {
		t.Fatal("expected error after retries")
	}
	if calls != 3 {
		t.Fatalf("expected 1 call plus 2 retries, got %d", calls)
	}
}

func TestDoHonoursCancellation(t *testing.T) {
	p := NewPolicy(ModeFixed, time.Hour, time.Hour, 3)
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := p.Do(ctx, func(context.Context) error {
		calls++
		return errors.New("locked")
	}, nil, func(int, time.Duration, error) { cancel() })

	if err == nil {
		t.Fatal("expected the last error")
	}
	if calls != 1 {
		t.Fatalf("expected no call after cancel, got %d", calls)
	}
}
