package publish

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{&googleapi.Error{Code: 429}, true},
		{&googleapi.Error{Code: 500}, true},
		{&googleapi.Error{Code: 503}, true},
		{&googleapi.Error{Code: 400}, false},
		{&googleapi.Error{Code: 403}, false},
		{errors.New("connection reset"), false},
	}
	for _, tc := range cases {
		if got := isRetryable(tc.err); got != tc.want {
			t.Errorf("isRetryable(%v) = %v, expected %v", tc.err, got, tc.want)
		}
	}
}

func TestWithRetriesStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := withRetries(context.Background(), func() error {
		calls++
		return &googleapi.Error{Code: 403}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("permanent error should not retry, got %d calls", calls)
	}
}

func TestWithRetriesRecoversFromTransientError(t *testing.T) {
	calls := 0
	err := withRetries(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &googleapi.Error{Code: 503}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestWithRetriesHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := withRetries(ctx, func() error {
		return &googleapi.Error{Code: 503}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
