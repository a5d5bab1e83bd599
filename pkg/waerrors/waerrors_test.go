package waerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestLookup(t *testing.T) {
	if got := Lookup(CodeAccessTokenExpired); got != "access token is invalid or has expired" {
		t.Fatalf("unexpected message for known code: %q", got)
	}
	if got := Lookup(999999); got != "unknown error (code: 999999)" {
		t.Fatalf("unexpected fallback message: %q", got)
	}
}

func TestErrorString(t *testing.T) {
	err := New("invalid parameter in the request", CodeInvalidParameter)
	if got := err.Error(); got != "invalid parameter in the request (code 100)" {
		t.Fatalf("unexpected error string: %q", got)
	}

	err = FromCode(CodeInvalidParameter, 2494055, "Recipient phone number not in allowed list", "AbCdEf")
	want := "invalid parameter in the request (code 100): Recipient phone number not in allowed list"
	if got := err.Error(); got != want {
		t.Fatalf("unexpected detailed error string: %q", got)
	}
}

func TestFromCode(t *testing.T) {
	err := FromCode(CodeReengagementRequired, 0, "", "trace-1")
	if err.Message != "more than 24 hours since the customer last replied" {
		t.Fatalf("unexpected resolved message: %q", err.Message)
	}
	if err.Code != CodeReengagementRequired || err.TraceID != "trace-1" {
		t.Fatalf("envelope fields not carried: %+v", err)
	}
}

func TestWrap(t *testing.T) {
	plain := errors.New("connection refused")
	wrapped := Wrap(plain)
	if wrapped.Code != CodeNone || wrapped.Message != "connection refused" {
		t.Fatalf("unexpected wrap of plain error: %+v", wrapped)
	}

	original := New("throughput limit reached", CodeThroughputRateLimitHit)
	if got := Wrap(original); got != original {
		t.Fatalf("expected existing error to pass through, got %+v", got)
	}

	chained := fmt.Errorf("sending: %w", original)
	if got := Wrap(chained); got != original {
		t.Fatalf("expected wrapped chain to resolve to the original, got %+v", got)
	}
}

func TestIsCode(t *testing.T) {
	err := FromCode(CodeAccessTokenExpired, 0, "", "")
	if !IsCode(err, CodeAccessTokenExpired) {
		t.Fatal("expected IsCode to match the carried code")
	}
	if IsCode(err, CodeInvalidParameter) {
		t.Fatal("expected IsCode to reject a different code")
	}
	if IsCode(errors.New("not a platform error"), CodeAccessTokenExpired) {
		t.Fatal("expected IsCode to reject foreign error types")
	}
}

func TestIsRateLimited(t *testing.T) {
	for _, code := range []int{CodeAPITooManyCalls, CodeRateLimitIssues, CodeThroughputRateLimitHit, CodeSpamRateLimitHit} {
		if !IsRateLimited(FromCode(code, 0, "", "")) {
			t.Fatalf("expected code %d to count as rate limited", code)
		}
	}
	if IsRateLimited(FromCode(CodeGenericError, 0, "", "")) {
		t.Fatal("expected generic error to not count as rate limited")
	}
}
