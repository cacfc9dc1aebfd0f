package errors

import (
	stderrors "errors"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("slug is required"), KindValidation},
		{"invariant", Invariant("title must not be empty"), KindInvariant},
		{"not found", NotFound("Business not found"), KindNotFound},
		{"conflict", Conflict("slug %q already exists", "acme"), KindConflict},
		{"unexpected", Unexpected(stderrors.New("connection refused")), KindUnexpected},
		{"foreign error", stderrors.New("plain"), KindUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnexpectedHidesCause(t *testing.T) {
	cause := stderrors.New("pq: connection reset by peer")
	err := Unexpected(cause)
	if err.Error() != "unexpected error" {
		t.Errorf("message leaks detail: %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("cause should be reachable via errors.Is")
	}
}

func TestIsExpected(t *testing.T) {
	if !IsExpected(Conflict("email already exists")) {
		t.Error("conflict should be expected")
	}
	if IsExpected(Unexpected(stderrors.New("boom"))) {
		t.Error("unexpected should not be expected")
	}
}
