package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  &AppError{Code: ErrCodeNotFound, Message: "resource not found"},
			want: "resource not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeUnavailable,
				Message: "backend request failed",
				Cause:   errors.New("connection refused"),
			},
			want: "backend request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeInternal, "wrapped error")

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestValidationf_KeepsPercentInPlainMessage(t *testing.T) {
	err := Validation("rating must be 1..5 (100%)")
	if err.Message != "rating must be 1..5 (100%)" {
		t.Errorf("Validation().Message = %q", err.Message)
	}
	err = Validationf("rating %d out of range", 7)
	if err.Message != "rating 7 out of range" {
		t.Errorf("Validationf().Message = %q", err.Message)
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("entityId", "entity id is required")
	if err.Code != ErrCodeValidation {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if GetField(err) != "entityId" {
		t.Errorf("GetField() = %q, want entityId", GetField(err))
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "x"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
	if err := Wrapf(nil, ErrCodeInternal, "x %d", 1); err != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", err)
	}
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"canceled", context.Canceled, ErrCodeCanceled},
		{"deadline", fmt.Errorf("do: %w", context.DeadlineExceeded), ErrCodeTimeout},
		{"other", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromContext(tt.err, "request")
			if tt.want == "" {
				if got != nil {
					t.Errorf("FromContext() = %v, want nil", got)
				}
				return
			}
			if got == nil || got.Code != tt.want {
				t.Errorf("FromContext() = %v, want code %v", got, tt.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"not found", NotFoundf("application %s", "a1"), IsNotFound, true},
		{"conflict", Conflict("too many retries"), IsConflict, true},
		{"validation", Validation("bad"), IsValidation, true},
		{"unauthorized", Unauthorized("token rejected"), IsUnauthorized, true},
		{"unavailable", Wrap(errors.New("dial"), ErrCodeUnavailable, "backend"), IsUnavailable, true},
		{"internal", Internalf("code %d", 1), IsInternal, true},
		{"wrapped chain", fmt.Errorf("outer: %w", Unauthorized("x")), IsUnauthorized, true},
		{"plain error", errors.New("plain"), IsNotFound, false},
		{"nil", nil, IsValidation, false},
		{"wrong code", Validation("x"), IsTimeout, false},
		{"canceled", Wrap(context.Canceled, ErrCodeCanceled, "x"), IsCanceled, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("predicate(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(fmt.Errorf("wrap: %w", NotFound("x"))); got != ErrCodeNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}
