package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "message only",
			err:      &Error{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "with component",
			err:      &Error{Component: "detect", Message: "probe failed"},
			expected: "[detect] probe failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, "wrapper")

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	errNoCause := New("no cause")
	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected int
	}{
		{"runtime", New("boom"), ExitRuntimeError},
		{"not found", NotFound("toolchain", "gcc"), ExitEnvironmentError},
		{"validation", Validation("missing script"), ExitEnvironmentError},
		{"activation", Activation("failed", nil), ExitEnvironmentError},
		{"invalid argument", InvalidArgument("family", "zcc", []string{"gcc"}), ExitArgumentError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	if got := GetExitCode(nil); got != ExitSuccess {
		t.Errorf("GetExitCode(nil) = %d, want %d", got, ExitSuccess)
	}
	if got := GetExitCode(errors.New("plain")); got != ExitRuntimeError {
		t.Errorf("GetExitCode(plain) = %d, want %d", got, ExitRuntimeError)
	}
	if got := GetExitCode(InvalidArgument("arch", "mips", nil)); got != ExitArgumentError {
		t.Errorf("GetExitCode(invalid argument) = %d, want %d", got, ExitArgumentError)
	}
}

func TestInvalidArgument_EnumeratesValidValues(t *testing.T) {
	err := InvalidArgument("toolchain family", "zcc", []string{"gcc", "clang", "msvc"})

	if !strings.Contains(err.Message, "gcc, clang, msvc") {
		t.Errorf("Message = %q, want enumeration of valid values", err.Message)
	}
	if !strings.Contains(err.Suggestion, "gcc, clang, msvc") {
		t.Errorf("Suggestion = %q, want enumeration of valid values", err.Suggestion)
	}
	if !IsKind(err, KindInvalidArgument) {
		t.Error("IsKind(KindInvalidArgument) = false, want true")
	}
}

func TestIsKind(t *testing.T) {
	if IsKind(errors.New("plain"), KindRuntime) {
		t.Error("IsKind(plain, KindRuntime) = true, want false")
	}
	if !IsKind(NotFound("x", "y"), KindNotFound) {
		t.Error("IsKind(NotFound, KindNotFound) = false, want true")
	}
	if IsKind(NotFound("x", "y"), KindValidation) {
		t.Error("IsKind(NotFound, KindValidation) = true, want false")
	}
}

func TestWithComponent(t *testing.T) {
	err := Validation("script missing").WithComponent("envsession")

	if err.Component != "envsession" {
		t.Errorf("Component = %q, want envsession", err.Component)
	}
	if got := err.Error(); got != "[envsession] script missing" {
		t.Errorf("Error() = %q, want component prefix", got)
	}
	if !IsKind(err, KindValidation) {
		t.Error("WithComponent changed the error kind")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(Validation("bad")); got != KindValidation {
		t.Errorf("KindOf(Validation) = %v, want KindValidation", got)
	}
	if got := KindOf(errors.New("plain")); got != KindRuntime {
		t.Errorf("KindOf(plain) = %v, want KindRuntime", got)
	}
}

func TestMessageOf(t *testing.T) {
	err := NotFound("toolchain", "gcc").WithComponent("registry")
	if got := MessageOf(err); strings.Contains(got, "[registry]") {
		t.Errorf("MessageOf() = %q, want bare message without component prefix", got)
	}
	if got := MessageOf(errors.New("plain")); got != "plain" {
		t.Errorf("MessageOf(plain) = %q, want plain", got)
	}
}

func TestSuggestionOf(t *testing.T) {
	if got := SuggestionOf(NotFoundWithSuggestion("toolchain", "msvc", "install Visual Studio")); got != "install Visual Studio" {
		t.Errorf("SuggestionOf() = %q, want %q", got, "install Visual Studio")
	}
	if got := SuggestionOf(errors.New("plain")); got != "" {
		t.Errorf("SuggestionOf(plain) = %q, want empty", got)
	}
}
