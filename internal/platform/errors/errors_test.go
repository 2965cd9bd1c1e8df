package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeFileFormat, http.StatusUnprocessableEntity},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeEmptyResult, http.StatusNotFound},
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeTooLarge, http.StatusRequestEntityTooLarge},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeUnknownLoad, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	if ErrorCodeFileFormat.String() != "file_format" || ErrorCodeEmptyResult.String() != "empty_result" {
		t.Fatalf("unexpected names %q %q", ErrorCodeFileFormat, ErrorCodeEmptyResult)
	}
	if ErrorCode(9999).String() != "unknown" {
		t.Fatalf("out of range code should render unknown")
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := New(ErrorCodeValidation, "bad stuff")
	if CodeOf(e1) != ErrorCodeValidation {
		t.Fatalf("CodeOf(New) = %v", CodeOf(e1))
	}
	e2 := Newf(ErrorCodeFileFormat, "missing %d columns", 2)
	if got := e2.Error(); got != "missing 2 columns" {
		t.Fatalf("Newf().Error = %q", got)
	}

	src := stderrs.New("zip: not a valid zip file")
	e3 := Wrap(src, ErrorCodeFileFormat, "unreadable workbook")
	if u := stderrs.Unwrap(e3); u == nil || u != src {
		t.Fatalf("Wrap did not keep orig")
	}
	e4 := Wrapf(src, ErrorCodeUnknownLoad, "load %s", "visits")
	if want := "load visits: zip: not a valid zip file"; e4.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", e4.Error(), want)
	}
	if got, ok := As(e4); !ok || got.Code() != ErrorCodeUnknownLoad || got.Message() != "load visits" {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	// copy-on-write mutators
	e5 := WithOp(e3, "telemetry")
	e6 := WithField(e5, "file")
	if OpOf(e6) != "telemetry" {
		t.Fatalf("OpOf = %q", OpOf(e6))
	}
	if fe, _ := As(e6); fe.Field() != "file" {
		t.Fatalf("WithField failed")
	}
	if OpOf(e3) != "" {
		t.Fatalf("copy-on-write mutated original")
	}
	if WithOp(src, "x") != src || OpOf(src) != "" {
		t.Fatalf("foreign errors pass through mutators unchanged")
	}

	// Wire carries the cause so users see why a file was rejected
	if w := WireFrom(e3); w.Code != ErrorCodeFileFormat || w.Message != "unreadable workbook: zip: not a valid zip file" {
		t.Fatalf("WireFrom(ours) mismatch: %+v", w)
	}
	if wf := WireFrom(nil); wf != (Wire{}) {
		t.Fatalf("WireFrom(nil) expected zero, got %+v", wf)
	}
	if wf := WireFrom(src); wf.Code != ErrorCodeUnknown || wf.Message != src.Error() {
		t.Fatalf("WireFrom(foreign) mismatch: %+v", wf)
	}

	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) status = %d", st)
	}
	if st, w := HTTP(e3); st != http.StatusUnprocessableEntity || w.Code != ErrorCodeFileFormat {
		t.Fatalf("HTTP(e3) = %d %+v", st, w)
	}

	if !IsCode(FileFormatf("x"), ErrorCodeFileFormat) ||
		!IsCode(EmptyResultf("x"), ErrorCodeEmptyResult) ||
		!IsCode(UnknownLoadf("x"), ErrorCodeUnknownLoad) ||
		!IsCode(Validationf("x"), ErrorCodeValidation) ||
		!IsCode(InvalidArgf("x"), ErrorCodeInvalidArgument) ||
		!IsCode(NotFoundf("x"), ErrorCodeNotFound) ||
		!IsCode(TooLargef("x"), ErrorCodeTooLarge) ||
		!IsCode(PanicErrf("x"), ErrorCodePanic) ||
		!IsCode(Unavailablef("x"), ErrorCodeUnavailable) ||
		!IsCode(Internalf("x"), ErrorCodeUnknown) {
		t.Fatalf("sugar helpers code mismatch")
	}
	if IsCode(nil, ErrorCodeUnknown) {
		t.Fatalf("nil error must not match any code")
	}

	if WrapIf(nil, ErrorCodeUnknownLoad, "ignored") != nil {
		t.Fatalf("WrapIf(nil) should return nil")
	}
	if WrapIf(src, ErrorCodeUnknownLoad, "load") == nil {
		t.Fatalf("WrapIf(non-nil) should wrap")
	}

	deep := fmt.Errorf("level2: %w", fmt.Errorf("level1: %w", src))
	if got := Root(deep); got != src {
		t.Fatalf("Root() failed, got %v", got)
	}
}

func TestIsWarning(t *testing.T) {
	if !IsWarning(EmptyResultf("no rows")) {
		t.Fatalf("empty result is a warning")
	}
	if !IsWarning(fmt.Errorf("run: %w", EmptyResultf("no rows"))) {
		t.Fatalf("wrapped empty result is still a warning")
	}
	if IsWarning(FileFormatf("bad")) || IsWarning(nil) {
		t.Fatalf("failures are not warnings")
	}
}
