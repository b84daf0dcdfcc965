package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodeSearch, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorWrapping(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q", nilErr.Error())
	}

	src := stderrs.New("root")
	e := Wrapf(src, ErrorCodeUnavailable, "store %s", "down")
	if want := "store down: root"; e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
	if !stderrs.Is(e, src) || Root(e) != src {
		t.Fatalf("cause lost")
	}
	if got, ok := As(e); !ok || got.Code() != ErrorCodeUnavailable {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}
	if CodeOf(src) != ErrorCodeUnknown {
		t.Fatalf("foreign error should be Unknown")
	}
}

func TestWithFieldIsCopyOnWrite(t *testing.T) {
	base := InvalidArgf("limit out of range")
	tagged := WithOp(WithField(base, "limit"), "search")

	b, _ := As(base)
	tg, _ := As(tagged)
	if b.Field() != "" || b.Op() != "" {
		t.Fatalf("base mutated: field=%q op=%q", b.Field(), b.Op())
	}
	if tg.Field() != "limit" || tg.Op() != "search" {
		t.Fatalf("tags missing: field=%q op=%q", tg.Field(), tg.Op())
	}

	foreign := stderrs.New("x")
	if WithField(foreign, "f") != foreign {
		t.Fatalf("foreign error should pass through")
	}
}

func TestWireAndHTTP(t *testing.T) {
	if s, w := HTTP(nil); s != http.StatusOK || w != (Wire{}) {
		t.Fatalf("HTTP(nil) = %d %+v", s, w)
	}
	s, w := HTTP(WithField(Validationf("case_number is required"), "case_number"))
	if s != http.StatusBadRequest || w.Code != ErrorCodeValidation || w.Field != "case_number" {
		t.Fatalf("HTTP() = %d %+v", s, w)
	}
	if w := WireFrom(stderrs.New("plain")); w.Code != ErrorCodeUnknown || w.Message != "plain" {
		t.Fatalf("WireFrom foreign = %+v", w)
	}
}

func TestCodeStrings(t *testing.T) {
	if ErrorCodeSearch.String() != "search" || ErrorCodeUnavailable.String() != "unavailable" {
		t.Fatalf("unexpected labels")
	}
	if ErrorCode(9999).String() != "unknown" {
		t.Fatalf("default label")
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) {
		t.Fatalf("nil is not retryable")
	}
	if !Retryable(Unavailablef("engine down")) {
		t.Fatalf("unavailable should be retryable")
	}
	if Retryable(InvalidArgf("bad")) {
		t.Fatalf("invalid arg should not be retryable")
	}
}
