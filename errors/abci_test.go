package errors

import (
	"fmt"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain registered error": {
			err:      ErrUnauthorized,
			debug:    false,
			wantLog:  "unauthorized",
			wantCode: ErrUnauthorized.code,
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrUnauthorized, "foo"), "bar"),
			debug:    false,
			wantLog:  "bar: foo: unauthorized",
			wantCode: ErrUnauthorized.code,
		},
		"nil is empty message": {
			err:      nil,
			debug:    false,
			wantLog:  "",
			wantCode: SuccessABCICode,
		},
		"nil registered error is not an error": {
			err:      (*Error)(nil),
			debug:    false,
			wantLog:  "",
			wantCode: SuccessABCICode,
		},
		"stdlib is generic message": {
			err:      fmt.Errorf("stdlib error"),
			debug:    false,
			wantLog:  "internal error",
			wantCode: internalABCICode,
		},
		"stdlib returns error message in debug mode": {
			err:      fmt.Errorf("stdlib error"),
			debug:    true,
			wantLog:  "stdlib error",
			wantCode: internalABCICode,
		},
		"wrapped stdlib is only a generic message": {
			err:      Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			debug:    false,
			wantLog:  "internal error",
			wantCode: internalABCICode,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestABCIErrorRestoresKind(t *testing.T) {
	code, log := ABCIInfo(Wrap(ErrState, "frozen"), false)
	err := ABCIError(code, log)
	if !ErrState.Is(err) {
		t.Fatalf("want state error, got %v", err)
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic, false); ErrPanic.Is(err) {
		t.Error("reduct must not pass through panic error")
	}
	if err := Redact(ErrPanic, true); !ErrPanic.Is(err) {
		t.Error("reduct should pass through panic error in debug mode")
	}
	if err := Redact(ErrUnauthorized, false); !ErrUnauthorized.Is(err) {
		t.Error("reduct should pass through registered errors")
	}
	if err := Redact(fmt.Errorf("secret"), false); err.Error() != internalABCILog {
		t.Errorf("stdlib errors must be redacted, got %q", err)
	}
}
