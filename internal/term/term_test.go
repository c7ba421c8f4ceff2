package term

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintln_WritesToStdout(t *testing.T) {
	defer Reset()
	var buf bytes.Buffer
	SetOutput(&buf)

	Println("hello")

	if got := buf.String(); got != "hello\n" {
		t.Errorf("Println output = %q, want %q", got, "hello\n")
	}
}

func TestSilent_SuppressesStdout(t *testing.T) {
	defer Reset()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetSilent(true)

	Print("a")
	Printf("%s", "b")
	Println("c")

	if buf.Len() != 0 {
		t.Errorf("silent mode should suppress stdout, got %q", buf.String())
	}
}

func TestSilent_DoesNotSuppressWarnError(t *testing.T) {
	defer Reset()
	var errBuf bytes.Buffer
	SetErrOutput(&errBuf)
	SetSilent(true)

	Warn("careful: %s", "x")
	Error("broken: %s", "y")

	out := errBuf.String()
	if !strings.Contains(out, "Warning: careful: x") {
		t.Errorf("expected warning in stderr, got %q", out)
	}
	if !strings.Contains(out, "Error: broken: y") {
		t.Errorf("expected error in stderr, got %q", out)
	}
}

func TestStdout_SilentReturnsDiscard(t *testing.T) {
	defer Reset()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetSilent(true)

	w := Stdout()
	w.Write([]byte("invisible"))

	if buf.Len() != 0 {
		t.Errorf("Stdout() in silent mode should discard, got %q", buf.String())
	}
}

func TestIsTTY_FalseForBuffer(t *testing.T) {
	defer Reset()
	var buf bytes.Buffer
	SetOutput(&buf)

	if IsTTY() {
		t.Error("IsTTY() = true for a bytes.Buffer, want false")
	}
}
