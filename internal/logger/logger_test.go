package logger

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
)

type staticChecker bool

func (s staticChecker) IsVerbose() bool { return bool(s) }

func TestVerboseGating(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		want    []string
		absent  []string
	}{
		{
			name:    "quiet",
			verbose: false,
			want:    []string{"WARN [session] careful", "ERROR [session] broke"},
			absent:  []string{"DEBUG", "INFO"},
		},
		{
			name:    "verbose",
			verbose: true,
			want:    []string{"DEBUG [session] detail 3", "INFO [session] hello", "WARN", "ERROR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New("session", staticChecker(tt.verbose))
			l.SetOutput(&buf)

			l.Debug("detail %d", 3)
			l.Info("hello")
			l.Warn("careful")
			l.Error("broke")

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(out, a) {
					t.Errorf("output has %q:\n%s", a, out)
				}
			}
		})
	}
}

func TestLineFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithCallback("", func() bool { return true })
	l.SetOutput(&buf)
	l.InfoWithFields("rendered", []Field{F("backend", "svg"), Count(2)})

	re := regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\.\d{3}\] INFO \[main\] rendered \[backend=svg count=2\]\n$`)
	if !re.MatchString(buf.String()) {
		t.Errorf("line %q does not match %s", buf.String(), re)
	}
}

func TestWithAndDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	root := New("cli", staticChecker(false))
	root.SetOutput(&buf)

	sess := root.WithComponent("session").With(F("session", "abc"))
	sess.WarnWithFields("duplicate channel", []Field{F("channel", "x")})
	sess.Error("failed: %v", errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "WARN [session] duplicate channel [channel=x session=abc]") {
		t.Errorf("missing field line:\n%s", out)
	}
	if !strings.Contains(out, "ERROR [session] failed: boom [session=abc]") {
		t.Errorf("missing error line:\n%s", out)
	}

	// Redirecting the root redirects derived loggers.
	var other bytes.Buffer
	root.SetOutput(&other)
	sess.Warn("moved")
	if !strings.Contains(other.String(), "moved") {
		t.Error("derived logger did not follow SetOutput")
	}
}

func TestMessageWithoutArgsKeepsPercent(t *testing.T) {
	var buf bytes.Buffer
	l := New("x", nil)
	l.SetOutput(&buf)
	l.Warn("100% done")
	if !strings.Contains(buf.String(), "100% done") {
		t.Errorf("got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("nothing")
	if l.IsVerbose() {
		t.Error("Nop logger is verbose")
	}
}

func TestErrorWithFieldsIgnoresVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := New("watch", staticChecker(false))
	l.SetOutput(&buf)

	l.ErrorWithFields("render failed", []Field{F("file", "a.csv")})
	if !strings.Contains(buf.String(), "ERROR [watch] render failed [file=a.csv]") {
		t.Errorf("output = %q", buf.String())
	}
}
