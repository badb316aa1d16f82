package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/Simplici0/tileshop/internal/config"
)

const header = "=== Daniel's One Stop Tile Shop ===\n\n"

func runSession(t *testing.T, input string) (string, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	var out bytes.Buffer
	if err := Run(context.Background(), strings.NewReader(input), &out, config.Load(false), logger); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String(), hook
}

func TestRun_FullSession(t *testing.T) {
	got, hook := runSession(t, "9.5\n11\n12\n12\n2.5\n 20 \n")

	want := header +
		"Enter room width  (feet): Enter room length (feet): Enter tile width  (inches): Enter tile length (inches): Enter cost per tile ($): \n" +
		strings.Join([]string{
			"DANIEL'S ONE STOP TILE SHOP",
			"INVOICE",
			"ITEM                       QTY   UNIT COST    SUBTOTAL",
			"------------------------------------------------------",
			"Tiles                      115        2.50      287.50",
			"Grout                        1       80.00       80.00",
			"Thinset                      2       50.00      100.00",
			"",
			"                                   Total Cost:  467.50",
			"                                   VAT (12.5%):  58.44",
			"                                  Bill Amount:  525.94",
			"",
			"WE ACCEPT CASH, LINX, OR CREDIT CARD FOR YOUR CONVENIENCE",
			"",
			"Enter base delivery charge for <=50 km ($): ",
			"DELIVERY RATES (within 50 km)",
			"Distance  Base Charge   Surcharge   Total     ",
			"----------------------------------------------",
			"5 km               20.00       20.00     40.00",
			"10 km              20.00       40.00     60.00",
			"15 km              20.00       60.00     80.00",
			"20 km              20.00       80.00    100.00",
			"25 km              20.00      100.00    120.00",
			"30 km              20.00      120.00    140.00",
			"35 km              20.00      140.00    160.00",
			"40 km              20.00      160.00    180.00",
			"45 km              20.00      180.00    200.00",
			"50 km              20.00      200.00    220.00",
			"",
		}, "\n") + "\n"

	if got != want {
		t.Fatalf("session output mismatch\n got:\n%s\nwant:\n%s", got, want)
	}

	for _, entry := range hook.AllEntries() {
		if entry.Level <= logrus.WarnLevel {
			t.Fatalf("unexpected %s log: %s", entry.Level, entry.Message)
		}
	}
	if last := hook.LastEntry(); last == nil || last.Message != "delivery base read" {
		t.Fatalf("last log entry = %+v, want delivery base read", last)
	}
}

func TestRun_InvalidInvoiceInputStopsImmediately(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		prompts string
	}{
		{
			name:    "first prompt",
			input:   "wide\n",
			prompts: "Enter room width  (feet): ",
		},
		{
			name:    "second prompt",
			input:   "10\nabc\n12\n12\n5\n20\n",
			prompts: "Enter room width  (feet): Enter room length (feet): ",
		},
		{
			name:    "tile cost with currency sign",
			input:   "10\n10\n12\n12\n$5\n",
			prompts: "Enter room width  (feet): Enter room length (feet): Enter tile width  (inches): Enter tile length (inches): Enter cost per tile ($): ",
		},
		{
			name:    "empty answer",
			input:   "10\n\n",
			prompts: "Enter room width  (feet): Enter room length (feet): ",
		},
		{
			name:    "input ends early",
			input:   "10\n10\n",
			prompts: "Enter room width  (feet): Enter room length (feet): Enter tile width  (inches): ",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, hook := runSession(t, tc.input)

			want := header + tc.prompts + "Invalid input. Please enter numeric values.\n"
			if got != want {
				t.Fatalf("output = %q, want %q", got, want)
			}

			last := hook.LastEntry()
			if last == nil || last.Level != logrus.WarnLevel {
				t.Fatalf("last log entry = %+v, want warning", last)
			}
			if err, _ := last.Data[logrus.ErrorKey].(error); !errors.Is(err, ErrInvalidNumber) {
				t.Fatalf("logged error = %v, want ErrInvalidNumber", err)
			}
		})
	}
}

func TestRun_InvalidDeliveryInputKeepsInvoice(t *testing.T) {
	got, _ := runSession(t, "10\n10\n12\n12\n5\nfree\n")

	if !strings.Contains(got, "Bill Amount:  821.25\n") {
		t.Fatalf("invoice missing from output:\n%s", got)
	}
	if !strings.HasSuffix(got, "Enter base delivery charge for <=50 km ($): Invalid input. Skipping delivery table.\n") {
		t.Fatalf("unexpected output tail:\n%s", got)
	}
	if strings.Contains(got, "DELIVERY RATES") {
		t.Fatalf("delivery table printed after invalid input:\n%s", got)
	}
}

func TestRun_ZeroTileDimension(t *testing.T) {
	got, _ := runSession(t, "10\n10\n0\n12\n5\n20\n")

	if !strings.HasSuffix(got, "Enter cost per tile ($): Invalid input. Tile dimensions must be non-zero.\n") {
		t.Fatalf("unexpected output:\n%s", got)
	}
	if strings.Contains(got, "INVOICE") {
		t.Fatalf("invoice printed for zero tile area:\n%s", got)
	}
}

func TestRun_InfiniteDimension(t *testing.T) {
	got, _ := runSession(t, "inf\n10\n12\n12\n5\n")

	if !strings.HasSuffix(got, "Invalid input. Please enter finite values.\n") {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestRun_NegativeDeliveryBaseAccepted(t *testing.T) {
	got, _ := runSession(t, "10\n10\n12\n12\n5\n-20\n")

	if !strings.Contains(got, "25 km             -20.00      100.00     80.00\n") {
		t.Fatalf("negative base charge row missing:\n%s", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRun_ReturnsWriteFailure(t *testing.T) {
	logger, _ := test.NewNullLogger()

	err := Run(context.Background(), strings.NewReader("10\n"), failingWriter{}, config.Load(false), logger)
	if err == nil {
		t.Fatalf("expected write error")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Run(ctx, strings.NewReader("10\n10\n12\n12\n5\n20\n"), &out, config.Load(false), logger)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got := out.String(); got != header {
		t.Fatalf("output = %q, want only the banner", got)
	}
}

// promptWriter records output and reports when the text contains want.
type promptWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	want string
	seen chan struct{}
	once sync.Once
}

func (w *promptWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, err := w.buf.Write(p)
	if strings.Contains(w.buf.String(), w.want) {
		w.once.Do(func() { close(w.seen) })
	}
	return n, err
}

func TestRun_CancelWhileWaitingForAnswer(t *testing.T) {
	logger, _ := test.NewNullLogger()
	pr, pw := io.Pipe()
	defer pw.Close()

	out := &promptWriter{want: "Enter room length (feet): ", seen: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, pr, out, config.Load(false), logger)
	}()

	if _, err := io.WriteString(pw, "10\n"); err != nil {
		t.Fatalf("write answer: %v", err)
	}
	select {
	case <-out.seen:
	case <-time.After(2 * time.Second):
		t.Fatalf("second prompt never shown")
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run still blocked after cancel")
	}
}

func TestRun_QuantityTooLarge(t *testing.T) {
	got, _ := runSession(t, "1e150\n1e150\n12\n12\n5\n")

	if !strings.HasSuffix(got, "Enter cost per tile ($): Invalid input. Quantities are too large to invoice.\n") {
		t.Fatalf("unexpected output:\n%s", got)
	}
	if strings.Contains(got, "INVOICE") {
		t.Fatalf("invoice printed for out of range quantities:\n%s", got)
	}
}

func TestRun_AcceptsGroupedDigits(t *testing.T) {
	got, _ := runSession(t, "1_0\n10\n12\n12\n5\n2_0\n")

	if !strings.Contains(got, "Bill Amount:  821.25\n") {
		t.Fatalf("invoice missing from output:\n%s", got)
	}
	if !strings.Contains(got, "25 km              20.00      100.00    120.00\n") {
		t.Fatalf("delivery row missing:\n%s", got)
	}
}
