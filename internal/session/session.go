// Package session drives the interactive invoice and delivery rate prompts.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Simplici0/tileshop/internal/config"
	"github.com/Simplici0/tileshop/internal/pricing"
	"github.com/Simplici0/tileshop/internal/report"
)

// ErrInvalidNumber is returned when an answer cannot be read as a decimal number.
var ErrInvalidNumber = errors.New("invalid number")

const (
	banner = "=== Daniel's One Stop Tile Shop ==="

	promptRoomWidth    = "Enter room width  (feet): "
	promptRoomLength   = "Enter room length (feet): "
	promptTileWidth    = "Enter tile width  (inches): "
	promptTileLength   = "Enter tile length (inches): "
	promptTileCost     = "Enter cost per tile ($): "
	promptDeliveryBase = "Enter base delivery charge for <=50 km ($): "

	msgInvalidInvoiceInput  = "Invalid input. Please enter numeric values."
	msgInvalidDeliveryInput = "Invalid input. Skipping delivery table."
	msgZeroTileArea         = "Invalid input. Tile dimensions must be non-zero."
	msgNonFiniteTileCount   = "Invalid input. Please enter finite values."
	msgQuantityOutOfRange   = "Invalid input. Quantities are too large to invoice."
)

// line is one answer read from the input, or the reason none could be read.
type line struct {
	text string
	err  error
}

type session struct {
	in    io.Reader
	lines chan line
	done  chan struct{}
	out   io.Writer
	rates pricing.Rates
	log   logrus.FieldLogger
	err   error
}

// Run prompts for the job dimensions, prints the invoice, then prompts for the
// base delivery charge and prints the delivery rate table. Malformed answers are
// reported on out and end the run without an error; the returned error is
// non-nil only when out cannot be written or ctx is done.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg config.Config, log logrus.FieldLogger) error {
	s := &session{
		in:    in,
		done:  make(chan struct{}),
		out:   out,
		rates: cfg.Rates,
		log:   log,
	}
	defer close(s.done)

	s.run(ctx)
	return s.err
}

// scan feeds input lines to the session until the input ends or the session
// is over. A blocked read keeps this goroutine alive until the input yields.
func (s *session) scan() {
	defer close(s.lines)

	sc := bufio.NewScanner(s.in)
	for {
		var l line
		if sc.Scan() {
			l.text = sc.Text()
		} else if l.err = sc.Err(); l.err == nil {
			l.err = io.EOF
		}

		select {
		case s.lines <- l:
		case <-s.done:
			return
		}
		if l.err != nil {
			return
		}
	}
}

func (s *session) run(ctx context.Context) {
	s.println(banner)
	s.println()

	order, err := s.readOrder(ctx)
	if err != nil {
		s.log.WithError(err).Warn("invoice input rejected")
		s.println(msgInvalidInvoiceInput)
		return
	}
	s.log.WithFields(logrus.Fields{
		"room_width_ft":  order.RoomWidthFt,
		"room_length_ft": order.RoomLengthFt,
		"tile_width_in":  order.TileWidthIn,
		"tile_length_in": order.TileLengthIn,
		"tile_cost":      order.TileCost,
	}).Debug("order read")

	inv, err := pricing.Calculate(order, s.rates)
	switch {
	case errors.Is(err, pricing.ErrZeroTileArea):
		s.log.WithError(err).Warn("invoice not computed")
		s.println(msgZeroTileArea)
		return
	case errors.Is(err, pricing.ErrTileCountNotFinite):
		s.log.WithError(err).Warn("invoice not computed")
		s.println(msgNonFiniteTileCount)
		return
	case errors.Is(err, pricing.ErrQuantityOutOfRange):
		s.log.WithError(err).Warn("invoice not computed")
		s.println(msgQuantityOutOfRange)
		return
	case err != nil:
		s.fail(err)
		return
	}
	s.log.WithFields(logrus.Fields{
		"tiles":        inv.TilesQty,
		"grout_bags":   inv.GroutBags,
		"thinset_bags": inv.ThinsetBags,
		"bill":         inv.Bill,
	}).Debug("invoice computed")

	s.println()
	s.write(func(w io.Writer) error { return report.WriteInvoice(w, inv) })

	base, err := s.readNumber(ctx, promptDeliveryBase)
	if err != nil {
		s.log.WithError(err).Warn("delivery input rejected")
		s.println(msgInvalidDeliveryInput)
		return
	}
	s.log.WithField("base_charge", base).Debug("delivery base read")

	s.println()
	s.write(func(w io.Writer) error { return report.WriteDeliveryTable(w, pricing.DeliveryRates(base, s.rates)) })
	s.println()
}

func (s *session) readOrder(ctx context.Context) (pricing.Order, error) {
	var order pricing.Order
	fields := []struct {
		prompt string
		dst    *float64
	}{
		{promptRoomWidth, &order.RoomWidthFt},
		{promptRoomLength, &order.RoomLengthFt},
		{promptTileWidth, &order.TileWidthIn},
		{promptTileLength, &order.TileLengthIn},
		{promptTileCost, &order.TileCost},
	}
	for _, f := range fields {
		v, err := s.readNumber(ctx, f.prompt)
		if err != nil {
			return pricing.Order{}, err
		}
		*f.dst = v
	}
	return order, nil
}

// readNumber prints prompt and parses the next input line as a float.
func (s *session) readNumber(ctx context.Context, prompt string) (float64, error) {
	if err := ctx.Err(); err != nil {
		s.fail(err)
		return 0, err
	}

	s.print(prompt)
	if s.err != nil {
		return 0, s.err
	}

	if s.lines == nil {
		s.lines = make(chan line)
		go s.scan()
	}

	var l line
	select {
	case <-ctx.Done():
		s.fail(ctx.Err())
		return 0, ctx.Err()
	case got, ok := <-s.lines:
		l = got
		if !ok {
			l.err = io.EOF
		}
	}
	if l.err != nil {
		return 0, fmt.Errorf("%w: read %q: %w", ErrInvalidNumber, strings.TrimSpace(prompt), l.err)
	}

	return parseNumber(l.text)
}

func (s *session) print(a ...any) {
	if s.err != nil {
		return
	}
	if _, err := fmt.Fprint(s.out, a...); err != nil {
		s.fail(fmt.Errorf("write output: %w", err))
	}
}

func (s *session) println(a ...any) {
	if s.err != nil {
		return
	}
	if _, err := fmt.Fprintln(s.out, a...); err != nil {
		s.fail(fmt.Errorf("write output: %w", err))
	}
}

func (s *session) write(render func(io.Writer) error) {
	if s.err != nil {
		return
	}
	if err := render(s.out); err != nil {
		s.fail(err)
	}
}

func (s *session) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}
