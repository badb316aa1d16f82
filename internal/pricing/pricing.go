package pricing

import (
	"errors"
	"fmt"
	"math"
)

// wholeTolerance absorbs float representation error, so 100 * 1.10 counts as
// 110 units rather than 111. It is absolute: a requirement more than this far
// above a whole number always rounds up.
const wholeTolerance = 1e-9

// maxQty bounds rounded quantities to the int range.
const maxQty = float64(math.MaxInt)

var (
	// ErrZeroTileArea is returned when the tile width or length is zero.
	ErrZeroTileArea = errors.New("tile area is zero")
	// ErrTileCountNotFinite is returned when the tile requirement is NaN or infinite.
	ErrTileCountNotFinite = errors.New("tile count is not finite")
	// ErrQuantityOutOfRange is returned when a rounded quantity does not fit an int.
	ErrQuantityOutOfRange = errors.New("quantity out of range")
)

// Order represents the job inputs used to estimate the materials invoice.
type Order struct {
	RoomWidthFt  float64
	RoomLengthFt float64
	TileWidthIn  float64
	TileLengthIn float64
	TileCost     float64
}

// Invoice contains all quantities and line-item values of the materials calculation.
type Invoice struct {
	TilesQty    int
	GroutBags   int
	ThinsetBags int

	TilesUnitCost   float64
	GroutUnitCost   float64
	ThinsetUnitCost float64

	TilesSubtotal   float64
	GroutSubtotal   float64
	ThinsetSubtotal float64

	TotalBeforeVAT float64
	VAT            float64
	Bill           float64
}

// Line is a single invoice row.
type Line struct {
	Name     string
	Qty      int
	UnitCost float64
	Subtotal float64
}

// Lines returns the invoice rows in print order.
func (inv Invoice) Lines() []Line {
	return []Line{
		{Name: "Tiles", Qty: inv.TilesQty, UnitCost: inv.TilesUnitCost, Subtotal: inv.TilesSubtotal},
		{Name: "Grout", Qty: inv.GroutBags, UnitCost: inv.GroutUnitCost, Subtotal: inv.GroutSubtotal},
		{Name: "Thinset", Qty: inv.ThinsetBags, UnitCost: inv.ThinsetUnitCost, Subtotal: inv.ThinsetSubtotal},
	}
}

// Calculate computes the materials invoice for an order.
func Calculate(order Order, rates Rates) (Invoice, error) {
	roomArea := order.RoomWidthFt * order.RoomLengthFt
	tileArea := (order.TileWidthIn * order.TileLengthIn) / rates.SquareInchesPerFoot
	if tileArea == 0 {
		return Invoice{}, ErrZeroTileArea
	}

	exactTiles := (roomArea / tileArea) * rates.ExtraTilesFactor
	if math.IsNaN(exactTiles) || math.IsInf(exactTiles, 0) {
		return Invoice{}, ErrTileCountNotFinite
	}
	tilesQty, err := ceilQty(exactTiles)
	if err != nil {
		return Invoice{}, fmt.Errorf("tiles: %w", err)
	}
	tilesSubtotal := float64(tilesQty) * order.TileCost

	groutLb := roomArea * rates.GroutLbPerSqFt
	groutBags, err := ceilQty(groutLb / rates.GroutBagLb)
	if err != nil {
		return Invoice{}, fmt.Errorf("grout: %w", err)
	}
	groutSubtotal := float64(groutBags) * rates.GroutBagCost

	thinsetBags, err := ceilQty(roomArea / rates.ThinsetBagCoverageSqFt)
	if err != nil {
		return Invoice{}, fmt.Errorf("thinset: %w", err)
	}
	thinsetSubtotal := float64(thinsetBags) * rates.ThinsetBagCost

	totalBeforeVAT := tilesSubtotal + groutSubtotal + thinsetSubtotal
	vat := totalBeforeVAT * rates.VATRate

	return Invoice{
		TilesQty:        tilesQty,
		GroutBags:       groutBags,
		ThinsetBags:     thinsetBags,
		TilesUnitCost:   order.TileCost,
		GroutUnitCost:   rates.GroutBagCost,
		ThinsetUnitCost: rates.ThinsetBagCost,
		TilesSubtotal:   tilesSubtotal,
		GroutSubtotal:   groutSubtotal,
		ThinsetSubtotal: thinsetSubtotal,
		TotalBeforeVAT:  totalBeforeVAT,
		VAT:             vat,
		Bill:            totalBeforeVAT + vat,
	}, nil
}

// ceilQty rounds a real-valued requirement up to a whole unit count.
func ceilQty(x float64) (int, error) {
	c := math.Ceil(x - wholeTolerance)
	if math.IsNaN(c) || c >= maxQty || c < -maxQty {
		return 0, ErrQuantityOutOfRange
	}
	return int(c), nil
}
