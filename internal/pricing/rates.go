package pricing

// Rates holds the fixed pricing constants shared across calculations.
type Rates struct {
	VATRate             float64
	ExtraTilesFactor    float64
	SquareInchesPerFoot float64

	GroutLbPerSqFt float64
	GroutBagLb     float64
	GroutBagCost   float64

	ThinsetBagCoverageSqFt float64
	ThinsetBagCost         float64

	DeliverySurchargePerKm float64
	DeliveryStepKm         int
	DeliveryMaxKm          int
}

// DefaultRates returns the shop's price list.
func DefaultRates() Rates {
	return Rates{
		VATRate:             0.125,
		ExtraTilesFactor:    1.10,
		SquareInchesPerFoot: 144,

		GroutLbPerSqFt: 0.13,
		GroutBagLb:     25,
		GroutBagCost:   80,

		ThinsetBagCoverageSqFt: 90,
		ThinsetBagCost:         50,

		DeliverySurchargePerKm: 4,
		DeliveryStepKm:         5,
		DeliveryMaxKm:          50,
	}
}
