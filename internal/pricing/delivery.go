package pricing

import "iter"

// DeliveryRate is one row of the delivery rate table.
type DeliveryRate struct {
	DistanceKm int
	BaseCharge float64
	Surcharge  float64
	Total      float64
}

// DeliveryRates yields one row per step distance up to and including the
// maximum delivery distance.
func DeliveryRates(base float64, rates Rates) iter.Seq[DeliveryRate] {
	return func(yield func(DeliveryRate) bool) {
		if rates.DeliveryStepKm <= 0 {
			return
		}
		for km := rates.DeliveryStepKm; km <= rates.DeliveryMaxKm; km += rates.DeliveryStepKm {
			surcharge := rates.DeliverySurchargePerKm * float64(km)
			if !yield(DeliveryRate{
				DistanceKm: km,
				BaseCharge: base,
				Surcharge:  surcharge,
				Total:      base + surcharge,
			}) {
				return
			}
		}
	}
}
