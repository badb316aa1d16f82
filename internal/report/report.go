// Package report renders invoices and delivery rate tables as aligned console text.
package report

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/Simplici0/tileshop/internal/pricing"
)

const (
	itemWidth     = 24
	qtyWidth      = 6
	unitWidth     = 12
	subtotalWidth = 12
	invoiceWidth  = itemWidth + qtyWidth + unitWidth + subtotalWidth

	distanceWidth  = 10
	baseWidth      = 14
	surchargeWidth = 12
	totalWidth     = 10
	deliveryWidth  = distanceWidth + baseWidth + surchargeWidth + totalWidth
)

const (
	shopName      = "DANIEL'S ONE STOP TILE SHOP"
	invoiceTitle  = "INVOICE"
	paymentFooter = "WE ACCEPT CASH, LINX, OR CREDIT CARD FOR YOUR CONVENIENCE"
	deliveryTitle = "DELIVERY RATES (within 50 km)"
)

// WriteInvoice writes the invoice table followed by the totals and payment footer.
func WriteInvoice(w io.Writer, inv pricing.Invoice) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, shopName)
	fmt.Fprintln(bw, invoiceTitle)
	fmt.Fprintf(bw, "%-*s%*s%*s%*s\n", itemWidth, "ITEM", qtyWidth, "QTY", unitWidth, "UNIT COST", subtotalWidth, "SUBTOTAL")
	fmt.Fprintln(bw, strings.Repeat("-", invoiceWidth))

	for _, line := range inv.Lines() {
		fmt.Fprintf(bw, "%-*s%*d%*s%*s\n",
			itemWidth, line.Name,
			qtyWidth, line.Qty,
			unitWidth, money(line.UnitCost),
			subtotalWidth, money(line.Subtotal),
		)
	}

	fmt.Fprintln(bw)
	writeTotal(bw, "Total Cost:", inv.TotalBeforeVAT)
	writeTotal(bw, "VAT (12.5%):", inv.VAT)
	writeTotal(bw, "Bill Amount:", inv.Bill)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, paymentFooter)
	fmt.Fprintln(bw)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write invoice: %w", err)
	}
	return nil
}

// writeTotal right-aligns a summary line to the invoice width.
func writeTotal(w io.Writer, label string, value float64) {
	fmt.Fprintf(w, "%*s\n", invoiceWidth, label+"  "+money(value))
}

// WriteDeliveryTable writes one row per delivery distance.
func WriteDeliveryTable(w io.Writer, rows iter.Seq[pricing.DeliveryRate]) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, deliveryTitle)
	fmt.Fprintf(bw, "%-*s%-*s%-*s%-*s\n", distanceWidth, "Distance", baseWidth, "Base Charge", surchargeWidth, "Surcharge", totalWidth, "Total")
	fmt.Fprintln(bw, strings.Repeat("-", deliveryWidth))

	for row := range rows {
		fmt.Fprintf(bw, "%-*s%*s%*s%*s\n",
			distanceWidth, fmt.Sprintf("%d km", row.DistanceKm),
			baseWidth, fixed2(row.BaseCharge),
			surchargeWidth, fixed2(row.Surcharge),
			totalWidth, fixed2(row.Total),
		)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write delivery table: %w", err)
	}
	return nil
}
