package splits

import (
	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/model"
)

// NormalizeLine applies the per-item total policy to one line and returns the
// normalized copy:
//
//   - service: Total = Qty x Rate, sign following the rate (a negative rate
//     models a reversal of service income);
//   - discount/payment: Qty forced to 1, Rate forced negative, Total stores
//     the magnitude only;
//   - unresolved item: the line is returned as-is, Total untouched.
func NormalizeLine(line model.LineItem, items ItemResolver) model.LineItem {
	if line.ItemID == 0 || items == nil {
		return line
	}
	item, ok := items.Item(line.ItemID)
	if !ok {
		return line
	}

	if item.ReducesTotal() {
		line.Qty = decimal.NewFromInt(1)
		line.Rate = line.Rate.Abs().Neg()
		line.Total = line.Rate.Abs()
		return line
	}

	line.Total = line.Qty.Mul(line.Rate)
	return line
}

// NormalizeLines normalizes every line of a draft receipt.
func NormalizeLines(lines []model.LineItem, items ItemResolver) []model.LineItem {
	out := make([]model.LineItem, len(lines))
	for i, line := range lines {
		out[i] = NormalizeLine(line, items)
	}
	return out
}

// ReceiptTotal computes the display total of a receipt: service totals minus
// discount and payment magnitudes, floored at zero. Lines with unresolved
// items contribute their stored totals additively.
func ReceiptTotal(lines []model.LineItem, items ItemResolver) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.ItemID == 0 || items == nil {
			total = total.Add(line.Total)
			continue
		}
		item, ok := items.Item(line.ItemID)
		if !ok {
			total = total.Add(line.Total)
			continue
		}
		if item.ReducesTotal() {
			total = total.Sub(line.Total.Abs())
		} else {
			total = total.Add(line.Total)
		}
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
