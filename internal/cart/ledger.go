package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Line is one (product, size) selection. Price is frozen at add time and
// never re-synced to later catalog changes.
type Line struct {
	ProductID    uint            `json:"productId"`
	SizeID       uint            `json:"sizeId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage"`
	SizeLabel    string          `json:"sizeLabel"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
}

// ID identifies the line by its (product, size) pair.
func (l Line) ID() string {
	return LineID(l.ProductID, l.SizeID)
}

// Subtotal is price times quantity, derived on read.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineID builds the external identifier for a (product, size) pair.
func LineID(productID, sizeID uint) string {
	return fmt.Sprintf("%d-%d", productID, sizeID)
}

// Ledger holds a session's cart lines in add order. A line is either present
// with quantity >= 1 or absent; mutations that would leave a zero-quantity
// line remove it instead.
type Ledger struct {
	Lines []Line `json:"lines"`
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Lines: []Line{}}
}

// Add merges the line into the ledger. An existing line for the same
// (product, size) pair gains the quantity and keeps its frozen price and
// position; otherwise the line is appended.
func (g *Ledger) Add(line Line) {
	if line.Quantity < 1 {
		return
	}
	for i := range g.Lines {
		if g.Lines[i].ID() == line.ID() {
			g.Lines[i].Quantity += line.Quantity
			return
		}
	}
	g.Lines = append(g.Lines, line)
}

// UpdateQuantity replaces a line's quantity. A target of zero or less removes
// the line. Returns false when the line is absent.
func (g *Ledger) UpdateQuantity(lineID string, quantity int) bool {
	for i := range g.Lines {
		if g.Lines[i].ID() != lineID {
			continue
		}
		if quantity <= 0 {
			g.Lines = append(g.Lines[:i], g.Lines[i+1:]...)
		} else {
			g.Lines[i].Quantity = quantity
		}
		return true
	}
	return false
}

// Remove deletes the line if present. Removing an absent line is a no-op.
func (g *Ledger) Remove(lineID string) {
	for i := range g.Lines {
		if g.Lines[i].ID() == lineID {
			g.Lines = append(g.Lines[:i], g.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the ledger.
func (g *Ledger) Clear() {
	g.Lines = g.Lines[:0]
}

// Count sums quantities across all lines.
func (g *Ledger) Count() int {
	total := 0
	for i := range g.Lines {
		total += g.Lines[i].Quantity
	}
	return total
}

// Total sums subtotals across all lines.
func (g *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range g.Lines {
		total = total.Add(g.Lines[i].Subtotal())
	}
	return total
}
