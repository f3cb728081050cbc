// Package cart holds a shopper's cart lines. A Store is the single source of
// truth for what is in the cart; views read it, they never keep copies.
package cart

import (
	"slices"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// Line is one product in the cart. Name, UnitPrice and Image are captured
// when the product is first added and are not re-synced with the catalog.
type Line struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

func (l Line) Price() decimal.Decimal { return l.UnitPrice }
func (l Line) Qty() int               { return l.Quantity }

// Store is not safe for concurrent use; the owning session serialises access.
type Store struct {
	lines []Line
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) index(productID int) int {
	return slices.IndexFunc(s.lines, func(l Line) bool { return l.ProductID == productID })
}

// Add puts one unit of p in the cart, merging into an existing line.
func (s *Store) Add(p models.Product) Line {
	return s.AddN(p, 1)
}

// AddN adds n units of p; n below 1 counts as 1.
func (s *Store) AddN(p models.Product, n int) Line {
	n = max(n, 1)
	if i := s.index(p.ID); i >= 0 {
		s.lines[i].Quantity += n
		return s.lines[i]
	}

	l := Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Image:     p.Image,
		Quantity:  n,
	}
	s.lines = append(s.lines, l)
	return l
}

// SetQuantity replaces the quantity of a line. A quantity of zero or less
// removes the line. Unknown product ids are ignored.
func (s *Store) SetQuantity(productID, quantity int) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}
	if i := s.index(productID); i >= 0 {
		s.lines[i].Quantity = quantity
	}
}

func (s *Store) Remove(productID int) {
	s.lines = slices.DeleteFunc(s.lines, func(l Line) bool { return l.ProductID == productID })
}

func (s *Store) Clear() {
	s.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []Line {
	return slices.Clone(s.lines)
}

func (s *Store) Line(productID int) (Line, bool) {
	if i := s.index(productID); i >= 0 {
		return s.lines[i], true
	}
	return Line{}, false
}

func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

// LineCount is the number of distinct products.
func (s *Store) LineCount() int {
	return len(s.lines)
}

// TotalQuantity is the sum of all quantities; the header badge shows this.
func (s *Store) TotalQuantity() int {
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}
