package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/models"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrUnknownCommand = errors.New("unknown cart command")
)

// Command is a mutation dispatched to a Store.
type Command interface {
	commandName() string
}

// AddToCart adds Quantity units, or one when Quantity is unset.
type AddToCart struct {
	ProductID int
	Quantity  int
}

type SetQuantity struct {
	ProductID int
	Quantity  int
}

type ClearCart struct{}

func (AddToCart) commandName() string   { return "add_to_cart" }
func (SetQuantity) commandName() string { return "set_quantity" }
func (ClearCart) commandName() string   { return "clear_cart" }

// Name returns the wire name of a command, used for logging and events.
func Name(cmd Command) string {
	return cmd.commandName()
}

// ProductLookup resolves product ids for AddToCart.
type ProductLookup interface {
	Find(ctx context.Context, id int) (models.Product, error)
}

// Dispatch applies cmd to the store. Only AddToCart can fail, and only when
// the product id cannot be resolved.
func (s *Store) Dispatch(ctx context.Context, products ProductLookup, cmd Command) error {
	switch c := cmd.(type) {
	case AddToCart:
		p, err := products.Find(ctx, c.ProductID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			return fmt.Errorf("%w: %d", ErrUnknownProduct, c.ProductID)
		}
		if err != nil {
			return fmt.Errorf("add product %d: %w", c.ProductID, err)
		}
		s.AddN(p, c.Quantity)
	case SetQuantity:
		s.SetQuantity(c.ProductID, c.Quantity)
	case ClearCart:
		s.Clear()
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	return nil
}
