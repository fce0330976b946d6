package cart

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rohandesai/brandline-backend/internal/catalog"
	"github.com/rohandesai/brandline-backend/pkg/config"
	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
)

type productFinder interface {
	GetProduct(ctx context.Context, id uint) (*catalog.ProductDTO, error)
}

// LineDTO is one cart line as returned to clients.
type LineDTO struct {
	ID           string          `json:"id"`
	ProductID    uint            `json:"productId"`
	SizeID       uint            `json:"sizeId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage"`
	SizeLabel    string          `json:"sizeLabel"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// CartDTO is the full cart payload with derived totals.
type CartDTO struct {
	Lines []LineDTO       `json:"lines"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// AddItemInput selects a product size to add.
type AddItemInput struct {
	ProductID uint `json:"productId"`
	SizeID    uint `json:"sizeId"`
	Quantity  int  `json:"quantity"`
}

// CheckoutResult carries the composed order message and the handoff link.
type CheckoutResult struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
}

// Service exposes the per-session cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (*CartDTO, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartDTO, error)
	UpdateItem(ctx context.Context, sessionID, lineID string, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, sessionID, lineID string) (*CartDTO, error)
	Clear(ctx context.Context, sessionID string) error
	Checkout(ctx context.Context, sessionID string) (*CheckoutResult, error)
}

type service struct {
	store          SnapshotStore
	products       productFinder
	checkoutNumber string
}

// NewService constructs a cart service instance.
func NewService(store SnapshotStore, products productFinder, cfg config.CartConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	return &service{
		store:          store,
		products:       products,
		checkoutNumber: strings.TrimSpace(cfg.CheckoutNumber),
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*CartDTO, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	ledger, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newCartDTO(ledger), nil
}

// AddItem freezes the size's current price into a line. Adding the same
// (product, size) pair again merges quantities onto the existing line.
func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartDTO, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	size, ok := findSize(product, input.SizeID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("size %d does not belong to product %d", input.SizeID, input.ProductID))
	}

	ledger, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ledger.Add(Line{
		ProductID:    product.ID,
		SizeID:       size.ID,
		ProductName:  product.Name,
		ProductImage: firstImage(product),
		SizeLabel:    size.Label,
		Price:        size.Price,
		Quantity:     input.Quantity,
	})
	if err := s.store.Save(ctx, sessionID, ledger); err != nil {
		return nil, err
	}
	return newCartDTO(ledger), nil
}

// UpdateItem replaces a line's quantity; zero or less removes the line.
func (s *service) UpdateItem(ctx context.Context, sessionID, lineID string, quantity int) (*CartDTO, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	ledger, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ledger.UpdateQuantity(lineID, quantity) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Cart item not found")
	}
	if err := s.store.Save(ctx, sessionID, ledger); err != nil {
		return nil, err
	}
	return newCartDTO(ledger), nil
}

// RemoveItem deletes a line. Removing an absent line is a no-op.
func (s *service) RemoveItem(ctx context.Context, sessionID, lineID string) (*CartDTO, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	ledger, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ledger.Remove(lineID)
	if err := s.store.Save(ctx, sessionID, ledger); err != nil {
		return nil, err
	}
	return newCartDTO(ledger), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	return s.store.Delete(ctx, sessionID)
}

// Checkout composes the numbered order message and the wa.me handoff link.
// The cart is left intact; the shopper clears it explicitly.
func (s *service) Checkout(ctx context.Context, sessionID string) (*CheckoutResult, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	ledger, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(ledger.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	message := composeOrderMessage(ledger)
	result := &CheckoutResult{Message: message}
	if s.checkoutNumber != "" {
		result.WhatsAppURL = fmt.Sprintf("https://wa.me/%s?text=%s",
			s.checkoutNumber, url.QueryEscape(message))
	}
	return result, nil
}

func composeOrderMessage(ledger *Ledger) string {
	var b strings.Builder
	b.WriteString("Order Details:\n")
	for i, line := range ledger.Lines {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, line.ProductName)
		fmt.Fprintf(&b, "   Size: %s\n", line.SizeLabel)
		fmt.Fprintf(&b, "   Quantity: %d\n", line.Quantity)
		fmt.Fprintf(&b, "   Price: ₹%s\n", line.Price.StringFixed(2))
		fmt.Fprintf(&b, "   Subtotal: ₹%s\n", line.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: ₹%s", ledger.Total().StringFixed(2))
	return b.String()
}

func newCartDTO(ledger *Ledger) *CartDTO {
	lines := make([]LineDTO, 0, len(ledger.Lines))
	for _, line := range ledger.Lines {
		lines = append(lines, LineDTO{
			ID:           line.ID(),
			ProductID:    line.ProductID,
			SizeID:       line.SizeID,
			ProductName:  line.ProductName,
			ProductImage: line.ProductImage,
			SizeLabel:    line.SizeLabel,
			Price:        line.Price,
			Quantity:     line.Quantity,
			Subtotal:     line.Subtotal(),
		})
	}
	return &CartDTO{Lines: lines, Count: ledger.Count(), Total: ledger.Total()}
}

func findSize(product *catalog.ProductDTO, sizeID uint) (catalog.SizeDTO, bool) {
	for _, size := range product.Sizes {
		if size.ID == sizeID {
			return size, true
		}
	}
	return catalog.SizeDTO{}, false
}

func firstImage(product *catalog.ProductDTO) string {
	if len(product.Images) > 0 {
		return product.Images[0]
	}
	return ""
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
