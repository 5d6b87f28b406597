package cart

import (
	"context"

	"github.com/nayanishant/vegetable-wholesaler/internal/domain"
)

// Catalog lists the live inventory used to price cart lines.
type Catalog interface {
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
}

// ResolveLines joins lines against inventory. Products that are missing or no
// longer available resolve to a zero price and a placeholder name.
func ResolveLines(lines []domain.CartLine, inventory []domain.InventoryItem) []domain.ResolvedLine {
	byID := make(map[string]domain.InventoryItem, len(inventory))
	for _, item := range inventory {
		byID[item.ID] = item
	}

	resolved := make([]domain.ResolvedLine, 0, len(lines))
	for _, l := range lines {
		r := domain.ResolvedLine{
			ProductID: l.ProductID,
			Name:      domain.PlaceholderName,
			Image:     l.Image,
			Quantity:  l.Quantity,
			Missing:   true,
		}
		if item, ok := byID[l.ProductID]; ok && item.IsAvailable {
			r.Name = item.Name
			r.Unit = item.Unit
			r.Price = item.Price
			r.Missing = false
			if r.Image == "" {
				r.Image = item.Image
			}
		}
		r.Subtotal = domain.RoundMoney(r.Price * float64(r.Quantity))
		resolved = append(resolved, r)
	}
	return resolved
}

func Total(resolved []domain.ResolvedLine) float64 {
	var total float64
	for _, r := range resolved {
		total += r.Price * float64(r.Quantity)
	}
	return domain.RoundMoney(total)
}

// Resolve prices lines from the catalog. When the catalog cannot be read the
// lines come back as placeholders together with the read error.
func Resolve(ctx context.Context, catalog Catalog, lines []domain.CartLine) ([]domain.ResolvedLine, error) {
	if len(lines) == 0 {
		return []domain.ResolvedLine{}, nil
	}
	inventory, err := catalog.ListInventory(ctx)
	if err != nil {
		return ResolveLines(lines, nil), err
	}
	return ResolveLines(lines, inventory), nil
}
