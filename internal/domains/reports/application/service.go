package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	catalogports "github.com/orderstack/inventory-service/internal/domains/catalog/ports"
	ordersports "github.com/orderstack/inventory-service/internal/domains/orders/ports"
)

const (
	KindInventory = "inventory"
	KindSales     = "sales"
)

// Service renders plain-text operational reports from the catalog and the
// order history. Sales figures are re-derived from stored orders on every
// call; nothing is cached.
type Service struct {
	catalog catalogports.Repository
	orders  ordersports.Repository
	now     func() time.Time
}

type Option func(*Service)

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(catalog catalogports.Repository, orders ordersports.Repository, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		orders:  orders,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate renders the report of the given kind.
func (s *Service) Generate(ctx context.Context, kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindInventory:
		return s.inventoryReport(ctx)
	case KindSales:
		return s.salesReport(ctx)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownReport, kind)
	}
}

func (s *Service) inventoryReport(ctx context.Context) (string, error) {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing products: %w", err)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	var (
		totalUnits int64
		totalValue float64
		lowStock   int
		outOfStock int
	)
	for _, p := range products {
		totalUnits += p.Stock
		totalValue += p.Price * float64(p.Stock)
		if p.Stock == 0 {
			outOfStock++
		} else if p.BelowThreshold() {
			lowStock++
		}
	}

	var b strings.Builder
	s.writeHeader(&b, "INVENTORY REPORT")
	fmt.Fprintf(&b, "Products:       %d\n", len(products))
	fmt.Fprintf(&b, "Units on hand:  %d\n", totalUnits)
	fmt.Fprintf(&b, "Stock value:    %.2f\n", totalValue)
	fmt.Fprintf(&b, "Low stock:      %d\n", lowStock)
	fmt.Fprintf(&b, "Out of stock:   %d\n\n", outOfStock)

	fmt.Fprintf(&b, "%-6s %-30s %10s %8s\n", "ID", "DESCRIPTION", "PRICE", "STOCK")
	for _, p := range products {
		marker := ""
		if p.Stock == 0 {
			marker = "  (OUT)"
		} else if p.BelowThreshold() {
			marker = "  (LOW)"
		}
		fmt.Fprintf(&b, "%-6d %-30s %10.2f %8d%s\n", p.ID, p.Description, p.Price, p.Stock, marker)
	}
	return b.String(), nil
}

type salesRow struct {
	productID int64
	units     int64
	revenue   float64
}

func (s *Service) salesReport(ctx context.Context) (string, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing orders: %w", err)
	}

	byProduct := map[int64]*salesRow{}
	var totalRevenue float64
	var totalUnits int64
	for _, order := range orders {
		for _, line := range order.Lines {
			row, ok := byProduct[line.ProductID]
			if !ok {
				row = &salesRow{productID: line.ProductID}
				byProduct[line.ProductID] = row
			}
			row.units += line.Quantity
			row.revenue += line.UnitPrice * float64(line.Quantity)
			totalUnits += line.Quantity
			totalRevenue += line.UnitPrice * float64(line.Quantity)
		}
	}

	rows := make([]*salesRow, 0, len(byProduct))
	for _, row := range byProduct {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].revenue != rows[j].revenue {
			return rows[i].revenue > rows[j].revenue
		}
		return rows[i].productID < rows[j].productID
	})

	var b strings.Builder
	s.writeHeader(&b, "SALES REPORT")
	fmt.Fprintf(&b, "Orders:         %d\n", len(orders))
	fmt.Fprintf(&b, "Units sold:     %d\n", totalUnits)
	fmt.Fprintf(&b, "Total revenue:  %.2f\n\n", totalRevenue)

	fmt.Fprintf(&b, "%-10s %10s %12s\n", "PRODUCT", "UNITS", "REVENUE")
	for _, row := range rows {
		fmt.Fprintf(&b, "%-10d %10d %12.2f\n", row.productID, row.units, row.revenue)
	}
	return b.String(), nil
}

func (s *Service) writeHeader(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n", title)
	fmt.Fprintf(b, "Generated: %s\n", s.now().UTC().Format(time.RFC3339))
	b.WriteString(strings.Repeat("-", 60) + "\n")
}
