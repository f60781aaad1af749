package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"salesmart/internal/sales/domain"
	shareddomain "salesmart/internal/shared/domain"
	"salesmart/internal/shared/infrastructure"
)

// SalesQueryRepository repository de lecture du snapshot ventes/dimensions.
// C'est le collaborateur d'accès aux données du moteur de rapport: il lit
// des tables déjà conformées, sans nettoyage ni réparation.
type SalesQueryRepository struct {
	infrastructure.BaseRepository
}

// NewSalesQueryRepository crée un nouveau repository de lecture des ventes
func NewSalesQueryRepository(db *sql.DB) *SalesQueryRepository {
	return &SalesQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// ListFacts récupère toutes les lignes de vente du snapshot.
// Les dates de commande nulles sont conservées telles quelles: la politique
// d'exclusion appartient à l'agrégateur, pas à l'accès aux données.
func (r *SalesQueryRepository) ListFacts(ctx context.Context) ([]domain.Fact, error) {
	query := `
		SELECT f.order_number, f.order_date, f.customer_key, f.product_key,
		       f.quantity, f.sales_amount
		FROM sales_facts f
		ORDER BY f.order_number, f.product_key
	`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sales facts: %w", err)
	}
	defer rows.Close()

	var facts []domain.Fact
	for rows.Next() {
		var (
			fact      domain.Fact
			orderDate sql.NullTime
		)

		if err := rows.Scan(
			&fact.OrderNumber, &orderDate, &fact.CustomerKey,
			&fact.ProductKey, &fact.Quantity, &fact.SalesAmount,
		); err != nil {
			return nil, fmt.Errorf("scan sales fact: %w", err)
		}

		if orderDate.Valid {
			d := orderDate.Time
			fact.OrderDate = &d
		}

		facts = append(facts, fact)
	}

	return facts, rows.Err()
}

// ListCustomers récupère la dimension clients
func (r *SalesQueryRepository) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	query := `
		SELECT c.customer_key, c.customer_number, c.customer_name, c.birth_date
		FROM customers c
		ORDER BY c.customer_key
	`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		var (
			key       int64
			number    string
			name      string
			birthDate sql.NullTime
		)

		if err := rows.Scan(&key, &number, &name, &birthDate); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}

		var birth *time.Time
		if birthDate.Valid {
			b := birthDate.Time
			birth = &b
		}

		customer, err := domain.NewCustomer(domain.CustomerKey(key), number, name, birth)
		if err != nil {
			return nil, fmt.Errorf("customer %d: %w", key, err)
		}
		customers = append(customers, customer)
	}

	return customers, rows.Err()
}

// ListProducts récupère la dimension produits
func (r *SalesQueryRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT p.product_key, p.product_name, p.category, p.subcategory, p.cost
		FROM products p
		ORDER BY p.product_key
	`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var (
			key         int64
			name        string
			category    string
			subcategory string
			cost        float64
		)

		if err := rows.Scan(&key, &name, &category, &subcategory, &cost); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}

		money, err := shareddomain.NewMoney(cost, shareddomain.ReportingCurrency)
		if err != nil {
			return nil, fmt.Errorf("product %d cost: %w", key, err)
		}

		product, err := domain.NewProduct(domain.ProductKey(key), name, category, subcategory, money)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", key, err)
		}
		products = append(products, product)
	}

	return products, rows.Err()
}
