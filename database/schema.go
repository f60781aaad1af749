package database

import "fmt"

// EnsureSchema crée les tables du snapshot si elles n'existent pas.
// Le schéma suit le modèle dimensionnel classique: une table de faits
// de ventes et deux dimensions (clients, produits).
func EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			customer_key    BIGINT PRIMARY KEY,
			customer_number VARCHAR(32) NOT NULL,
			customer_name   VARCHAR(128) NOT NULL,
			birth_date      DATE
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_key  BIGINT PRIMARY KEY,
			product_name VARCHAR(128) NOT NULL,
			category     VARCHAR(64) NOT NULL,
			subcategory  VARCHAR(64) NOT NULL,
			cost         NUMERIC(12,2) NOT NULL
		)`,
		// Pas de contraintes de clé étrangère: le snapshot peut contenir
		// des références orphelines, c'est au moteur de rapport de les
		// écarter et de les compter
		`CREATE TABLE IF NOT EXISTS sales_facts (
			id           BIGSERIAL PRIMARY KEY,
			order_number VARCHAR(32) NOT NULL,
			order_date   DATE,
			customer_key BIGINT NOT NULL,
			product_key  BIGINT NOT NULL,
			quantity     INT NOT NULL,
			sales_amount NUMERIC(12,2) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_facts_customer ON sales_facts(customer_key)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_facts_product ON sales_facts(product_key)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_facts_order_date ON sales_facts(order_date)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
