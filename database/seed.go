package database

import (
	"fmt"
	"math/rand"
	"time"
)

// SeedDatabase peuple le snapshot avec des données synthétiques.
// Le jeu généré contient volontairement des lignes impures (dates de
// commande nulles, références orphelines, montants négatifs) pour que
// la politique d'exclusion du moteur de rapport soit observable.
func SeedDatabase(years int) error {
	fmt.Println("🌱 Génération des dimensions...")

	customerKeys, err := seedCustomers(500)
	if err != nil {
		return fmt.Errorf("erreur génération clients: %w", err)
	}

	productKeys, err := seedProducts(80)
	if err != nil {
		return fmt.Errorf("erreur génération produits: %w", err)
	}

	fmt.Println("🌱 Génération des faits de ventes...")
	if err := seedSalesFacts(years, customerKeys, productKeys); err != nil {
		return fmt.Errorf("erreur génération ventes: %w", err)
	}

	fmt.Println("🔍 Analyse des tables...")
	if _, err := DB.Exec("ANALYZE"); err != nil {
		fmt.Println("⚠️ Attention: échec de l'analyse:", err)
	}

	return nil
}

// seedCustomers génère la dimension clients
func seedCustomers(count int) ([]int64, error) {
	fmt.Printf("   👤 Génération de %d clients...\n", count)

	firstNames := []string{
		"Alice", "Bruno", "Claire", "David", "Emma", "Farid", "Gaelle", "Hugo",
		"Ines", "Julien", "Karim", "Lea", "Marc", "Nadia", "Olivier", "Pauline",
	}
	lastNames := []string{
		"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit",
		"Durand", "Leroy", "Moreau", "Simon", "Laurent", "Lefebvre", "Roux",
	}

	keys := make([]int64, 0, count)

	for i := 0; i < count; i++ {
		key := int64(i + 1)
		name := fmt.Sprintf("%s %s",
			firstNames[rand.Intn(len(firstNames))],
			lastNames[rand.Intn(len(lastNames))],
		)

		// Environ 5% de clients sans date de naissance connue
		var birthDate *time.Time
		if rand.Float64() >= 0.05 {
			born := time.Date(1950+rand.Intn(55), time.Month(1+rand.Intn(12)), 1+rand.Intn(28), 0, 0, 0, 0, time.UTC)
			birthDate = &born
		}

		_, err := DB.Exec(`
			INSERT INTO customers (customer_key, customer_number, customer_name, birth_date)
			VALUES ($1, $2, $3, $4)
		`, key, fmt.Sprintf("CUST-%05d", key), name, birthDate)
		if err != nil {
			return nil, err
		}

		keys = append(keys, key)
	}

	fmt.Printf("   ✅ %d clients créés\n", len(keys))
	return keys, nil
}

// seedProducts génère la dimension produits
func seedProducts(count int) ([]int64, error) {
	fmt.Printf("   📦 Génération de %d produits...\n", count)

	catalog := []struct {
		category    string
		subcategory string
		names       []string
	}{
		{"Bikes", "Mountain Bikes", []string{"Mountain-100", "Mountain-200", "Mountain-500"}},
		{"Bikes", "Road Bikes", []string{"Road-150", "Road-350", "Road-650"}},
		{"Components", "Frames", []string{"HL Mountain Frame", "LL Road Frame"}},
		{"Components", "Wheels", []string{"HL Mountain Wheel", "Touring Wheel"}},
		{"Clothing", "Jerseys", []string{"Long-Sleeve Jersey", "Short-Sleeve Jersey"}},
		{"Accessories", "Helmets", []string{"Sport Helmet", "Road Helmet"}},
		{"Accessories", "Bottles", []string{"Water Bottle", "Insulated Bottle"}},
	}

	keys := make([]int64, 0, count)

	for i := 0; i < count; i++ {
		key := int64(i + 1)
		entry := catalog[rand.Intn(len(catalog))]
		name := fmt.Sprintf("%s %d", entry.names[rand.Intn(len(entry.names))], i+1)

		// Coûts répartis sur les quatre tranches publiées par le rapport
		cost := []float64{
			10 + rand.Float64()*80,     // Below 100
			100 + rand.Float64()*380,   // 100-500
			500 + rand.Float64()*480,   // 500-1000
			1000 + rand.Float64()*2500, // Above 1000
		}[rand.Intn(4)]

		_, err := DB.Exec(`
			INSERT INTO products (product_key, product_name, category, subcategory, cost)
			VALUES ($1, $2, $3, $4, $5)
		`, key, name, entry.category, entry.subcategory, fmt.Sprintf("%.2f", cost))
		if err != nil {
			return nil, err
		}

		keys = append(keys, key)
	}

	fmt.Printf("   ✅ %d produits créés\n", len(keys))
	return keys, nil
}

// seedSalesFacts génère la table de faits sur la période demandée
func seedSalesFacts(years int, customerKeys, productKeys []int64) error {
	if years <= 0 {
		years = 1
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(-years, 0, 0)
	days := int(end.Sub(start).Hours() / 24)

	orderCount := years * 4000
	fmt.Printf("   🧾 Génération de %d commandes sur %d ans...\n", orderCount, years)

	tx, err := DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO sales_facts (order_number, order_date, customer_key, product_key, quantity, sales_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	lineCount := 0
	for i := 0; i < orderCount; i++ {
		orderNumber := fmt.Sprintf("SO-%06d", i+1)
		orderDate := start.AddDate(0, 0, rand.Intn(days))
		customerKey := customerKeys[rand.Intn(len(customerKeys))]

		// Une commande porte 1 à 4 lignes de produits
		lines := 1 + rand.Intn(4)
		for l := 0; l < lines; l++ {
			productKey := productKeys[rand.Intn(len(productKeys))]
			quantity := 1 + rand.Intn(5)
			amount := float64(quantity) * (20 + rand.Float64()*480)

			d := orderDate
			date := &d

			// Lignes impures: ~2% sans date, ~1% montant négatif,
			// ~1% référence client orpheline
			switch roll := rand.Float64(); {
			case roll < 0.02:
				date = nil
			case roll < 0.03:
				amount = -amount
			case roll < 0.04:
				customerKey = int64(len(customerKeys) + 1000 + rand.Intn(100))
			}

			if _, err := stmt.Exec(orderNumber, date, customerKey, productKey, quantity, fmt.Sprintf("%.2f", amount)); err != nil {
				return err
			}
			lineCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	fmt.Printf("   ✅ %d lignes de vente créées\n", lineCount)
	return nil
}
