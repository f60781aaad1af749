package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// Init ouvre la connexion au snapshot de ventes PostgreSQL.
// Le moteur de rapport fait peu de requêtes mais volumineuses (lectures
// complètes des faits et des dimensions): un petit pool suffit, les
// deux lectures d'un build tournant en parallèle.
func Init(connStr string) error {
	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(4)
	DB.SetConnMaxLifetime(30 * time.Minute)

	return DB.Ping()
}

func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
