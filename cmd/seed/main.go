// seed crea el esquema y carga los datos iniciales del catálogo. Es idempotente:
// las tablas se crean con IF NOT EXISTS y los productos solo se insertan si el
// catálogo está vacío. Con SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD definidos crea
// además un usuario administrador (mecanismo explícito de asignación de rol).
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lachilena/empanaderia-api/internal/domain/entity"
	"github.com/lachilena/empanaderia-api/internal/infrastructure/postgres"
	"github.com/lachilena/empanaderia-api/pkg/config"
	"github.com/lachilena/empanaderia-api/pkg/logger"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id          INTEGER PRIMARY KEY,
    name        TEXT        NOT NULL,
    category    TEXT        NOT NULL,
    price       INTEGER     NOT NULL CHECK (price > 0),
    stock       INTEGER     NOT NULL CHECK (stock >= 0),
    image       TEXT        NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
    id             UUID PRIMARY KEY,
    customer_email TEXT        NOT NULL,
    total          INTEGER     NOT NULL,
    status         TEXT        NOT NULL DEFAULT 'recibido',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_email, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_orders_created ON orders (created_at DESC);

CREATE TABLE IF NOT EXISTS order_items (
    id         BIGSERIAL PRIMARY KEY,
    order_id   UUID    NOT NULL REFERENCES orders (id),
    product_id INTEGER NOT NULL,
    name       TEXT    NOT NULL,
    price      INTEGER NOT NULL,
    quantity   INTEGER NOT NULL CHECK (quantity > 0)
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id);

CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY,
    email         TEXT        NOT NULL UNIQUE,
    password_hash TEXT        NOT NULL,
    name          TEXT        NOT NULL,
    role          TEXT        NOT NULL DEFAULT 'cliente',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// initialProducts catálogo inicial de la tienda.
var initialProducts = []entity.Product{
	{ID: 1, Name: "Empanada de Pino", Category: "horno", Price: 2500, Stock: 20, Image: "pino.jpg"},
	{ID: 2, Name: "Empanada de Queso", Category: "frita", Price: 2000, Stock: 15, Image: "queso.jpg"},
	{ID: 3, Name: "Camarón Queso", Category: "frita", Price: 2800, Stock: 0, Image: "camaron.jpg"},
	{ID: 4, Name: "Napolitana", Category: "horno", Price: 2200, Stock: 10, Image: "napo.jpg"},
	{ID: 5, Name: "Bebida 500ml", Category: "bebida", Price: 1500, Stock: 50, Image: "soda.jpg"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}
	log.Info().Msg("esquema verificado")

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		log.Fatal().Err(err).Msg("contar productos")
	}
	if count == 0 {
		repo := postgres.NewProductRepository(pool)
		now := time.Now()
		for i := range initialProducts {
			p := initialProducts[i]
			p.CreatedAt = now
			p.UpdatedAt = now
			if err := repo.Create(ctx, &p); err != nil {
				log.Fatal().Err(err).Int("id", p.ID).Msg("insertar producto inicial")
			}
		}
		log.Info().Int("productos", len(initialProducts)).Msg("datos iniciales cargados")
	} else {
		log.Info().Int("productos", count).Msg("catálogo ya poblado, se omite el seed")
	}

	seedAdmin(ctx, pool, log)
}

// seedAdmin crea el usuario administrador si SEED_ADMIN_EMAIL y
// SEED_ADMIN_PASSWORD están definidos y el email no existe todavía.
func seedAdmin(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) {
	v := viper.New()
	v.AutomaticEnv()
	email := v.GetString("SEED_ADMIN_EMAIL")
	password := v.GetString("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Info().Msg("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD no definidos, sin usuario admin")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password de admin")
	}
	var inserted bool
	err = pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING true`,
		uuid.New().String(), email, string(hash), "Administración", entity.RoleAdmin, time.Now(),
	).Scan(&inserted)
	if err != nil {
		// Sin fila devuelta significa que el admin ya existía.
		log.Info().Str("email", email).Msg("usuario admin ya existe")
		return
	}
	log.Info().Str("email", email).Msg("usuario admin creado")
}
