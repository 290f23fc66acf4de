package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'product_kind') THEN
			CREATE TYPE product_kind AS ENUM ('FUNGUS', 'BACTERIA', 'BIOCHAR');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS root_entities (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		company_name VARCHAR(255) NOT NULL,
		nit VARCHAR(32),
		contact_name VARCHAR(255),
		email VARCHAR(255),
		phone VARCHAR(32),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS portal_users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		entity_id UUID REFERENCES root_entities(id),
		full_name VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		role VARCHAR(32) NOT NULL DEFAULT 'regular',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_portal_users_entity_id ON portal_users (entity_id);`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		abbreviation VARCHAR(32),
		kind product_kind NOT NULL,
		unit VARCHAR(16) NOT NULL DEFAULT 'L',
		unit_price NUMERIC(18,2) NOT NULL DEFAULT 0
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_products_name ON products (name);`,
	`CREATE TABLE IF NOT EXISTS schedules (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		entity_id UUID NOT NULL REFERENCES root_entities(id),
		application_type_name VARCHAR(255) NOT NULL,
		application_count INT NOT NULL,
		cycle_days INT NOT NULL,
		area_hectares NUMERIC(12,2) NOT NULL,
		start_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_schedules_entity_id ON schedules (entity_id);`,
	`CREATE TABLE IF NOT EXISTS application_instances (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		schedule_id UUID NOT NULL REFERENCES schedules(id),
		occurrence_index INT NOT NULL,
		product_id UUID REFERENCES products(id),
		product_name VARCHAR(255) NOT NULL,
		dose_per_hectare NUMERIC(12,3) NOT NULL,
		area_hectares NUMERIC(12,2) NOT NULL,
		scheduled_date DATE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_application_instances_schedule_id ON application_instances (schedule_id);`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		entity_id UUID NOT NULL REFERENCES root_entities(id),
		quote_number VARCHAR(64) NOT NULL,
		subtotal NUMERIC(18,2) NOT NULL,
		iva_rate NUMERIC(5,2) NOT NULL,
		iva_amount NUMERIC(18,2) NOT NULL,
		total NUMERIC(18,2) NOT NULL,
		pdf_key VARCHAR(512),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_quotes_number ON quotes (quote_number);`,
	`CREATE TABLE IF NOT EXISTS quote_lines (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		quote_id UUID NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id),
		product_name VARCHAR(255) NOT NULL,
		unit VARCHAR(16) NOT NULL,
		quantity NUMERIC(12,3) NOT NULL,
		unit_price NUMERIC(18,2) NOT NULL,
		line_total NUMERIC(18,2) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_quote_lines_quote_id ON quote_lines (quote_id);`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		entity_id UUID NOT NULL REFERENCES root_entities(id),
		order_number VARCHAR(64) NOT NULL,
		total NUMERIC(18,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_orders_number ON orders (order_number);`,
	`CREATE TABLE IF NOT EXISTS order_lines (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id),
		product_name VARCHAR(255) NOT NULL,
		quantity NUMERIC(12,3) NOT NULL,
		unit_price NUMERIC(18,2) NOT NULL,
		line_total NUMERIC(18,2) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_order_lines_order_id ON order_lines (order_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
