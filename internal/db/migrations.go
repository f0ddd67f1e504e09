package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Schema statements are kept per dialect: key types and blob columns
// differ between postgres and sqlite, everything else is shared.
func tableStatements(driver string) []string {
	pk := "BIGSERIAL PRIMARY KEY"
	blob := "BYTEA"
	if strings.ToLower(driver) == "sqlite" {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
		blob = "BLOB"
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id %s,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_agent BOOLEAN NOT NULL DEFAULT FALSE,
			role TEXT NOT NULL DEFAULT 'user'
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS properties (
			id %s,
			property_type TEXT NOT NULL,
			title_deed_number TEXT NOT NULL,
			location TEXT NOT NULL,
			size DOUBLE PRECISION NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			owner TEXT NOT NULL,
			telephone_number TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			image_paths TEXT NOT NULL DEFAULT '',
			title_image_paths TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Available',
			added_by_user_id BIGINT REFERENCES users(id)
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS properties_for_transfer (
			id %s,
			title_deed_number TEXT NOT NULL,
			location TEXT NOT NULL,
			size DOUBLE PRECISION NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			owner TEXT NOT NULL,
			telephone_number TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			image_paths TEXT NOT NULL DEFAULT '',
			title_image_paths TEXT NOT NULL DEFAULT '',
			added_by_user_id BIGINT REFERENCES users(id)
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS clients (
			id %s,
			name TEXT NOT NULL,
			telephone_number TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			added_by_user_id BIGINT REFERENCES users(id)
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS client_visits (
			id %s,
			client_id BIGINT NOT NULL REFERENCES clients(id),
			purpose TEXT NOT NULL DEFAULT '',
			brought_by TEXT NOT NULL DEFAULT '',
			added_by_user_id BIGINT REFERENCES users(id),
			visited_at TIMESTAMP NOT NULL
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS transactions (
			id %s,
			property_id BIGINT NOT NULL REFERENCES properties(id),
			client_id BIGINT NOT NULL REFERENCES clients(id),
			payment_mode TEXT NOT NULL,
			total_amount_paid DOUBLE PRECISION NOT NULL,
			discount DOUBLE PRECISION NOT NULL DEFAULT 0,
			balance DOUBLE PRECISION NOT NULL DEFAULT 0,
			transaction_date TIMESTAMP NOT NULL,
			receipt_path TEXT NOT NULL DEFAULT '',
			added_by_user_id BIGINT REFERENCES users(id)
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS proposed_lots (
			id %s,
			parent_block_id BIGINT NOT NULL REFERENCES properties(id),
			size DOUBLE PRECISION NOT NULL,
			location TEXT NOT NULL,
			surveyor_name TEXT NOT NULL,
			created_by TEXT NOT NULL,
			title_deed_number TEXT NOT NULL DEFAULT 'N/A',
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'Proposed',
			created_at TIMESTAMP NOT NULL
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS property_transfers (
			id %s,
			property_id BIGINT NOT NULL,
			from_client_id BIGINT REFERENCES clients(id),
			to_client_id BIGINT NOT NULL REFERENCES clients(id),
			transfer_price DOUBLE PRECISION NOT NULL,
			transfer_date TIMESTAMP NOT NULL,
			executed_by_user_id BIGINT NOT NULL REFERENCES users(id),
			supervising_agent_id BIGINT REFERENCES users(id),
			transfer_document_path TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS agents (
			id %s,
			name TEXT NOT NULL UNIQUE,
			status TEXT NOT NULL DEFAULT 'active',
			added_by TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS payment_plans (
			id %s,
			name TEXT NOT NULL,
			deposit_percentage DOUBLE PRECISION NOT NULL,
			duration_months INTEGER NOT NULL,
			interest_rate DOUBLE PRECISION NOT NULL,
			created_by TEXT NOT NULL
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS service_clients (
			id %s,
			name TEXT NOT NULL,
			telephone_number TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL DEFAULT '',
			brought_by TEXT NOT NULL DEFAULT '',
			added_by TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS client_files (
			id %s,
			client_id BIGINT NOT NULL REFERENCES service_clients(id),
			file_name TEXT NOT NULL,
			added_by TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS service_jobs (
			id %s,
			file_id BIGINT NOT NULL REFERENCES client_files(id),
			job_description TEXT NOT NULL DEFAULT '',
			title_name TEXT NOT NULL,
			title_number TEXT NOT NULL,
			fee DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL DEFAULT 'Ongoing',
			added_by TEXT NOT NULL,
			brought_by TEXT NOT NULL DEFAULT 'self',
			created_at TIMESTAMP NOT NULL
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS service_payments (
			id %s,
			job_id BIGINT NOT NULL UNIQUE REFERENCES service_jobs(id),
			fee DOUBLE PRECISION NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			balance DOUBLE PRECISION NOT NULL,
			payment_date TIMESTAMP NOT NULL,
			status TEXT NOT NULL DEFAULT 'unpaid'
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS service_payment_history (
			id %s,
			payment_id BIGINT NOT NULL REFERENCES service_payments(id),
			payment_amount DOUBLE PRECISION NOT NULL,
			payment_type TEXT NOT NULL DEFAULT '',
			payment_date TIMESTAMP NOT NULL
		);`, pk),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS service_dispatch (
			id %s,
			job_id BIGINT NOT NULL REFERENCES service_jobs(id),
			dispatch_date TIMESTAMP NOT NULL,
			reason_for_dispatch TEXT NOT NULL DEFAULT '',
			collected_by TEXT NOT NULL DEFAULT '',
			collector_phone TEXT NOT NULL DEFAULT '',
			sign %s
		);`, pk, blob),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS activity_logs (
			id %s,
			logged_at TIMESTAMP NOT NULL,
			user_id BIGINT NOT NULL REFERENCES users(id),
			action_type TEXT NOT NULL,
			details TEXT NOT NULL DEFAULT ''
		);`, pk),
	}
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_properties_status ON properties (status);`,
	`CREATE INDEX IF NOT EXISTS idx_properties_title_deed ON properties (title_deed_number);`,
	`CREATE INDEX IF NOT EXISTS idx_properties_for_transfer_title_deed ON properties_for_transfer (title_deed_number);`,
	`CREATE INDEX IF NOT EXISTS idx_clients_status ON clients (status);`,
	`CREATE INDEX IF NOT EXISTS idx_client_visits_client_id ON client_visits (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_property_id ON transactions (property_id);`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_client_id ON transactions (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_proposed_lots_parent ON proposed_lots (parent_block_id);`,
	`CREATE INDEX IF NOT EXISTS idx_proposed_lots_status ON proposed_lots (status);`,
	`CREATE INDEX IF NOT EXISTS idx_property_transfers_property ON property_transfers (property_id);`,
	`CREATE INDEX IF NOT EXISTS idx_client_files_client_id ON client_files (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_service_jobs_file_id ON service_jobs (file_id);`,
	`CREATE INDEX IF NOT EXISTS idx_service_jobs_status ON service_jobs (status);`,
	`CREATE INDEX IF NOT EXISTS idx_service_payment_history_payment ON service_payment_history (payment_id);`,
	`CREATE INDEX IF NOT EXISTS idx_service_dispatch_job_id ON service_dispatch (job_id);`,
	`CREATE INDEX IF NOT EXISTS idx_activity_logs_user_id ON activity_logs (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_activity_logs_logged_at ON activity_logs (logged_at);`,
}

// Migrate applies the schema for the given driver.
func Migrate(database *gorm.DB, driver string) error {
	statements := append(tableStatements(driver), indexStatements...)
	for i, stmt := range statements {
		if err := database.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
