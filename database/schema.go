// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"context"

	"github.com/rs/zerolog/log"
)

// One statement per table so a failure can be attributed to the statement
// that caused it. The whole set runs in a single transaction.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS account (
		account_id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		is_advisor BOOLEAN NOT NULL DEFAULT false
	)`,

	`CREATE TABLE IF NOT EXISTS advisor (
		advisor_id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		account_id INT NOT NULL UNIQUE REFERENCES account (account_id)
	)`,

	`CREATE TABLE IF NOT EXISTS advisor_qualification (
		qualification_id SERIAL PRIMARY KEY,
		advisor_id INT NOT NULL REFERENCES advisor (advisor_id) ON DELETE CASCADE,
		name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS investor (
		investor_id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		advisor_id INT NOT NULL REFERENCES advisor (advisor_id),
		account_id INT NOT NULL UNIQUE REFERENCES account (account_id)
	)`,

	// advisor_id is copied from the owning investor at creation time and is
	// never re-synced
	`CREATE TABLE IF NOT EXISTS survey (
		investor_id INT PRIMARY KEY REFERENCES investor (investor_id) ON DELETE CASCADE,
		advisor_id INT NOT NULL,
		risk_tolerance TEXT NOT NULL,
		income DOUBLE PRECISION NOT NULL,
		net_worth DOUBLE PRECISION NOT NULL,
		investment_horizon TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS company (
		company_name TEXT PRIMARY KEY,
		industry TEXT NOT NULL,
		shares_outstanding BIGINT NOT NULL,
		market_cap BIGINT NOT NULL
	)`,

	// at most one stock per company
	`CREATE TABLE IF NOT EXISTS stock (
		ticker TEXT PRIMARY KEY,
		company_name TEXT NOT NULL UNIQUE REFERENCES company (company_name),
		current_price DOUBLE PRECISION NOT NULL,
		target_price DOUBLE PRECISION NOT NULL
	)`,

	// news is matched by substring against company name or ticker, not by
	// foreign key
	`CREATE TABLE IF NOT EXISTS news (
		headline TEXT PRIMARY KEY,
		body TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS portfolio (
		portfolio_id SERIAL PRIMARY KEY,
		value DOUBLE PRECISION NOT NULL,
		investor_id INT NOT NULL UNIQUE REFERENCES investor (investor_id)
	)`,

	`CREATE TABLE IF NOT EXISTS portfolio_bond (
		bond_id SERIAL PRIMARY KEY,
		portfolio_id INT NOT NULL REFERENCES portfolio (portfolio_id) ON DELETE CASCADE,
		amount DOUBLE PRECISION NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS portfolio_canadian_equity (
		canadian_equity_id SERIAL PRIMARY KEY,
		portfolio_id INT NOT NULL REFERENCES portfolio (portfolio_id) ON DELETE CASCADE,
		amount DOUBLE PRECISION NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS portfolio_us_equity (
		us_equity_id SERIAL PRIMARY KEY,
		portfolio_id INT NOT NULL REFERENCES portfolio (portfolio_id) ON DELETE CASCADE,
		amount DOUBLE PRECISION NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS investment_option (
		reference_id SERIAL PRIMARY KEY,
		advisor_id INT NOT NULL REFERENCES advisor (advisor_id),
		amount DOUBLE PRECISION NOT NULL,
		inv_type TEXT NOT NULL,
		company_name TEXT NOT NULL REFERENCES company (company_name)
	)`,

	// reference_id is reused from the investment_option this row replaced;
	// the primary key prevents double-booking the same offer
	`CREATE TABLE IF NOT EXISTS investment (
		reference_id INT PRIMARY KEY,
		investor_id INT NOT NULL REFERENCES investor (investor_id),
		holding TEXT NOT NULL,
		market_value DOUBLE PRECISION NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS report (
		reference_id INT PRIMARY KEY REFERENCES investment (reference_id) ON DELETE CASCADE,
		weekly DOUBLE PRECISION NOT NULL DEFAULT 0,
		monthly DOUBLE PRECISION NOT NULL DEFAULT 0,
		quarterly DOUBLE PRECISION NOT NULL DEFAULT 0,
		semi_annual DOUBLE PRECISION NOT NULL DEFAULT 0,
		annual DOUBLE PRECISION NOT NULL DEFAULT 0,
		since_inception DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS ix_investor_advisor ON investor (advisor_id)`,
	`CREATE INDEX IF NOT EXISTS ix_option_advisor ON investment_option (advisor_id)`,
	`CREATE INDEX IF NOT EXISTS ix_investment_investor ON investment (investor_id)`,
}

// CreateSchema applies the entity store schema; it is idempotent
func CreateSchema(ctx context.Context) error {
	trx, err := Trx(ctx)
	if err != nil {
		log.Error().Stack().Err(err).Msg("could not begin schema transaction")
		return err
	}

	for _, stmt := range schemaStatements {
		if _, err := trx.Exec(ctx, stmt); err != nil {
			log.Error().Stack().Err(err).Str("Query", stmt).Msg("schema statement failed")
			if err := trx.Rollback(ctx); err != nil {
				log.Error().Stack().Err(err).Msg("could not rollback transaction")
			}
			return err
		}
	}

	if err := trx.Commit(ctx); err != nil {
		log.Error().Stack().Err(err).Msg("could not commit schema transaction")
		return err
	}

	return nil
}
