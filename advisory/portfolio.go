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

package advisory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog/log"
)

// CreatePortfolio writes the portfolio row with its computed value and one
// child row per holding amount, all in one unit of work. The value is a
// snapshot; holdings are not mutable after creation.
func CreatePortfolio(ctx context.Context, investorID int64, bonds, canadianEquities, usEquities []float64) (*Portfolio, error) {
	subLog := log.With().Int64("InvestorID", investorID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	portfolio := &Portfolio{
		Value:      PortfolioValue(bonds, canadianEquities, usEquities),
		InvestorID: investorID,
	}

	sql := `INSERT INTO portfolio ("value", "investor_id") VALUES ($1, $2) RETURNING portfolio_id`
	if err := trx.QueryRow(ctx, sql, portfolio.Value, investorID).Scan(&portfolio.PortfolioID); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not insert portfolio")
		rollback(ctx, trx)
		return nil, err
	}

	holdingTables := []struct {
		sql     string
		amounts []float64
		dest    *[]Holding
	}{
		{`INSERT INTO portfolio_bond ("portfolio_id", "amount") VALUES ($1, $2) RETURNING bond_id`, bonds, &portfolio.Bonds},
		{`INSERT INTO portfolio_canadian_equity ("portfolio_id", "amount") VALUES ($1, $2) RETURNING canadian_equity_id`, canadianEquities, &portfolio.CanadianEquities},
		{`INSERT INTO portfolio_us_equity ("portfolio_id", "amount") VALUES ($1, $2) RETURNING us_equity_id`, usEquities, &portfolio.USEquities},
	}

	for _, table := range holdingTables {
		for _, amount := range table.amounts {
			holding := Holding{PortfolioID: portfolio.PortfolioID, Amount: amount}
			if err := trx.QueryRow(ctx, table.sql, portfolio.PortfolioID, amount).Scan(&holding.ID); err != nil {
				subLog.Error().Stack().Err(err).Str("Query", table.sql).Msg("could not insert holding")
				rollback(ctx, trx)
				return nil, err
			}
			*table.dest = append(*table.dest, holding)
		}
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit portfolio creation")
		return nil, err
	}

	return portfolio, nil
}

// GetPortfolio loads a portfolio and all of its holding rows
func GetPortfolio(ctx context.Context, portfolioID int64) (*Portfolio, error) {
	subLog := log.With().Int64("PortfolioID", portfolioID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT portfolio_id, value, investor_id FROM portfolio WHERE portfolio_id=$1`
	portfolio := &Portfolio{}
	err = trx.QueryRow(ctx, sql, portfolioID).Scan(&portfolio.PortfolioID, &portfolio.Value, &portfolio.InvestorID)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		subLog.Error().Stack().Err(err).Msg("could not load portfolio")
		return nil, err
	}

	holdingTables := []struct {
		sql  string
		dest *[]Holding
	}{
		{`SELECT bond_id, portfolio_id, amount FROM portfolio_bond WHERE portfolio_id=$1 ORDER BY bond_id`, &portfolio.Bonds},
		{`SELECT canadian_equity_id, portfolio_id, amount FROM portfolio_canadian_equity WHERE portfolio_id=$1 ORDER BY canadian_equity_id`, &portfolio.CanadianEquities},
		{`SELECT us_equity_id, portfolio_id, amount FROM portfolio_us_equity WHERE portfolio_id=$1 ORDER BY us_equity_id`, &portfolio.USEquities},
	}

	for _, table := range holdingTables {
		rows, err := trx.Query(ctx, table.sql, portfolioID)
		if err != nil {
			subLog.Error().Stack().Err(err).Str("Query", table.sql).Msg("could not query holdings")
			rollback(ctx, trx)
			return nil, err
		}
		for rows.Next() {
			holding := Holding{}
			if err := rows.Scan(&holding.ID, &holding.PortfolioID, &holding.Amount); err != nil {
				subLog.Error().Stack().Err(err).Msg("could not scan holding")
				rollback(ctx, trx)
				return nil, err
			}
			*table.dest = append(*table.dest, holding)
		}
		if err := rows.Err(); err != nil {
			subLog.Error().Stack().Err(err).Str("Query", table.sql).Msg("error reading holding rows")
			rollback(ctx, trx)
			return nil, err
		}
	}

	commit(ctx, trx)
	return portfolio, nil
}
