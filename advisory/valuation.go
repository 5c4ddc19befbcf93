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

// PortfolioValue sums all holding amounts into the portfolio total. Summation
// order is bonds, then Canadian equities, then US equities. Empty sequences
// contribute zero. Amounts are not validated; negative values pass through.
func PortfolioValue(bonds, canadianEquities, usEquities []float64) float64 {
	total := 0.0
	for _, amount := range bonds {
		total += amount
	}
	for _, amount := range canadianEquities {
		total += amount
	}
	for _, amount := range usEquities {
		total += amount
	}
	return total
}

// MarketValue computes the value of an option at the current stock price of
// its company. Returns ErrNotFound when the company has no stock registered.
func MarketValue(ctx context.Context, trx Queryer, option *InvestmentOption) (float64, error) {
	sql := `SELECT s.current_price
		FROM stock s
		JOIN company c ON c.company_name = s.company_name
		WHERE c.company_name = $1`

	var currentPrice float64
	err := trx.QueryRow(ctx, sql, option.CompanyName).Scan(&currentPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		log.Error().Stack().Err(err).Str("CompanyName", option.CompanyName).Msg("could not load stock price")
		return 0, err
	}

	return currentPrice * option.Amount, nil
}

// acceptOption converts an investment option into an investment inside the
// caller's transaction. The option row is locked FOR UPDATE so at most one
// conversion can succeed; the loser of a race observes no row and gets
// ErrNotFound. The market value is computed once here and never recomputed.
func acceptOption(ctx context.Context, trx Queryer, referenceID int64, investorID int64) (*Investment, error) {
	optionSQL := `SELECT reference_id, advisor_id, amount, inv_type, company_name
		FROM investment_option WHERE reference_id=$1 FOR UPDATE`

	option := &InvestmentOption{}
	err := trx.QueryRow(ctx, optionSQL, referenceID).Scan(
		&option.ReferenceID, &option.AdvisorID, &option.Amount, &option.InvType, &option.CompanyName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error().Stack().Err(err).Int64("ReferenceID", referenceID).Msg("could not load investment option")
		return nil, err
	}

	marketValue, err := MarketValue(ctx, trx, option)
	if err != nil {
		return nil, err
	}

	investment := &Investment{
		ReferenceID: option.ReferenceID,
		InvestorID:  investorID,
		Holding:     option.CompanyName,
		MarketValue: marketValue,
	}

	insertSQL := `INSERT INTO investment ("reference_id", "investor_id", "holding", "market_value") VALUES ($1, $2, $3, $4)`
	if _, err := trx.Exec(ctx, insertSQL, investment.ReferenceID, investment.InvestorID, investment.Holding, investment.MarketValue); err != nil {
		log.Error().Stack().Err(err).Int64("ReferenceID", referenceID).Msg("could not insert investment")
		return nil, err
	}

	deleteSQL := `DELETE FROM investment_option WHERE reference_id=$1`
	tag, err := trx.Exec(ctx, deleteSQL, referenceID)
	if err != nil {
		log.Error().Stack().Err(err).Int64("ReferenceID", referenceID).Msg("could not delete investment option")
		return nil, err
	}
	if tag.RowsAffected() != 1 {
		// the option vanished between the locked read and the delete; the
		// transaction must not commit with both rows
		return nil, ErrConflict
	}

	return investment, nil
}
