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

// CreateOption records an offer an advisor extends to their clients
func CreateOption(ctx context.Context, advisorID int64, amount float64, invType, companyName string) (*InvestmentOption, error) {
	subLog := log.With().Int64("AdvisorID", advisorID).Str("CompanyName", companyName).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	option := &InvestmentOption{
		AdvisorID:   advisorID,
		Amount:      amount,
		InvType:     invType,
		CompanyName: companyName,
	}

	sql := `INSERT INTO investment_option ("advisor_id", "amount", "inv_type", "company_name") VALUES ($1, $2, $3, $4) RETURNING reference_id`
	if err := trx.QueryRow(ctx, sql, advisorID, amount, invType, companyName).Scan(&option.ReferenceID); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not insert investment option")
		rollback(ctx, trx)
		return nil, err
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit option creation")
		return nil, err
	}

	return option, nil
}

// GetOption loads a single investment option
func GetOption(ctx context.Context, referenceID int64) (*InvestmentOption, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT reference_id, advisor_id, amount, inv_type, company_name FROM investment_option WHERE reference_id=$1`
	option := &InvestmentOption{}
	err = trx.QueryRow(ctx, sql, referenceID).Scan(
		&option.ReferenceID, &option.AdvisorID, &option.Amount, &option.InvType, &option.CompanyName)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Stack().Err(err).Int64("ReferenceID", referenceID).Msg("could not load investment option")
		return nil, err
	}

	commit(ctx, trx)
	return option, nil
}

// ListAdvisorOptions returns the open offers extended by an advisor
func ListAdvisorOptions(ctx context.Context, advisorID int64) ([]*InvestmentOption, error) {
	subLog := log.With().Int64("AdvisorID", advisorID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT reference_id, advisor_id, amount, inv_type, company_name FROM investment_option WHERE advisor_id=$1 ORDER BY reference_id`
	rows, err := trx.Query(ctx, sql, advisorID)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not query investment options")
		rollback(ctx, trx)
		return nil, err
	}

	options := make([]*InvestmentOption, 0, 10)
	for rows.Next() {
		option := &InvestmentOption{}
		if err := rows.Scan(&option.ReferenceID, &option.AdvisorID, &option.Amount, &option.InvType, &option.CompanyName); err != nil {
			subLog.Error().Stack().Err(err).Msg("could not scan investment option")
			rollback(ctx, trx)
			return nil, err
		}
		options = append(options, option)
	}
	if err := rows.Err(); err != nil {
		subLog.Error().Stack().Err(err).Msg("error reading investment option rows")
		rollback(ctx, trx)
		return nil, err
	}

	commit(ctx, trx)
	return options, nil
}

// DeleteOption destroys an unconverted offer
func DeleteOption(ctx context.Context, referenceID int64) error {
	subLog := log.With().Int64("ReferenceID", referenceID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return err
	}

	tag, err := trx.Exec(ctx, `DELETE FROM investment_option WHERE reference_id=$1`, referenceID)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not delete investment option")
		rollback(ctx, trx)
		return err
	}
	if tag.RowsAffected() != 1 {
		rollback(ctx, trx)
		return ErrNotFound
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit option delete")
		return err
	}

	return nil
}

// AcceptOption converts an investment option into an investment for the given
// investor. The conversion is all-or-nothing: the market value is computed,
// the investment inserted, and the option deleted in a single transaction. A
// concurrent acceptance of the same reference id succeeds at most once.
func AcceptOption(ctx context.Context, referenceID int64, investorID int64) (*Investment, error) {
	subLog := log.With().Int64("ReferenceID", referenceID).Int64("InvestorID", investorID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	investment, err := acceptOption(ctx, trx, referenceID, investorID)
	if err != nil {
		rollback(ctx, trx)
		return nil, err
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit option acceptance")
		return nil, err
	}

	return investment, nil
}

// GetInvestment loads a single investment
func GetInvestment(ctx context.Context, referenceID int64) (*Investment, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT reference_id, investor_id, holding, market_value FROM investment WHERE reference_id=$1`
	investment := &Investment{}
	err = trx.QueryRow(ctx, sql, referenceID).Scan(
		&investment.ReferenceID, &investment.InvestorID, &investment.Holding, &investment.MarketValue)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Stack().Err(err).Int64("ReferenceID", referenceID).Msg("could not load investment")
		return nil, err
	}

	commit(ctx, trx)
	return investment, nil
}

// ListInvestorInvestments returns an investor's accepted investments
func ListInvestorInvestments(ctx context.Context, investorID int64) ([]*Investment, error) {
	subLog := log.With().Int64("InvestorID", investorID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT reference_id, investor_id, holding, market_value FROM investment WHERE investor_id=$1 ORDER BY reference_id`
	rows, err := trx.Query(ctx, sql, investorID)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not query investments")
		rollback(ctx, trx)
		return nil, err
	}

	investments := make([]*Investment, 0, 10)
	for rows.Next() {
		investment := &Investment{}
		if err := rows.Scan(&investment.ReferenceID, &investment.InvestorID, &investment.Holding, &investment.MarketValue); err != nil {
			subLog.Error().Stack().Err(err).Msg("could not scan investment")
			rollback(ctx, trx)
			return nil, err
		}
		investments = append(investments, investment)
	}
	if err := rows.Err(); err != nil {
		subLog.Error().Stack().Err(err).Msg("error reading investment rows")
		rollback(ctx, trx)
		return nil, err
	}

	commit(ctx, trx)
	return investments, nil
}
