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

// CreateSurvey records an investor's risk profile. The advisor id is copied
// from the owning investor at creation time; it stays as written even if the
// investor is later reassigned.
func CreateSurvey(ctx context.Context, survey *Survey) (*Survey, error) {
	subLog := log.With().Int64("InvestorID", survey.InvestorID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	err = trx.QueryRow(ctx, `SELECT advisor_id FROM investor WHERE investor_id=$1`, survey.InvestorID).Scan(&survey.AdvisorID)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		subLog.Error().Stack().Err(err).Msg("could not load investor for survey")
		return nil, err
	}

	sql := `INSERT INTO survey ("investor_id", "advisor_id", "risk_tolerance", "income", "net_worth", "investment_horizon") VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := trx.Exec(ctx, sql, survey.InvestorID, survey.AdvisorID, survey.RiskTolerance, survey.Income, survey.NetWorth, survey.InvestmentHorizon); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not insert survey")
		rollback(ctx, trx)
		return nil, err
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit survey creation")
		return nil, err
	}

	return survey, nil
}

func GetSurvey(ctx context.Context, investorID int64) (*Survey, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT investor_id, advisor_id, risk_tolerance, income, net_worth, investment_horizon FROM survey WHERE investor_id=$1`
	survey := &Survey{}
	err = trx.QueryRow(ctx, sql, investorID).Scan(
		&survey.InvestorID, &survey.AdvisorID, &survey.RiskTolerance, &survey.Income, &survey.NetWorth, &survey.InvestmentHorizon)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Stack().Err(err).Int64("InvestorID", investorID).Msg("could not load survey")
		return nil, err
	}

	commit(ctx, trx)
	return survey, nil
}

// UpdateSurvey rewrites the profile fields; the snapshotted advisor id is
// left as written
func UpdateSurvey(ctx context.Context, survey *Survey) error {
	subLog := log.With().Int64("InvestorID", survey.InvestorID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return err
	}

	sql := `UPDATE survey SET risk_tolerance=$1, income=$2, net_worth=$3, investment_horizon=$4 WHERE investor_id=$5`
	tag, err := trx.Exec(ctx, sql, survey.RiskTolerance, survey.Income, survey.NetWorth, survey.InvestmentHorizon, survey.InvestorID)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not update survey")
		rollback(ctx, trx)
		return err
	}
	if tag.RowsAffected() != 1 {
		rollback(ctx, trx)
		return ErrNotFound
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit survey update")
		return err
	}

	return nil
}
