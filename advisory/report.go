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

// CreateReport attaches a performance report to an investment
func CreateReport(ctx context.Context, report *Report) error {
	subLog := log.With().Int64("ReferenceID", report.ReferenceID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return err
	}

	sql := `INSERT INTO report ("reference_id", "weekly", "monthly", "quarterly", "semi_annual", "annual", "since_inception") VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := trx.Exec(ctx, sql, report.ReferenceID, report.Weekly, report.Monthly, report.Quarterly, report.SemiAnnual, report.Annual, report.SinceInception); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not insert report")
		rollback(ctx, trx)
		return err
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit report creation")
		return err
	}

	return nil
}

func GetReport(ctx context.Context, referenceID int64) (*Report, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT reference_id, weekly, monthly, quarterly, semi_annual, annual, since_inception FROM report WHERE reference_id=$1`
	report := &Report{}
	err = trx.QueryRow(ctx, sql, referenceID).Scan(
		&report.ReferenceID, &report.Weekly, &report.Monthly, &report.Quarterly, &report.SemiAnnual, &report.Annual, &report.SinceInception)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Stack().Err(err).Int64("ReferenceID", referenceID).Msg("could not load report")
		return nil, err
	}

	commit(ctx, trx)
	return report, nil
}

// UpdateReport overlays the horizons present in changes onto the stored
// report; absent horizons keep their value. Load and write happen in one
// transaction.
func UpdateReport(ctx context.Context, referenceID int64, changes *ReportChanges) (*Report, error) {
	subLog := log.With().Int64("ReferenceID", referenceID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT reference_id, weekly, monthly, quarterly, semi_annual, annual, since_inception FROM report WHERE reference_id=$1`
	report := &Report{}
	err = trx.QueryRow(ctx, sql, referenceID).Scan(
		&report.ReferenceID, &report.Weekly, &report.Monthly, &report.Quarterly, &report.SemiAnnual, &report.Annual, &report.SinceInception)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		subLog.Error().Stack().Err(err).Msg("could not load report")
		return nil, err
	}

	if changes.Weekly != nil {
		report.Weekly = *changes.Weekly
	}
	if changes.Monthly != nil {
		report.Monthly = *changes.Monthly
	}
	if changes.Quarterly != nil {
		report.Quarterly = *changes.Quarterly
	}
	if changes.SemiAnnual != nil {
		report.SemiAnnual = *changes.SemiAnnual
	}
	if changes.Annual != nil {
		report.Annual = *changes.Annual
	}
	if changes.SinceInception != nil {
		report.SinceInception = *changes.SinceInception
	}

	updateSQL := `UPDATE report SET weekly=$1, monthly=$2, quarterly=$3, semi_annual=$4, annual=$5, since_inception=$6 WHERE reference_id=$7`
	if _, err := trx.Exec(ctx, updateSQL, report.Weekly, report.Monthly, report.Quarterly, report.SemiAnnual, report.Annual, report.SinceInception, referenceID); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not update report")
		rollback(ctx, trx)
		return nil, err
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit report update")
		return nil, err
	}

	return report, nil
}
