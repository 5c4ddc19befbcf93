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

// Account/profile binding. Creating an investor or advisor writes the account
// row and the profile row in one transaction; a profile must never reference
// a missing account.

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog/log"
)

// createAccount inserts the account row for a new profile inside the caller's
// transaction
func createAccount(ctx context.Context, trx Queryer, username, password string, isAdvisor bool) (int64, error) {
	sql := `INSERT INTO account ("username", "password", "is_advisor") VALUES ($1, $2, $3) RETURNING account_id`
	var accountID int64
	if err := trx.QueryRow(ctx, sql, username, password, isAdvisor).Scan(&accountID); err != nil {
		log.Error().Stack().Err(err).Str("Username", username).Msg("could not insert account")
		return 0, err
	}
	return accountID, nil
}

// CreateInvestor creates an account tagged is_advisor=false, assigns the
// least-busy advisor, and writes the investor row, all in one unit of work
func CreateInvestor(ctx context.Context, name, dateOfBirth, username, password string) (*Investor, error) {
	subLog := log.With().Str("Username", username).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	accountID, err := createAccount(ctx, trx, username, password, false)
	if err != nil {
		rollback(ctx, trx)
		return nil, err
	}

	advisorID, err := LeastBusyAdvisor(ctx, trx)
	if err != nil {
		rollback(ctx, trx)
		return nil, err
	}

	investor := &Investor{
		Name:        name,
		DateOfBirth: dateOfBirth,
		AdvisorID:   advisorID,
		AccountID:   accountID,
	}

	sql := `INSERT INTO investor ("name", "date_of_birth", "advisor_id", "account_id") VALUES ($1, $2, $3, $4) RETURNING investor_id`
	if err := trx.QueryRow(ctx, sql, name, dateOfBirth, advisorID, accountID).Scan(&investor.InvestorID); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not insert investor")
		rollback(ctx, trx)
		return nil, err
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit investor creation")
		return nil, err
	}

	return investor, nil
}

// CreateAdvisor creates an account tagged is_advisor=true, the advisor row,
// and one qualification row per entry, all in one unit of work
func CreateAdvisor(ctx context.Context, name, username, password string, qualifications []string) (*Advisor, error) {
	subLog := log.With().Str("Username", username).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	accountID, err := createAccount(ctx, trx, username, password, true)
	if err != nil {
		rollback(ctx, trx)
		return nil, err
	}

	advisor := &Advisor{
		Name:           name,
		AccountID:      accountID,
		Qualifications: qualifications,
	}

	sql := `INSERT INTO advisor ("name", "account_id") VALUES ($1, $2) RETURNING advisor_id`
	if err := trx.QueryRow(ctx, sql, name, accountID).Scan(&advisor.AdvisorID); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not insert advisor")
		rollback(ctx, trx)
		return nil, err
	}

	qualificationSQL := `INSERT INTO advisor_qualification ("advisor_id", "name") VALUES ($1, $2)`
	for _, qualification := range qualifications {
		if _, err := trx.Exec(ctx, qualificationSQL, advisor.AdvisorID, qualification); err != nil {
			subLog.Error().Stack().Err(err).Str("Qualification", qualification).Msg("could not insert qualification")
			rollback(ctx, trx)
			return nil, err
		}
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit advisor creation")
		return nil, err
	}

	return advisor, nil
}

// GetInvestor loads a single investor by id
func GetInvestor(ctx context.Context, investorID int64) (*Investor, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT investor_id, name, date_of_birth, advisor_id, account_id FROM investor WHERE investor_id=$1`
	investor := &Investor{}
	err = trx.QueryRow(ctx, sql, investorID).Scan(
		&investor.InvestorID, &investor.Name, &investor.DateOfBirth, &investor.AdvisorID, &investor.AccountID)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Stack().Err(err).Int64("InvestorID", investorID).Msg("could not load investor")
		return nil, err
	}

	commit(ctx, trx)
	return investor, nil
}

// ListInvestors returns all investors
func ListInvestors(ctx context.Context) ([]*Investor, error) {
	sql := `SELECT investor_id, name, date_of_birth, advisor_id, account_id FROM investor ORDER BY investor_id`
	return queryInvestors(ctx, sql)
}

// ListAdvisorInvestors returns the clients assigned to an advisor
func ListAdvisorInvestors(ctx context.Context, advisorID int64) ([]*Investor, error) {
	sql := `SELECT investor_id, name, date_of_birth, advisor_id, account_id FROM investor WHERE advisor_id=$1 ORDER BY investor_id`
	return queryInvestors(ctx, sql, advisorID)
}

func queryInvestors(ctx context.Context, sql string, args ...interface{}) ([]*Investor, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := trx.Query(ctx, sql, args...)
	if err != nil {
		log.Error().Stack().Err(err).Str("Query", sql).Msg("could not query investors")
		rollback(ctx, trx)
		return nil, err
	}

	investors := make([]*Investor, 0, 10)
	for rows.Next() {
		investor := &Investor{}
		if err := rows.Scan(&investor.InvestorID, &investor.Name, &investor.DateOfBirth, &investor.AdvisorID, &investor.AccountID); err != nil {
			log.Error().Stack().Err(err).Msg("could not scan investor")
			rollback(ctx, trx)
			return nil, err
		}
		investors = append(investors, investor)
	}
	if err := rows.Err(); err != nil {
		log.Error().Stack().Err(err).Msg("error reading investor rows")
		rollback(ctx, trx)
		return nil, err
	}

	commit(ctx, trx)
	return investors, nil
}

// UpdateInvestor mutates profile fields; a non-empty password flows through to
// the bound account row in the same transaction so profile and account stay
// in lockstep
func UpdateInvestor(ctx context.Context, investorID int64, name, dateOfBirth, password string) (*Investor, error) {
	subLog := log.With().Int64("InvestorID", investorID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT investor_id, name, date_of_birth, advisor_id, account_id FROM investor WHERE investor_id=$1`
	investor := &Investor{}
	err = trx.QueryRow(ctx, sql, investorID).Scan(
		&investor.InvestorID, &investor.Name, &investor.DateOfBirth, &investor.AdvisorID, &investor.AccountID)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		subLog.Error().Stack().Err(err).Msg("could not load investor")
		return nil, err
	}

	if name != "" {
		investor.Name = name
	}
	if dateOfBirth != "" {
		investor.DateOfBirth = dateOfBirth
	}

	updateSQL := `UPDATE investor SET name=$1, date_of_birth=$2 WHERE investor_id=$3`
	if _, err := trx.Exec(ctx, updateSQL, investor.Name, investor.DateOfBirth, investorID); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not update investor")
		rollback(ctx, trx)
		return nil, err
	}

	if password != "" {
		if err := updateAccountPassword(ctx, trx, investor.AccountID, password); err != nil {
			rollback(ctx, trx)
			return nil, err
		}
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit investor update")
		return nil, err
	}

	return investor, nil
}

// DeleteInvestor removes the investor and its bound account in one unit of
// work
func DeleteInvestor(ctx context.Context, investorID int64) error {
	subLog := log.With().Int64("InvestorID", investorID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return err
	}

	var accountID int64
	err = trx.QueryRow(ctx, `SELECT account_id FROM investor WHERE investor_id=$1`, investorID).Scan(&accountID)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		subLog.Error().Stack().Err(err).Msg("could not load investor")
		return err
	}

	if _, err := trx.Exec(ctx, `DELETE FROM investor WHERE investor_id=$1`, investorID); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not delete investor")
		rollback(ctx, trx)
		return err
	}

	if _, err := trx.Exec(ctx, `DELETE FROM account WHERE account_id=$1`, accountID); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not delete account")
		rollback(ctx, trx)
		return err
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit investor delete")
		return err
	}

	return nil
}

// GetAdvisor loads an advisor and its qualification rows
func GetAdvisor(ctx context.Context, advisorID int64) (*Advisor, error) {
	subLog := log.With().Int64("AdvisorID", advisorID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT advisor_id, name, account_id FROM advisor WHERE advisor_id=$1`
	advisor := &Advisor{}
	err = trx.QueryRow(ctx, sql, advisorID).Scan(&advisor.AdvisorID, &advisor.Name, &advisor.AccountID)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		subLog.Error().Stack().Err(err).Msg("could not load advisor")
		return nil, err
	}

	rows, err := trx.Query(ctx, `SELECT name FROM advisor_qualification WHERE advisor_id=$1 ORDER BY qualification_id`, advisorID)
	if err != nil {
		subLog.Error().Stack().Err(err).Msg("could not query qualifications")
		rollback(ctx, trx)
		return nil, err
	}

	advisor.Qualifications = make([]string, 0, 4)
	for rows.Next() {
		var qualification string
		if err := rows.Scan(&qualification); err != nil {
			subLog.Error().Stack().Err(err).Msg("could not scan qualification")
			rollback(ctx, trx)
			return nil, err
		}
		advisor.Qualifications = append(advisor.Qualifications, qualification)
	}
	if err := rows.Err(); err != nil {
		subLog.Error().Stack().Err(err).Msg("error reading qualification rows")
		rollback(ctx, trx)
		return nil, err
	}

	commit(ctx, trx)
	return advisor, nil
}

// ListAdvisors returns all advisors (without qualification rows)
func ListAdvisors(ctx context.Context) ([]*Advisor, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := trx.Query(ctx, `SELECT advisor_id, name, account_id FROM advisor ORDER BY advisor_id`)
	if err != nil {
		log.Error().Stack().Err(err).Msg("could not query advisors")
		rollback(ctx, trx)
		return nil, err
	}

	advisors := make([]*Advisor, 0, 10)
	for rows.Next() {
		advisor := &Advisor{}
		if err := rows.Scan(&advisor.AdvisorID, &advisor.Name, &advisor.AccountID); err != nil {
			log.Error().Stack().Err(err).Msg("could not scan advisor")
			rollback(ctx, trx)
			return nil, err
		}
		advisors = append(advisors, advisor)
	}
	if err := rows.Err(); err != nil {
		log.Error().Stack().Err(err).Msg("error reading advisor rows")
		rollback(ctx, trx)
		return nil, err
	}

	commit(ctx, trx)
	return advisors, nil
}

// UpdateAdvisor mutates the advisor name and, when non-empty, the account
// password
func UpdateAdvisor(ctx context.Context, advisorID int64, name, password string) (*Advisor, error) {
	subLog := log.With().Int64("AdvisorID", advisorID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	advisor := &Advisor{}
	err = trx.QueryRow(ctx, `SELECT advisor_id, name, account_id FROM advisor WHERE advisor_id=$1`, advisorID).Scan(
		&advisor.AdvisorID, &advisor.Name, &advisor.AccountID)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		subLog.Error().Stack().Err(err).Msg("could not load advisor")
		return nil, err
	}

	if name != "" {
		advisor.Name = name
	}

	if _, err := trx.Exec(ctx, `UPDATE advisor SET name=$1 WHERE advisor_id=$2`, advisor.Name, advisorID); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not update advisor")
		rollback(ctx, trx)
		return nil, err
	}

	if password != "" {
		if err := updateAccountPassword(ctx, trx, advisor.AccountID, password); err != nil {
			rollback(ctx, trx)
			return nil, err
		}
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit advisor update")
		return nil, err
	}

	return advisor, nil
}

// DeleteAdvisor removes the advisor, its qualifications, and its account in
// one unit of work. Fails if the advisor still has assigned clients (the
// investor foreign key blocks the delete).
func DeleteAdvisor(ctx context.Context, advisorID int64) error {
	subLog := log.With().Int64("AdvisorID", advisorID).Logger()

	trx, err := beginTrx(ctx)
	if err != nil {
		return err
	}

	var accountID int64
	err = trx.QueryRow(ctx, `SELECT account_id FROM advisor WHERE advisor_id=$1`, advisorID).Scan(&accountID)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		subLog.Error().Stack().Err(err).Msg("could not load advisor")
		return err
	}

	if _, err := trx.Exec(ctx, `DELETE FROM advisor WHERE advisor_id=$1`, advisorID); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not delete advisor")
		rollback(ctx, trx)
		return err
	}

	if _, err := trx.Exec(ctx, `DELETE FROM account WHERE account_id=$1`, accountID); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not delete account")
		rollback(ctx, trx)
		return err
	}

	if err := trx.Commit(ctx); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not commit advisor delete")
		return err
	}

	return nil
}

func updateAccountPassword(ctx context.Context, trx Queryer, accountID int64, password string) error {
	tag, err := trx.Exec(ctx, `UPDATE account SET password=$1 WHERE account_id=$2`, password, accountID)
	if err != nil {
		log.Error().Stack().Err(err).Int64("AccountID", accountID).Msg("could not update account password")
		return err
	}
	if tag.RowsAffected() != 1 {
		// a profile referencing a missing account means the binding invariant
		// already broke somewhere else
		log.Error().Stack().Int64("AccountID", accountID).Msg("profile references missing account")
		return ErrInvariant
	}
	return nil
}
