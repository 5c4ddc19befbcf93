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

package advisory_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/jackc/pgx/v4"
	"github.com/pashagolub/pgxmock"

	"github.com/advisory-vault/av-api/advisory"
	"github.com/advisory-vault/av-api/database"
)

var _ = Describe("Option acceptance", func() {
	var (
		dbConn pgxmock.PgxConnIface
		ctx    context.Context
	)

	BeforeEach(func() {
		var err error
		dbConn, err = pgxmock.NewConn()
		Expect(err).To(BeNil())
		database.SetPool(dbConn)
		ctx = context.Background()
	})

	AfterEach(func() {
		Expect(dbConn.ExpectationsWereMet()).To(Succeed())
	})

	Context("when the option is still open", func() {
		It("converts the option into an investment at the current price", func() {
			dbConn.ExpectBegin()
			dbConn.ExpectQuery("SELECT reference_id, advisor_id, amount, inv_type, company_name").
				WithArgs(int64(1)).
				WillReturnRows(pgxmock.NewRows(
					[]string{"reference_id", "advisor_id", "amount", "inv_type", "company_name"}).
					AddRow(int64(1), int64(2), 5.0, "stock", "Acme"))
			dbConn.ExpectQuery("SELECT s.current_price").
				WithArgs("Acme").
				WillReturnRows(pgxmock.NewRows([]string{"current_price"}).AddRow(10.0))
			dbConn.ExpectExec("INSERT INTO investment").
				WithArgs(int64(1), int64(7), "Acme", 50.0).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
			dbConn.ExpectExec("DELETE FROM investment_option").
				WithArgs(int64(1)).
				WillReturnResult(pgxmock.NewResult("DELETE", 1))
			dbConn.ExpectCommit()

			investment, err := advisory.AcceptOption(ctx, 1, 7)
			Expect(err).To(BeNil())
			Expect(investment.ReferenceID).To(Equal(int64(1)))
			Expect(investment.InvestorID).To(Equal(int64(7)))
			Expect(investment.Holding).To(Equal("Acme"))
			Expect(investment.MarketValue).To(Equal(50.0))
		})
	})

	Context("when the option was already accepted", func() {
		It("fails with not found and leaves nothing behind", func() {
			dbConn.ExpectBegin()
			dbConn.ExpectQuery("SELECT reference_id, advisor_id, amount, inv_type, company_name").
				WithArgs(int64(1)).
				WillReturnError(pgx.ErrNoRows)
			dbConn.ExpectRollback()

			_, err := advisory.AcceptOption(ctx, 1, 9)
			Expect(err).To(MatchError(advisory.ErrNotFound))
		})
	})

	Context("when the option vanishes mid-transaction", func() {
		It("rolls back with a conflict", func() {
			dbConn.ExpectBegin()
			dbConn.ExpectQuery("SELECT reference_id, advisor_id, amount, inv_type, company_name").
				WithArgs(int64(1)).
				WillReturnRows(pgxmock.NewRows(
					[]string{"reference_id", "advisor_id", "amount", "inv_type", "company_name"}).
					AddRow(int64(1), int64(2), 5.0, "stock", "Acme"))
			dbConn.ExpectQuery("SELECT s.current_price").
				WithArgs("Acme").
				WillReturnRows(pgxmock.NewRows([]string{"current_price"}).AddRow(10.0))
			dbConn.ExpectExec("INSERT INTO investment").
				WithArgs(int64(1), int64(7), "Acme", 50.0).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
			dbConn.ExpectExec("DELETE FROM investment_option").
				WithArgs(int64(1)).
				WillReturnResult(pgxmock.NewResult("DELETE", 0))
			dbConn.ExpectRollback()

			_, err := advisory.AcceptOption(ctx, 1, 7)
			Expect(err).To(MatchError(advisory.ErrConflict))
		})
	})

	Context("when the company has no stock listed", func() {
		It("refuses the acceptance", func() {
			dbConn.ExpectBegin()
			dbConn.ExpectQuery("SELECT reference_id, advisor_id, amount, inv_type, company_name").
				WithArgs(int64(1)).
				WillReturnRows(pgxmock.NewRows(
					[]string{"reference_id", "advisor_id", "amount", "inv_type", "company_name"}).
					AddRow(int64(1), int64(2), 5.0, "stock", "Ghost Corp"))
			dbConn.ExpectQuery("SELECT s.current_price").
				WithArgs("Ghost Corp").
				WillReturnError(pgx.ErrNoRows)
			dbConn.ExpectRollback()

			_, err := advisory.AcceptOption(ctx, 1, 7)
			Expect(err).To(MatchError(advisory.ErrNotFound))
		})
	})
})
