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

var _ = Describe("Investor registration", func() {
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

	Context("when an advisor is available", func() {
		It("binds account, assignment and profile in one unit of work", func() {
			dbConn.ExpectBegin()
			dbConn.ExpectQuery("INSERT INTO account").
				WithArgs("jane", "hunter2", false).
				WillReturnRows(pgxmock.NewRows([]string{"account_id"}).AddRow(int64(11)))
			dbConn.ExpectQuery("SELECT a.advisor_id").
				WillReturnRows(pgxmock.NewRows([]string{"advisor_id"}).AddRow(int64(4)))
			dbConn.ExpectQuery("INSERT INTO investor").
				WithArgs("Jane Doe", "1990-04-01", int64(4), int64(11)).
				WillReturnRows(pgxmock.NewRows([]string{"investor_id"}).AddRow(int64(21)))
			dbConn.ExpectCommit()

			investor, err := advisory.CreateInvestor(ctx, "Jane Doe", "1990-04-01", "jane", "hunter2")
			Expect(err).To(BeNil())
			Expect(investor.InvestorID).To(Equal(int64(21)))
			Expect(investor.AdvisorID).To(Equal(int64(4)))
			Expect(investor.AccountID).To(Equal(int64(11)))
		})
	})

	Context("when two investors register in sequence", func() {
		It("sends the second to the advisor the first did not get", func() {
			// two advisors, both idle; the first registration fills advisor 1
			dbConn.ExpectBegin()
			dbConn.ExpectQuery("INSERT INTO account").
				WithArgs("jane", "hunter2", false).
				WillReturnRows(pgxmock.NewRows([]string{"account_id"}).AddRow(int64(11)))
			dbConn.ExpectQuery("SELECT a.advisor_id").
				WillReturnRows(pgxmock.NewRows([]string{"advisor_id"}).AddRow(int64(1)))
			dbConn.ExpectQuery("INSERT INTO investor").
				WithArgs("Jane Doe", "1990-04-01", int64(1), int64(11)).
				WillReturnRows(pgxmock.NewRows([]string{"investor_id"}).AddRow(int64(21)))
			dbConn.ExpectCommit()

			// advisor 1 now holds one client, so the roster ranks advisor 2
			// first for the next registration
			dbConn.ExpectBegin()
			dbConn.ExpectQuery("INSERT INTO account").
				WithArgs("john", "hunter3", false).
				WillReturnRows(pgxmock.NewRows([]string{"account_id"}).AddRow(int64(12)))
			dbConn.ExpectQuery("SELECT a.advisor_id").
				WillReturnRows(pgxmock.NewRows([]string{"advisor_id"}).AddRow(int64(2)))
			dbConn.ExpectQuery("INSERT INTO investor").
				WithArgs("John Roe", "1985-09-20", int64(2), int64(12)).
				WillReturnRows(pgxmock.NewRows([]string{"investor_id"}).AddRow(int64(22)))
			dbConn.ExpectCommit()

			first, err := advisory.CreateInvestor(ctx, "Jane Doe", "1990-04-01", "jane", "hunter2")
			Expect(err).To(BeNil())

			second, err := advisory.CreateInvestor(ctx, "John Roe", "1985-09-20", "john", "hunter3")
			Expect(err).To(BeNil())

			Expect(first.AdvisorID).To(Equal(int64(1)))
			Expect(second.AdvisorID).To(Equal(int64(2)))
			Expect(second.AdvisorID).NotTo(Equal(first.AdvisorID))
		})
	})

	Context("when no advisors are registered", func() {
		It("rolls the new account back", func() {
			dbConn.ExpectBegin()
			dbConn.ExpectQuery("INSERT INTO account").
				WithArgs("jane", "hunter2", false).
				WillReturnRows(pgxmock.NewRows([]string{"account_id"}).AddRow(int64(11)))
			dbConn.ExpectQuery("SELECT a.advisor_id").
				WillReturnError(pgx.ErrNoRows)
			dbConn.ExpectRollback()

			_, err := advisory.CreateInvestor(ctx, "Jane Doe", "1990-04-01", "jane", "hunter2")
			Expect(err).To(MatchError(advisory.ErrEmptyRoster))
		})
	})
})

var _ = Describe("Advisor registration", func() {
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

	It("writes one qualification row per entry", func() {
		dbConn.ExpectBegin()
		dbConn.ExpectQuery("INSERT INTO account").
			WithArgs("alex", "s3cret", true).
			WillReturnRows(pgxmock.NewRows([]string{"account_id"}).AddRow(int64(5)))
		dbConn.ExpectQuery("INSERT INTO advisor").
			WithArgs("Alex Smith", int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"advisor_id"}).AddRow(int64(2)))
		dbConn.ExpectExec("INSERT INTO advisor_qualification").
			WithArgs(int64(2), "CFA").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		dbConn.ExpectExec("INSERT INTO advisor_qualification").
			WithArgs(int64(2), "CFP").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		dbConn.ExpectCommit()

		advisor, err := advisory.CreateAdvisor(ctx, "Alex Smith", "alex", "s3cret", []string{"CFA", "CFP"})
		Expect(err).To(BeNil())
		Expect(advisor.AdvisorID).To(Equal(int64(2)))
		Expect(advisor.Qualifications).To(Equal([]string{"CFA", "CFP"}))
	})
})

var _ = Describe("Investor listing", func() {
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

	It("reports a connection failure mid-iteration instead of a short list", func() {
		dbConn.ExpectBegin()
		dbConn.ExpectQuery("SELECT investor_id, name, date_of_birth, advisor_id, account_id FROM investor").
			WillReturnRows(pgxmock.NewRows(
				[]string{"investor_id", "name", "date_of_birth", "advisor_id", "account_id"}).
				AddRow(int64(21), "Jane Doe", "1990-04-01", int64(4), int64(11)).
				AddRow(int64(22), "John Roe", "1985-09-20", int64(4), int64(12)).
				RowError(1, errDatabaseDown))
		dbConn.ExpectRollback()

		_, err := advisory.ListInvestors(ctx)
		Expect(err).To(MatchError(errDatabaseDown))
	})
})

var _ = Describe("Profile updates", func() {
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

	It("flows a new password through to the bound account", func() {
		dbConn.ExpectBegin()
		dbConn.ExpectQuery("SELECT investor_id, name, date_of_birth, advisor_id, account_id FROM investor").
			WithArgs(int64(21)).
			WillReturnRows(pgxmock.NewRows(
				[]string{"investor_id", "name", "date_of_birth", "advisor_id", "account_id"}).
				AddRow(int64(21), "Jane Doe", "1990-04-01", int64(4), int64(11)))
		dbConn.ExpectExec("UPDATE investor SET").
			WithArgs("Jane Doe", "1990-04-01", int64(21)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		dbConn.ExpectExec("UPDATE account SET password").
			WithArgs("newpass", int64(11)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		dbConn.ExpectCommit()

		investor, err := advisory.UpdateInvestor(ctx, 21, "", "", "newpass")
		Expect(err).To(BeNil())
		Expect(investor.Name).To(Equal("Jane Doe"))
	})

	It("fails with an invariant error when the account row is missing", func() {
		dbConn.ExpectBegin()
		dbConn.ExpectQuery("SELECT investor_id, name, date_of_birth, advisor_id, account_id FROM investor").
			WithArgs(int64(21)).
			WillReturnRows(pgxmock.NewRows(
				[]string{"investor_id", "name", "date_of_birth", "advisor_id", "account_id"}).
				AddRow(int64(21), "Jane Doe", "1990-04-01", int64(4), int64(11)))
		dbConn.ExpectExec("UPDATE investor SET").
			WithArgs("Jane Doe", "1990-04-01", int64(21)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		dbConn.ExpectExec("UPDATE account SET password").
			WithArgs("newpass", int64(11)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		dbConn.ExpectRollback()

		_, err := advisory.UpdateInvestor(ctx, 21, "", "", "newpass")
		Expect(err).To(MatchError(advisory.ErrInvariant))
	})
})
