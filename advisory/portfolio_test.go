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
	"github.com/pashagolub/pgxmock"

	"github.com/advisory-vault/av-api/advisory"
	"github.com/advisory-vault/av-api/database"
)

var _ = Describe("Portfolio creation", func() {
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

	It("stores the computed value and one row per holding", func() {
		dbConn.ExpectBegin()
		dbConn.ExpectQuery("INSERT INTO portfolio ").
			WithArgs(175.0, int64(21)).
			WillReturnRows(pgxmock.NewRows([]string{"portfolio_id"}).AddRow(int64(8)))
		dbConn.ExpectQuery("INSERT INTO portfolio_bond").
			WithArgs(int64(8), 100.0).
			WillReturnRows(pgxmock.NewRows([]string{"bond_id"}).AddRow(int64(1)))
		dbConn.ExpectQuery("INSERT INTO portfolio_bond").
			WithArgs(int64(8), 50.0).
			WillReturnRows(pgxmock.NewRows([]string{"bond_id"}).AddRow(int64(2)))
		dbConn.ExpectQuery("INSERT INTO portfolio_canadian_equity").
			WithArgs(int64(8), 25.0).
			WillReturnRows(pgxmock.NewRows([]string{"canadian_equity_id"}).AddRow(int64(1)))
		dbConn.ExpectCommit()

		portfolio, err := advisory.CreatePortfolio(ctx, 21,
			[]float64{100, 50}, []float64{25}, []float64{})
		Expect(err).To(BeNil())
		Expect(portfolio.PortfolioID).To(Equal(int64(8)))
		Expect(portfolio.Value).To(Equal(175.0))
		Expect(portfolio.Bonds).To(HaveLen(2))
		Expect(portfolio.CanadianEquities).To(HaveLen(1))
		Expect(portfolio.USEquities).To(BeEmpty())
	})

	It("rolls back when a holding insert fails", func() {
		dbConn.ExpectBegin()
		dbConn.ExpectQuery("INSERT INTO portfolio ").
			WithArgs(100.0, int64(21)).
			WillReturnRows(pgxmock.NewRows([]string{"portfolio_id"}).AddRow(int64(8)))
		dbConn.ExpectQuery("INSERT INTO portfolio_bond").
			WithArgs(int64(8), 100.0).
			WillReturnError(errDatabaseDown)
		dbConn.ExpectRollback()

		_, err := advisory.CreatePortfolio(ctx, 21, []float64{100}, nil, nil)
		Expect(err).To(MatchError(errDatabaseDown))
	})
})
