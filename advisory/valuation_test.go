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
)

var _ = Describe("Portfolio valuation", func() {
	DescribeTable("sums all holding amounts",
		func(bonds, canadianEquities, usEquities []float64, expected float64) {
			Expect(advisory.PortfolioValue(bonds, canadianEquities, usEquities)).To(Equal(expected))
		},
		Entry("all sequences empty", []float64{}, []float64{}, []float64{}, 0.0),
		Entry("nil sequences", nil, nil, nil, 0.0),
		Entry("bonds only", []float64{100.0, 50.0}, []float64{}, []float64{}, 150.0),
		Entry("all three kinds", []float64{100.0, 50.0}, []float64{25.0}, []float64{}, 175.0),
		Entry("negative amounts pass through", []float64{-10.0}, []float64{25.0}, []float64{5.0}, 20.0),
		Entry("fractional amounts", []float64{0.25, 0.5}, []float64{0.125}, []float64{1.0}, 1.875),
	)
})

var _ = Describe("Market value", func() {
	var (
		dbConn pgxmock.PgxConnIface
		ctx    context.Context
	)

	BeforeEach(func() {
		var err error
		dbConn, err = pgxmock.NewConn()
		Expect(err).To(BeNil())
		ctx = context.Background()
	})

	AfterEach(func() {
		Expect(dbConn.ExpectationsWereMet()).To(Succeed())
	})

	Context("when the company has a stock registered", func() {
		It("multiplies current price by option amount", func() {
			option := &advisory.InvestmentOption{
				ReferenceID: 7,
				AdvisorID:   1,
				Amount:      5,
				InvType:     "equity",
				CompanyName: "Acme",
			}

			dbConn.ExpectQuery("SELECT s.current_price").
				WithArgs("Acme").
				WillReturnRows(pgxmock.NewRows([]string{"current_price"}).AddRow(10.0))

			value, err := advisory.MarketValue(ctx, dbConn, option)
			Expect(err).To(BeNil())
			Expect(value).To(Equal(50.0))
		})
	})

	Context("when the company has no stock", func() {
		It("fails with not found", func() {
			option := &advisory.InvestmentOption{
				ReferenceID: 7,
				Amount:      5,
				CompanyName: "Shelfco",
			}

			dbConn.ExpectQuery("SELECT s.current_price").
				WithArgs("Shelfco").
				WillReturnError(pgx.ErrNoRows)

			_, err := advisory.MarketValue(ctx, dbConn, option)
			Expect(err).To(MatchError(advisory.ErrNotFound))
		})
	})
})
