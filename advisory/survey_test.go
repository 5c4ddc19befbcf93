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

var _ = Describe("Risk surveys", func() {
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

	It("snapshots the investor's advisor at creation time", func() {
		dbConn.ExpectBegin()
		dbConn.ExpectQuery("SELECT advisor_id FROM investor").
			WithArgs(int64(21)).
			WillReturnRows(pgxmock.NewRows([]string{"advisor_id"}).AddRow(int64(4)))
		dbConn.ExpectExec("INSERT INTO survey").
			WithArgs(int64(21), int64(4), "moderate", 85000.0, 250000.0, "10y").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		dbConn.ExpectCommit()

		survey, err := advisory.CreateSurvey(ctx, &advisory.Survey{
			InvestorID:        21,
			RiskTolerance:     "moderate",
			Income:            85000,
			NetWorth:          250000,
			InvestmentHorizon: "10y",
		})
		Expect(err).To(BeNil())
		Expect(survey.AdvisorID).To(Equal(int64(4)))
	})

	It("rejects a survey for an unknown investor", func() {
		dbConn.ExpectBegin()
		dbConn.ExpectQuery("SELECT advisor_id FROM investor").
			WithArgs(int64(99)).
			WillReturnError(pgx.ErrNoRows)
		dbConn.ExpectRollback()

		_, err := advisory.CreateSurvey(ctx, &advisory.Survey{InvestorID: 99})
		Expect(err).To(MatchError(advisory.ErrNotFound))
	})

	It("does not rewrite the snapshotted advisor on update", func() {
		dbConn.ExpectBegin()
		dbConn.ExpectExec("UPDATE survey SET risk_tolerance").
			WithArgs("aggressive", 90000.0, 260000.0, "5y", int64(21)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		dbConn.ExpectCommit()

		err := advisory.UpdateSurvey(ctx, &advisory.Survey{
			InvestorID:        21,
			AdvisorID:         8,
			RiskTolerance:     "aggressive",
			Income:            90000,
			NetWorth:          260000,
			InvestmentHorizon: "5y",
		})
		Expect(err).To(BeNil())
	})
})
