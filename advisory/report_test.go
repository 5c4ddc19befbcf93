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

var _ = Describe("Performance reports", func() {
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

	reportColumns := []string{"reference_id", "weekly", "monthly", "quarterly", "semi_annual", "annual", "since_inception"}

	It("updates only the horizons present in the change set", func() {
		dbConn.ExpectBegin()
		dbConn.ExpectQuery("SELECT reference_id, weekly").
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(reportColumns).
				AddRow(int64(1), 1.0, 2.0, 3.0, 4.0, 5.0, 6.0))
		dbConn.ExpectExec("UPDATE report SET").
			WithArgs(2.5, 2.0, 3.0, 4.0, 5.0, 6.0, int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		dbConn.ExpectCommit()

		weekly := 2.5
		report, err := advisory.UpdateReport(ctx, 1, &advisory.ReportChanges{Weekly: &weekly})
		Expect(err).To(BeNil())
		Expect(report.Weekly).To(Equal(2.5))
		Expect(report.Monthly).To(Equal(2.0))
		Expect(report.SinceInception).To(Equal(6.0))
	})

	It("allows setting a horizon to zero", func() {
		dbConn.ExpectBegin()
		dbConn.ExpectQuery("SELECT reference_id, weekly").
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(reportColumns).
				AddRow(int64(1), 1.0, 2.0, 3.0, 4.0, 5.0, 6.0))
		dbConn.ExpectExec("UPDATE report SET").
			WithArgs(1.0, 2.0, 3.0, 4.0, 0.0, 6.0, int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		dbConn.ExpectCommit()

		annual := 0.0
		report, err := advisory.UpdateReport(ctx, 1, &advisory.ReportChanges{Annual: &annual})
		Expect(err).To(BeNil())
		Expect(report.Annual).To(Equal(0.0))
	})

	It("fails with not found for a missing report", func() {
		dbConn.ExpectBegin()
		dbConn.ExpectQuery("SELECT reference_id, weekly").
			WithArgs(int64(99)).
			WillReturnError(pgx.ErrNoRows)
		dbConn.ExpectRollback()

		weekly := 2.5
		_, err := advisory.UpdateReport(ctx, 99, &advisory.ReportChanges{Weekly: &weekly})
		Expect(err).To(MatchError(advisory.ErrNotFound))
	})
})
