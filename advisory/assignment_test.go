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

var _ = Describe("Advisor assignment", func() {
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

	Context("when advisors are registered", func() {
		It("returns the advisor with the fewest clients", func() {
			dbConn.ExpectQuery("SELECT a.advisor_id").
				WillReturnRows(pgxmock.NewRows([]string{"advisor_id"}).AddRow(int64(3)))

			advisorID, err := advisory.LeastBusyAdvisor(ctx, dbConn)
			Expect(err).To(BeNil())
			Expect(advisorID).To(Equal(int64(3)))
		})

		// the count ordering and the lowest-id tie-break live in the query
		// itself; match the whole statement so a rewrite cannot drop the
		// outer join or the deterministic ordering unnoticed
		It("counts clients through an outer join and breaks ties by lowest id", func() {
			querySQL := `SELECT a\.advisor_id\s+` +
				`FROM advisor a\s+` +
				`LEFT JOIN investor i ON i\.advisor_id = a\.advisor_id\s+` +
				`GROUP BY a\.advisor_id\s+` +
				`ORDER BY COUNT\(i\.investor_id\), a\.advisor_id\s+` +
				`LIMIT 1`
			dbConn.ExpectQuery(querySQL).
				WillReturnRows(pgxmock.NewRows([]string{"advisor_id"}).AddRow(int64(1)))

			advisorID, err := advisory.LeastBusyAdvisor(ctx, dbConn)
			Expect(err).To(BeNil())
			Expect(advisorID).To(Equal(int64(1)))
		})
	})

	Context("when no advisors exist", func() {
		It("fails with an empty roster error", func() {
			dbConn.ExpectQuery("SELECT a.advisor_id").
				WillReturnError(pgx.ErrNoRows)

			_, err := advisory.LeastBusyAdvisor(ctx, dbConn)
			Expect(err).To(MatchError(advisory.ErrEmptyRoster))
		})
	})
})
