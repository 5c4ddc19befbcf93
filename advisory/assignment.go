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

// LeastBusyAdvisor returns the advisor currently holding the fewest clients.
// The LEFT JOIN keeps advisors with zero clients eligible; ties break
// deterministically to the lowest advisor id. Returns ErrEmptyRoster when no
// advisors exist.
//
// The read is not linearizable with concurrent investor creation; two
// investors racing may both land on the same advisor. That approximation is
// accepted.
func LeastBusyAdvisor(ctx context.Context, trx Queryer) (int64, error) {
	sql := `SELECT a.advisor_id
		FROM advisor a
		LEFT JOIN investor i ON i.advisor_id = a.advisor_id
		GROUP BY a.advisor_id
		ORDER BY COUNT(i.investor_id), a.advisor_id
		LIMIT 1`

	var advisorID int64
	err := trx.QueryRow(ctx, sql).Scan(&advisorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrEmptyRoster
	}
	if err != nil {
		log.Error().Stack().Err(err).Str("Query", sql).Msg("could not query advisor client counts")
		return 0, err
	}

	return advisorID, nil
}
