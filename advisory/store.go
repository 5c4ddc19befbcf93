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

// Package advisory implements the entity store operations of the
// financial-advisory platform: account/profile binding, advisor assignment,
// portfolio and investment valuation, and the CRUD surface the handlers sit
// on. Every externally triggered operation runs as one transaction; there is
// no partial-success mode.
package advisory

import (
	"context"

	"github.com/advisory-vault/av-api/database"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog/log"
)

func beginTrx(ctx context.Context) (pgx.Tx, error) {
	trx, err := database.Trx(ctx)
	if err != nil {
		log.Error().Stack().Err(err).Msg("could not begin transaction")
		return nil, err
	}
	return trx, nil
}

func rollback(ctx context.Context, trx pgx.Tx) {
	if err := trx.Rollback(ctx); err != nil {
		log.Error().Stack().Err(err).Msg("could not rollback transaction")
	}
}

// commit finalizes a read-only unit of work; write paths check the commit
// error themselves
func commit(ctx context.Context, trx pgx.Tx) {
	if err := trx.Commit(ctx); err != nil {
		log.Error().Stack().Err(err).Msg("could not commit transaction")
	}
}
