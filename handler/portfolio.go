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

package handler

import (
	"context"
	"encoding/json"

	"github.com/advisory-vault/av-api/advisory"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type portfolioParams struct {
	InvestorID       int64     `json:"investorId"`
	Bonds            []float64 `json:"bonds"`
	CanadianEquities []float64 `json:"canadianEquities"`
	USEquities       []float64 `json:"usEquities"`
}

// CreatePortfolio persists a portfolio with its computed value and one child
// row per holding amount
func CreatePortfolio(c *fiber.Ctx) error {
	subLog := log.With().Str("Endpoint", "CreatePortfolio").Logger()

	params := portfolioParams{}
	if err := json.Unmarshal(c.Body(), &params); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	portfolio, err := advisory.CreatePortfolio(context.Background(), params.InvestorID, params.Bonds, params.CanadianEquities, params.USEquities)
	if err != nil {
		subLog.Warn().Err(err).Int64("InvestorID", params.InvestorID).Msg("could not create portfolio")
		return statusError(err)
	}

	return c.JSON(portfolio)
}

func GetPortfolio(c *fiber.Ctx) error {
	portfolioID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	portfolio, err := advisory.GetPortfolio(context.Background(), portfolioID)
	if err != nil {
		log.Warn().Err(err).Int64("PortfolioID", portfolioID).Str("Endpoint", "GetPortfolio").Msg("could not load portfolio")
		return statusError(err)
	}

	return c.JSON(portfolio)
}
