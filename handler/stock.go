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

func CreateStock(c *fiber.Ctx) error {
	subLog := log.With().Str("Endpoint", "CreateStock").Logger()

	stock := advisory.Stock{}
	if err := json.Unmarshal(c.Body(), &stock); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	if err := advisory.CreateStock(context.Background(), &stock); err != nil {
		subLog.Warn().Err(err).Str("Ticker", stock.Ticker).Msg("could not create stock")
		return statusError(err)
	}

	return c.JSON(stock)
}

func GetStock(c *fiber.Ctx) error {
	ticker := c.Params("ticker")

	stock, err := advisory.GetStock(context.Background(), ticker)
	if err != nil {
		log.Warn().Err(err).Str("Ticker", ticker).Str("Endpoint", "GetStock").Msg("could not load stock")
		return statusError(err)
	}

	return c.JSON(stock)
}

func ListStocks(c *fiber.Ctx) error {
	stocks, err := advisory.ListStocks(context.Background())
	if err != nil {
		log.Warn().Err(err).Str("Endpoint", "ListStocks").Msg("could not list stocks")
		return statusError(err)
	}

	return c.JSON(stocks)
}

func UpdateStock(c *fiber.Ctx) error {
	ticker := c.Params("ticker")
	subLog := log.With().Str("Ticker", ticker).Str("Endpoint", "UpdateStock").Logger()

	stock := advisory.Stock{}
	if err := json.Unmarshal(c.Body(), &stock); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}
	stock.Ticker = ticker

	if err := advisory.UpdateStock(context.Background(), &stock); err != nil {
		subLog.Warn().Err(err).Msg("could not update stock")
		return statusError(err)
	}

	return c.JSON(stock)
}

func DeleteStock(c *fiber.Ctx) error {
	ticker := c.Params("ticker")

	if err := advisory.DeleteStock(context.Background(), ticker); err != nil {
		log.Warn().Err(err).Str("Ticker", ticker).Str("Endpoint", "DeleteStock").Msg("could not delete stock")
		return statusError(err)
	}

	return c.JSON(fiber.Map{"status": "success"})
}
