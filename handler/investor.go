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

type investorParams struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

// CreateInvestor creates an account and an investor profile; the advisor with
// the fewest clients is assigned
func CreateInvestor(c *fiber.Ctx) error {
	subLog := log.With().Str("Endpoint", "CreateInvestor").Logger()

	params := investorParams{}
	if err := json.Unmarshal(c.Body(), &params); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	investor, err := advisory.CreateInvestor(context.Background(), params.Name, params.DateOfBirth, params.Username, params.Password)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not create investor")
		return statusError(err)
	}

	return c.JSON(investor)
}

func GetInvestor(c *fiber.Ctx) error {
	investorID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	investor, err := advisory.GetInvestor(context.Background(), investorID)
	if err != nil {
		log.Warn().Err(err).Int64("InvestorID", investorID).Str("Endpoint", "GetInvestor").Msg("could not load investor")
		return statusError(err)
	}

	return c.JSON(investor)
}

func ListInvestors(c *fiber.Ctx) error {
	investors, err := advisory.ListInvestors(context.Background())
	if err != nil {
		log.Warn().Err(err).Str("Endpoint", "ListInvestors").Msg("could not list investors")
		return statusError(err)
	}

	return c.JSON(investors)
}

// UpdateInvestor changes profile fields; a password in the body is written
// through to the bound account
func UpdateInvestor(c *fiber.Ctx) error {
	investorID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	subLog := log.With().Int64("InvestorID", investorID).Str("Endpoint", "UpdateInvestor").Logger()

	params := investorParams{}
	if err := json.Unmarshal(c.Body(), &params); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	investor, err := advisory.UpdateInvestor(context.Background(), investorID, params.Name, params.DateOfBirth, params.Password)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not update investor")
		return statusError(err)
	}

	return c.JSON(investor)
}

func DeleteInvestor(c *fiber.Ctx) error {
	investorID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := advisory.DeleteInvestor(context.Background(), investorID); err != nil {
		log.Warn().Err(err).Int64("InvestorID", investorID).Str("Endpoint", "DeleteInvestor").Msg("could not delete investor")
		return statusError(err)
	}

	return c.JSON(fiber.Map{"status": "success"})
}
