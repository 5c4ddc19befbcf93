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
	"strconv"

	"github.com/advisory-vault/av-api/advisory"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type optionParams struct {
	AdvisorID int64   `json:"advisorId"`
	Amount    float64 `json:"amount"`
	Company   string  `json:"company"`
	InvType   string  `json:"invType"`
}

type investParams struct {
	InvestorID int64 `json:"investorId"`
}

// CreateOption records a new offer extended by an advisor
func CreateOption(c *fiber.Ctx) error {
	subLog := log.With().Str("Endpoint", "CreateOption").Logger()

	params := optionParams{}
	if err := json.Unmarshal(c.Body(), &params); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	option, err := advisory.CreateOption(context.Background(), params.AdvisorID, params.Amount, params.InvType, params.Company)
	if err != nil {
		subLog.Warn().Err(err).Int64("AdvisorID", params.AdvisorID).Msg("could not create option")
		return statusError(err)
	}

	return c.JSON(option)
}

func GetOption(c *fiber.Ctx) error {
	referenceID, err := paramID(c, "refId")
	if err != nil {
		return err
	}

	option, err := advisory.GetOption(context.Background(), referenceID)
	if err != nil {
		log.Warn().Err(err).Int64("ReferenceID", referenceID).Str("Endpoint", "GetOption").Msg("could not load option")
		return statusError(err)
	}

	return c.JSON(option)
}

// ListOptions returns the open offers for the advisor given in the query
// string
func ListOptions(c *fiber.Ctx) error {
	advisorID, err := strconv.ParseInt(c.Query("advisorId"), 10, 64)
	if err != nil {
		return fiber.ErrBadRequest
	}

	options, err := advisory.ListAdvisorOptions(context.Background(), advisorID)
	if err != nil {
		log.Warn().Err(err).Int64("AdvisorID", advisorID).Str("Endpoint", "ListOptions").Msg("could not list options")
		return statusError(err)
	}

	return c.JSON(options)
}

func DeleteOption(c *fiber.Ctx) error {
	referenceID, err := paramID(c, "refId")
	if err != nil {
		return err
	}

	if err := advisory.DeleteOption(context.Background(), referenceID); err != nil {
		log.Warn().Err(err).Int64("ReferenceID", referenceID).Str("Endpoint", "DeleteOption").Msg("could not delete option")
		return statusError(err)
	}

	return c.JSON(fiber.Map{"status": "success"})
}

// AcceptOption converts an option into an investment for the investor in the
// request body; the second acceptance of the same reference id fails
func AcceptOption(c *fiber.Ctx) error {
	referenceID, err := paramID(c, "refId")
	if err != nil {
		return err
	}

	subLog := log.With().Int64("ReferenceID", referenceID).Str("Endpoint", "AcceptOption").Logger()

	params := investParams{}
	if err := json.Unmarshal(c.Body(), &params); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	investment, err := advisory.AcceptOption(context.Background(), referenceID, params.InvestorID)
	if err != nil {
		subLog.Warn().Err(err).Int64("InvestorID", params.InvestorID).Msg("could not accept option")
		return statusError(err)
	}

	return c.JSON(investment)
}

func GetInvestment(c *fiber.Ctx) error {
	referenceID, err := paramID(c, "refId")
	if err != nil {
		return err
	}

	investment, err := advisory.GetInvestment(context.Background(), referenceID)
	if err != nil {
		log.Warn().Err(err).Int64("ReferenceID", referenceID).Str("Endpoint", "GetInvestment").Msg("could not load investment")
		return statusError(err)
	}

	return c.JSON(investment)
}

// ListInvestments returns the accepted investments for the investor given in
// the query string
func ListInvestments(c *fiber.Ctx) error {
	investorID, err := strconv.ParseInt(c.Query("investorId"), 10, 64)
	if err != nil {
		return fiber.ErrBadRequest
	}

	investments, err := advisory.ListInvestorInvestments(context.Background(), investorID)
	if err != nil {
		log.Warn().Err(err).Int64("InvestorID", investorID).Str("Endpoint", "ListInvestments").Msg("could not list investments")
		return statusError(err)
	}

	return c.JSON(investments)
}
