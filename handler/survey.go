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

// CreateSurvey records an investor's risk profile; the advisor id is
// snapshotted from the investor at creation
func CreateSurvey(c *fiber.Ctx) error {
	subLog := log.With().Str("Endpoint", "CreateSurvey").Logger()

	params := advisory.Survey{}
	if err := json.Unmarshal(c.Body(), &params); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	survey, err := advisory.CreateSurvey(context.Background(), &params)
	if err != nil {
		subLog.Warn().Err(err).Int64("InvestorID", params.InvestorID).Msg("could not create survey")
		return statusError(err)
	}

	return c.JSON(survey)
}

func GetSurvey(c *fiber.Ctx) error {
	investorID, err := paramID(c, "investorId")
	if err != nil {
		return err
	}

	survey, err := advisory.GetSurvey(context.Background(), investorID)
	if err != nil {
		log.Warn().Err(err).Int64("InvestorID", investorID).Str("Endpoint", "GetSurvey").Msg("could not load survey")
		return statusError(err)
	}

	return c.JSON(survey)
}

func UpdateSurvey(c *fiber.Ctx) error {
	investorID, err := paramID(c, "investorId")
	if err != nil {
		return err
	}

	subLog := log.With().Int64("InvestorID", investorID).Str("Endpoint", "UpdateSurvey").Logger()

	params := advisory.Survey{}
	if err := json.Unmarshal(c.Body(), &params); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}
	params.InvestorID = investorID

	if err := advisory.UpdateSurvey(context.Background(), &params); err != nil {
		subLog.Warn().Err(err).Msg("could not update survey")
		return statusError(err)
	}

	survey, err := advisory.GetSurvey(context.Background(), investorID)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not reload survey")
		return statusError(err)
	}

	return c.JSON(survey)
}
