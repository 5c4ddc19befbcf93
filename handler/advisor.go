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

type advisorParams struct {
	Name           string   `json:"name"`
	Username       string   `json:"username"`
	Password       string   `json:"password"`
	Qualifications []string `json:"qualifications"`
}

// CreateAdvisor creates an account, the advisor profile, and its
// qualification rows
func CreateAdvisor(c *fiber.Ctx) error {
	subLog := log.With().Str("Endpoint", "CreateAdvisor").Logger()

	params := advisorParams{}
	if err := json.Unmarshal(c.Body(), &params); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	advisor, err := advisory.CreateAdvisor(context.Background(), params.Name, params.Username, params.Password, params.Qualifications)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not create advisor")
		return statusError(err)
	}

	return c.JSON(advisor)
}

func GetAdvisor(c *fiber.Ctx) error {
	advisorID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	advisor, err := advisory.GetAdvisor(context.Background(), advisorID)
	if err != nil {
		log.Warn().Err(err).Int64("AdvisorID", advisorID).Str("Endpoint", "GetAdvisor").Msg("could not load advisor")
		return statusError(err)
	}

	return c.JSON(advisor)
}

func ListAdvisors(c *fiber.Ctx) error {
	advisors, err := advisory.ListAdvisors(context.Background())
	if err != nil {
		log.Warn().Err(err).Str("Endpoint", "ListAdvisors").Msg("could not list advisors")
		return statusError(err)
	}

	return c.JSON(advisors)
}

// ListAdvisorInvestors returns the clients assigned to an advisor
func ListAdvisorInvestors(c *fiber.Ctx) error {
	advisorID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	investors, err := advisory.ListAdvisorInvestors(context.Background(), advisorID)
	if err != nil {
		log.Warn().Err(err).Int64("AdvisorID", advisorID).Str("Endpoint", "ListAdvisorInvestors").Msg("could not list clients")
		return statusError(err)
	}

	return c.JSON(investors)
}

func UpdateAdvisor(c *fiber.Ctx) error {
	advisorID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	subLog := log.With().Int64("AdvisorID", advisorID).Str("Endpoint", "UpdateAdvisor").Logger()

	params := advisorParams{}
	if err := json.Unmarshal(c.Body(), &params); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	advisor, err := advisory.UpdateAdvisor(context.Background(), advisorID, params.Name, params.Password)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not update advisor")
		return statusError(err)
	}

	return c.JSON(advisor)
}

func DeleteAdvisor(c *fiber.Ctx) error {
	advisorID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := advisory.DeleteAdvisor(context.Background(), advisorID); err != nil {
		log.Warn().Err(err).Int64("AdvisorID", advisorID).Str("Endpoint", "DeleteAdvisor").Msg("could not delete advisor")
		return statusError(err)
	}

	return c.JSON(fiber.Map{"status": "success"})
}
