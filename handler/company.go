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

func CreateCompany(c *fiber.Ctx) error {
	subLog := log.With().Str("Endpoint", "CreateCompany").Logger()

	company := advisory.Company{}
	if err := json.Unmarshal(c.Body(), &company); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	if err := advisory.CreateCompany(context.Background(), &company); err != nil {
		subLog.Warn().Err(err).Str("CompanyName", company.CompanyName).Msg("could not create company")
		return statusError(err)
	}

	return c.JSON(company)
}

func GetCompany(c *fiber.Ctx) error {
	companyName := c.Params("name")

	company, err := advisory.GetCompany(context.Background(), companyName)
	if err != nil {
		log.Warn().Err(err).Str("CompanyName", companyName).Str("Endpoint", "GetCompany").Msg("could not load company")
		return statusError(err)
	}

	return c.JSON(company)
}

func ListCompanies(c *fiber.Ctx) error {
	companies, err := advisory.ListCompanies(context.Background())
	if err != nil {
		log.Warn().Err(err).Str("Endpoint", "ListCompanies").Msg("could not list companies")
		return statusError(err)
	}

	return c.JSON(companies)
}

func UpdateCompany(c *fiber.Ctx) error {
	companyName := c.Params("name")
	subLog := log.With().Str("CompanyName", companyName).Str("Endpoint", "UpdateCompany").Logger()

	company := advisory.Company{}
	if err := json.Unmarshal(c.Body(), &company); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}
	company.CompanyName = companyName

	if err := advisory.UpdateCompany(context.Background(), &company); err != nil {
		subLog.Warn().Err(err).Msg("could not update company")
		return statusError(err)
	}

	return c.JSON(company)
}

func DeleteCompany(c *fiber.Ctx) error {
	companyName := c.Params("name")

	if err := advisory.DeleteCompany(context.Background(), companyName); err != nil {
		log.Warn().Err(err).Str("CompanyName", companyName).Str("Endpoint", "DeleteCompany").Msg("could not delete company")
		return statusError(err)
	}

	return c.JSON(fiber.Map{"status": "success"})
}
