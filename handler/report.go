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

func CreateReport(c *fiber.Ctx) error {
	subLog := log.With().Str("Endpoint", "CreateReport").Logger()

	report := advisory.Report{}
	if err := json.Unmarshal(c.Body(), &report); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	if err := advisory.CreateReport(context.Background(), &report); err != nil {
		subLog.Warn().Err(err).Int64("ReferenceID", report.ReferenceID).Msg("could not create report")
		return statusError(err)
	}

	return c.JSON(report)
}

func GetReport(c *fiber.Ctx) error {
	referenceID, err := paramID(c, "refId")
	if err != nil {
		return err
	}

	report, err := advisory.GetReport(context.Background(), referenceID)
	if err != nil {
		log.Warn().Err(err).Int64("ReferenceID", referenceID).Str("Endpoint", "GetReport").Msg("could not load report")
		return statusError(err)
	}

	return c.JSON(report)
}

// UpdateReport sets the horizons present in the request body; omitted
// horizons keep their stored value
func UpdateReport(c *fiber.Ctx) error {
	referenceID, err := paramID(c, "refId")
	if err != nil {
		return err
	}

	subLog := log.With().Int64("ReferenceID", referenceID).Str("Endpoint", "UpdateReport").Logger()

	changes := advisory.ReportChanges{}
	if err := json.Unmarshal(c.Body(), &changes); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	report, err := advisory.UpdateReport(context.Background(), referenceID, &changes)
	if err != nil {
		subLog.Warn().Err(err).Msg("could not update report")
		return statusError(err)
	}

	return c.JSON(report)
}
