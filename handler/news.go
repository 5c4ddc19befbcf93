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

func CreateNews(c *fiber.Ctx) error {
	subLog := log.With().Str("Endpoint", "CreateNews").Logger()

	news := advisory.News{}
	if err := json.Unmarshal(c.Body(), &news); err != nil {
		subLog.Warn().Err(err).Msg("bad request")
		return fiber.ErrBadRequest
	}

	if err := advisory.CreateNews(context.Background(), &news); err != nil {
		subLog.Warn().Err(err).Str("Headline", news.Headline).Msg("could not create news")
		return statusError(err)
	}

	return c.JSON(news)
}

func GetNews(c *fiber.Ctx) error {
	headline := c.Params("headline")

	news, err := advisory.GetNews(context.Background(), headline)
	if err != nil {
		log.Warn().Err(err).Str("Headline", headline).Str("Endpoint", "GetNews").Msg("could not load news")
		return statusError(err)
	}

	return c.JSON(news)
}

// SearchNews matches articles by substring against the q query parameter,
// typically a company name or ticker
func SearchNews(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return fiber.ErrBadRequest
	}

	articles, err := advisory.SearchNews(context.Background(), term)
	if err != nil {
		log.Warn().Err(err).Str("Term", term).Str("Endpoint", "SearchNews").Msg("could not search news")
		return statusError(err)
	}

	return c.JSON(articles)
}
