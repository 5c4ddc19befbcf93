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

package router

import (
	"github.com/advisory-vault/av-api/handler"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes setup router api
func SetupRoutes(app *fiber.App) {
	api := app.Group("/v1")
	api.Get("/", handler.Ping)

	// Investor
	investor := api.Group("/investor")
	investor.Post("/", handler.CreateInvestor)
	investor.Get("/", handler.ListInvestors)
	investor.Get("/:id", handler.GetInvestor)
	investor.Patch("/:id", handler.UpdateInvestor)
	investor.Delete("/:id", handler.DeleteInvestor)

	// Advisor
	advisor := api.Group("/advisor")
	advisor.Post("/", handler.CreateAdvisor)
	advisor.Get("/", handler.ListAdvisors)
	advisor.Get("/:id", handler.GetAdvisor)
	advisor.Get("/:id/investors", handler.ListAdvisorInvestors)
	advisor.Patch("/:id", handler.UpdateAdvisor)
	advisor.Delete("/:id", handler.DeleteAdvisor)

	// Portfolio
	portfolio := api.Group("/portfolio")
	portfolio.Post("/", handler.CreatePortfolio)
	portfolio.Get("/:id", handler.GetPortfolio)

	// Investment options and investments
	investment := api.Group("/investment")
	investment.Post("/options", handler.CreateOption)
	investment.Get("/options", handler.ListOptions)
	investment.Get("/options/:refId", handler.GetOption)
	investment.Delete("/options/:refId", handler.DeleteOption)
	investment.Put("/invest/:refId", handler.AcceptOption)
	investment.Get("/", handler.ListInvestments)
	investment.Get("/:refId", handler.GetInvestment)

	// Survey
	survey := api.Group("/survey")
	survey.Post("/", handler.CreateSurvey)
	survey.Get("/:investorId", handler.GetSurvey)
	survey.Patch("/:investorId", handler.UpdateSurvey)

	// Company
	company := api.Group("/company")
	company.Post("/", handler.CreateCompany)
	company.Get("/", handler.ListCompanies)
	company.Get("/:name", handler.GetCompany)
	company.Patch("/:name", handler.UpdateCompany)
	company.Delete("/:name", handler.DeleteCompany)

	// Stock
	stock := api.Group("/stock")
	stock.Post("/", handler.CreateStock)
	stock.Get("/", handler.ListStocks)
	stock.Get("/:ticker", handler.GetStock)
	stock.Patch("/:ticker", handler.UpdateStock)
	stock.Delete("/:ticker", handler.DeleteStock)

	// News
	news := api.Group("/news")
	news.Post("/", handler.CreateNews)
	news.Get("/", handler.SearchNews)
	news.Get("/:headline", handler.GetNews)

	// Report
	report := api.Group("/report")
	report.Post("/", handler.CreateReport)
	report.Get("/:refId", handler.GetReport)
	report.Patch("/:refId", handler.UpdateReport)
}
