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

package advisory

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// Queryer is the slice of pgx.Tx the engines need. Callers pass the
// transaction their unit of work runs in; tests substitute a pgxmock
// connection.
type Queryer interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Account owns login identity; exactly one Investor or Advisor references a
// given account and IsAdvisor records which kind
type Account struct {
	AccountID int64  `json:"accountId"`
	Username  string `json:"username"`
	Password  string `json:"-"`
	IsAdvisor bool   `json:"isAdvisor"`
}

type Advisor struct {
	AdvisorID      int64    `json:"advisorId"`
	Name           string   `json:"name"`
	AccountID      int64    `json:"accountId"`
	Qualifications []string `json:"qualifications,omitempty"`
}

type Investor struct {
	InvestorID  int64  `json:"investorId"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	AdvisorID   int64  `json:"advisorId"`
	AccountID   int64  `json:"accountId"`
}

// Survey records an investor's risk and financial profile. AdvisorID is a
// snapshot of the investor's advisor at survey creation; it is not re-synced
// if the investor is later reassigned.
type Survey struct {
	InvestorID        int64   `json:"investorId"`
	AdvisorID         int64   `json:"advisorId"`
	RiskTolerance     string  `json:"riskTolerance"`
	Income            float64 `json:"income"`
	NetWorth          float64 `json:"netWorth"`
	InvestmentHorizon string  `json:"investmentHorizon"`
}

type Company struct {
	CompanyName       string `json:"companyName"`
	Industry          string `json:"industry"`
	SharesOutstanding int64  `json:"sharesOutstanding"`
	MarketCap         int64  `json:"marketCap"`
}

type Stock struct {
	Ticker       string  `json:"ticker"`
	CompanyName  string  `json:"companyName"`
	CurrentPrice float64 `json:"currentPrice"`
	TargetPrice  float64 `json:"targetPrice"`
}

type News struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
}

// Portfolio.Value is a snapshot of the sum of all holdings at creation time;
// it does not change if the market moves
type Portfolio struct {
	PortfolioID      int64     `json:"portfolioId"`
	Value            float64   `json:"value"`
	InvestorID       int64     `json:"investorId"`
	Bonds            []Holding `json:"bonds,omitempty"`
	CanadianEquities []Holding `json:"canadianEquities,omitempty"`
	USEquities       []Holding `json:"usEquities,omitempty"`
}

// Holding is one flat line item in a portfolio
type Holding struct {
	ID          int64   `json:"id"`
	PortfolioID int64   `json:"portfolioId"`
	Amount      float64 `json:"amount"`
}

// InvestmentOption is an offer an advisor extends; it is destroyed exactly
// once, either by conversion to an Investment or by explicit deletion
type InvestmentOption struct {
	ReferenceID int64   `json:"referenceId"`
	AdvisorID   int64   `json:"advisorId"`
	Amount      float64 `json:"amount"`
	InvType     string  `json:"invType"`
	CompanyName string  `json:"companyName"`
}

// Investment reuses the ReferenceID of the option it replaced. MarketValue is
// frozen at the price in effect at conversion time.
type Investment struct {
	ReferenceID int64   `json:"referenceId"`
	InvestorID  int64   `json:"investorId"`
	Holding     string  `json:"holding"`
	MarketValue float64 `json:"marketValue"`
}

type Report struct {
	ReferenceID    int64   `json:"referenceId"`
	Weekly         float64 `json:"weekly"`
	Monthly        float64 `json:"monthly"`
	Quarterly      float64 `json:"quarterly"`
	SemiAnnual     float64 `json:"semiAnnual"`
	Annual         float64 `json:"annual"`
	SinceInception float64 `json:"sinceInception"`
}

// ReportChanges carries a partial report update; each horizon is settable
// independently and a nil field leaves the stored value alone. Zero is a
// legal return percentage, hence pointers rather than zero-value sentinels.
type ReportChanges struct {
	Weekly         *float64 `json:"weekly"`
	Monthly        *float64 `json:"monthly"`
	Quarterly      *float64 `json:"quarterly"`
	SemiAnnual     *float64 `json:"semiAnnual"`
	Annual         *float64 `json:"annual"`
	SinceInception *float64 `json:"sinceInception"`
}
