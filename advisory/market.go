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

// Company, stock, and news reference data

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog/log"
)

func CreateCompany(ctx context.Context, company *Company) error {
	trx, err := beginTrx(ctx)
	if err != nil {
		return err
	}

	sql := `INSERT INTO company ("company_name", "industry", "shares_outstanding", "market_cap") VALUES ($1, $2, $3, $4)`
	if _, err := trx.Exec(ctx, sql, company.CompanyName, company.Industry, company.SharesOutstanding, company.MarketCap); err != nil {
		log.Error().Stack().Err(err).Str("CompanyName", company.CompanyName).Msg("could not insert company")
		rollback(ctx, trx)
		return err
	}

	if err := trx.Commit(ctx); err != nil {
		log.Error().Stack().Err(err).Msg("could not commit company creation")
		return err
	}

	return nil
}

func GetCompany(ctx context.Context, companyName string) (*Company, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT company_name, industry, shares_outstanding, market_cap FROM company WHERE company_name=$1`
	company := &Company{}
	err = trx.QueryRow(ctx, sql, companyName).Scan(
		&company.CompanyName, &company.Industry, &company.SharesOutstanding, &company.MarketCap)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Stack().Err(err).Str("CompanyName", companyName).Msg("could not load company")
		return nil, err
	}

	commit(ctx, trx)
	return company, nil
}

func ListCompanies(ctx context.Context) ([]*Company, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := trx.Query(ctx, `SELECT company_name, industry, shares_outstanding, market_cap FROM company ORDER BY company_name`)
	if err != nil {
		log.Error().Stack().Err(err).Msg("could not query companies")
		rollback(ctx, trx)
		return nil, err
	}

	companies := make([]*Company, 0, 10)
	for rows.Next() {
		company := &Company{}
		if err := rows.Scan(&company.CompanyName, &company.Industry, &company.SharesOutstanding, &company.MarketCap); err != nil {
			log.Error().Stack().Err(err).Msg("could not scan company")
			rollback(ctx, trx)
			return nil, err
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		log.Error().Stack().Err(err).Msg("error reading company rows")
		rollback(ctx, trx)
		return nil, err
	}

	commit(ctx, trx)
	return companies, nil
}

func UpdateCompany(ctx context.Context, company *Company) error {
	trx, err := beginTrx(ctx)
	if err != nil {
		return err
	}

	sql := `UPDATE company SET industry=$1, shares_outstanding=$2, market_cap=$3 WHERE company_name=$4`
	tag, err := trx.Exec(ctx, sql, company.Industry, company.SharesOutstanding, company.MarketCap, company.CompanyName)
	if err != nil {
		log.Error().Stack().Err(err).Str("CompanyName", company.CompanyName).Msg("could not update company")
		rollback(ctx, trx)
		return err
	}
	if tag.RowsAffected() != 1 {
		rollback(ctx, trx)
		return ErrNotFound
	}

	if err := trx.Commit(ctx); err != nil {
		log.Error().Stack().Err(err).Msg("could not commit company update")
		return err
	}

	return nil
}

func DeleteCompany(ctx context.Context, companyName string) error {
	trx, err := beginTrx(ctx)
	if err != nil {
		return err
	}

	tag, err := trx.Exec(ctx, `DELETE FROM company WHERE company_name=$1`, companyName)
	if err != nil {
		log.Error().Stack().Err(err).Str("CompanyName", companyName).Msg("could not delete company")
		rollback(ctx, trx)
		return err
	}
	if tag.RowsAffected() != 1 {
		rollback(ctx, trx)
		return ErrNotFound
	}

	if err := trx.Commit(ctx); err != nil {
		log.Error().Stack().Err(err).Msg("could not commit company delete")
		return err
	}

	return nil
}

// CreateStock registers the stock for a company; the unique constraint on
// company_name caps each company at one stock
func CreateStock(ctx context.Context, stock *Stock) error {
	trx, err := beginTrx(ctx)
	if err != nil {
		return err
	}

	sql := `INSERT INTO stock ("ticker", "company_name", "current_price", "target_price") VALUES ($1, $2, $3, $4)`
	if _, err := trx.Exec(ctx, sql, stock.Ticker, stock.CompanyName, stock.CurrentPrice, stock.TargetPrice); err != nil {
		log.Error().Stack().Err(err).Str("Ticker", stock.Ticker).Msg("could not insert stock")
		rollback(ctx, trx)
		return err
	}

	if err := trx.Commit(ctx); err != nil {
		log.Error().Stack().Err(err).Msg("could not commit stock creation")
		return err
	}

	return nil
}

func GetStock(ctx context.Context, ticker string) (*Stock, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT ticker, company_name, current_price, target_price FROM stock WHERE ticker=$1`
	stock := &Stock{}
	err = trx.QueryRow(ctx, sql, ticker).Scan(&stock.Ticker, &stock.CompanyName, &stock.CurrentPrice, &stock.TargetPrice)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Stack().Err(err).Str("Ticker", ticker).Msg("could not load stock")
		return nil, err
	}

	commit(ctx, trx)
	return stock, nil
}

func ListStocks(ctx context.Context) ([]*Stock, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := trx.Query(ctx, `SELECT ticker, company_name, current_price, target_price FROM stock ORDER BY ticker`)
	if err != nil {
		log.Error().Stack().Err(err).Msg("could not query stocks")
		rollback(ctx, trx)
		return nil, err
	}

	stocks := make([]*Stock, 0, 10)
	for rows.Next() {
		stock := &Stock{}
		if err := rows.Scan(&stock.Ticker, &stock.CompanyName, &stock.CurrentPrice, &stock.TargetPrice); err != nil {
			log.Error().Stack().Err(err).Msg("could not scan stock")
			rollback(ctx, trx)
			return nil, err
		}
		stocks = append(stocks, stock)
	}
	if err := rows.Err(); err != nil {
		log.Error().Stack().Err(err).Msg("error reading stock rows")
		rollback(ctx, trx)
		return nil, err
	}

	commit(ctx, trx)
	return stocks, nil
}

func UpdateStock(ctx context.Context, stock *Stock) error {
	trx, err := beginTrx(ctx)
	if err != nil {
		return err
	}

	sql := `UPDATE stock SET current_price=$1, target_price=$2 WHERE ticker=$3`
	tag, err := trx.Exec(ctx, sql, stock.CurrentPrice, stock.TargetPrice, stock.Ticker)
	if err != nil {
		log.Error().Stack().Err(err).Str("Ticker", stock.Ticker).Msg("could not update stock")
		rollback(ctx, trx)
		return err
	}
	if tag.RowsAffected() != 1 {
		rollback(ctx, trx)
		return ErrNotFound
	}

	if err := trx.Commit(ctx); err != nil {
		log.Error().Stack().Err(err).Msg("could not commit stock update")
		return err
	}

	return nil
}

func DeleteStock(ctx context.Context, ticker string) error {
	trx, err := beginTrx(ctx)
	if err != nil {
		return err
	}

	tag, err := trx.Exec(ctx, `DELETE FROM stock WHERE ticker=$1`, ticker)
	if err != nil {
		log.Error().Stack().Err(err).Str("Ticker", ticker).Msg("could not delete stock")
		rollback(ctx, trx)
		return err
	}
	if tag.RowsAffected() != 1 {
		rollback(ctx, trx)
		return ErrNotFound
	}

	if err := trx.Commit(ctx); err != nil {
		log.Error().Stack().Err(err).Msg("could not commit stock delete")
		return err
	}

	return nil
}

func CreateNews(ctx context.Context, news *News) error {
	trx, err := beginTrx(ctx)
	if err != nil {
		return err
	}

	sql := `INSERT INTO news ("headline", "body") VALUES ($1, $2)`
	if _, err := trx.Exec(ctx, sql, news.Headline, news.Body); err != nil {
		log.Error().Stack().Err(err).Str("Headline", news.Headline).Msg("could not insert news")
		rollback(ctx, trx)
		return err
	}

	if err := trx.Commit(ctx); err != nil {
		log.Error().Stack().Err(err).Msg("could not commit news creation")
		return err
	}

	return nil
}

func GetNews(ctx context.Context, headline string) (*News, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	news := &News{}
	err = trx.QueryRow(ctx, `SELECT headline, body FROM news WHERE headline=$1`, headline).Scan(&news.Headline, &news.Body)
	if err != nil {
		rollback(ctx, trx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Stack().Err(err).Str("Headline", headline).Msg("could not load news")
		return nil, err
	}

	commit(ctx, trx)
	return news, nil
}

// SearchNews returns articles whose headline or body mentions the query term.
// This is a substring match against free text, not a relational join; callers
// typically pass a company name or ticker.
func SearchNews(ctx context.Context, term string) ([]*News, error) {
	trx, err := beginTrx(ctx)
	if err != nil {
		return nil, err
	}

	sql := `SELECT headline, body FROM news WHERE headline ILIKE '%' || $1 || '%' OR body ILIKE '%' || $1 || '%' ORDER BY headline`
	rows, err := trx.Query(ctx, sql, term)
	if err != nil {
		log.Error().Stack().Err(err).Str("Term", term).Msg("could not search news")
		rollback(ctx, trx)
		return nil, err
	}

	articles := make([]*News, 0, 10)
	for rows.Next() {
		news := &News{}
		if err := rows.Scan(&news.Headline, &news.Body); err != nil {
			log.Error().Stack().Err(err).Msg("could not scan news")
			rollback(ctx, trx)
			return nil, err
		}
		articles = append(articles, news)
	}
	if err := rows.Err(); err != nil {
		log.Error().Stack().Err(err).Str("Term", term).Msg("error reading news rows")
		rollback(ctx, trx)
		return nil, err
	}

	commit(ctx, trx)
	return articles, nil
}
