// Package importer bulk-loads products from a spreadsheet. It is a batch
// client of the store layer: every document goes through the same stores
// (and therefore the same constraints) the HTTP handlers use.
package importer

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"ecom-product/apperror"
	"ecom-product/cache"
	"ecom-product/models"
	"ecom-product/stores"
)

// Row is one spreadsheet row keyed by header name.
type Row map[string]string

// Report summarizes an import run.
type Report struct {
	TotalRows  int
	Products   int
	Categories int
	Skipped    int
}

// CacheInvalidator drops cached response pages made stale by an import.
// *cache.Cache satisfies it; a nil invalidator disables invalidation.
type CacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

type Importer struct {
	products   stores.ProductStore
	categories stores.CategoryStore
	cache      CacheInvalidator
}

func New(products stores.ProductStore, categories stores.CategoryStore, invalidator CacheInvalidator) *Importer {
	return &Importer{products: products, categories: categories, cache: invalidator}
}

// TransformRow maps a spreadsheet row onto a product document. Name and
// category_name are required; price defaults to 0, max_price falls back to
// price, stock defaults to 10 and imported products start active.
func TransformRow(row Row) (models.Product, error) {
	name := strings.TrimSpace(row["prod_name"])
	categoryName := strings.TrimSpace(row["category_name"])
	if name == "" || categoryName == "" {
		return models.Product{}, errors.New("missing required fields")
	}

	price := parseFloat(row["price"], 0)
	return models.Product{
		Name:         name,
		Price:        price,
		MaxPrice:     parseFloat(row["max_price"], price),
		Stock:        parseInt(row["stock"], 10),
		Images:       []string{},
		CategoryName: categoryName,
		CategoryID:   parseInt(row["category_id"], 0),
		Subcat:       parseInt(row["subcat"], 0),
		SubcatName:   strings.TrimSpace(row["subcat_name"]),
		PackQt:       parseFloat(row["pack_qt"], 0),
		IsActive:     true,
	}, nil
}

// ImportFile reads the first worksheet of an .xlsx file and writes its rows
// through the store layer. Rows that fail to transform or persist are
// logged and skipped; distinct categories are created first so the
// title-case and uniqueness rules apply to them too.
func (i *Importer) ImportFile(ctx context.Context, path string) (Report, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return Report{}, err
	}
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	if err != nil {
		return Report{}, err
	}
	if len(rows) < 2 {
		return Report{}, errors.New("no valid products to import")
	}

	header := rows[0]
	report := Report{TotalRows: len(rows) - 1}

	var products []models.Product
	for n, cells := range rows[1:] {
		row := Row{}
		for c, key := range header {
			if c < len(cells) {
				row[key] = cells[c]
			}
		}

		product, err := TransformRow(row)
		if err != nil {
			log.Warn().Int("row", n+2).Err(err).Msg("skipping row")
			report.Skipped++
			continue
		}
		products = append(products, product)
	}

	if len(products) == 0 {
		return report, errors.New("no valid products to import")
	}

	report.Categories = i.importCategories(ctx, products)

	for _, product := range products {
		if _, err := i.products.Create(ctx, product); err != nil {
			log.Warn().Str("name", product.Name).Err(err).Msg("failed to save product")
			report.Skipped++
			continue
		}
		report.Products++
	}

	i.invalidateCache(ctx)
	return report, nil
}

// invalidateCache drops the cached product and category pages so readers
// see the imported documents before the entries expire on their own.
func (i *Importer) invalidateCache(ctx context.Context) {
	if i.cache == nil {
		return
	}
	for _, pattern := range []string{cache.ProductListPattern, cache.CategoryListPattern} {
		if err := i.cache.DeleteByPattern(ctx, pattern); err != nil {
			log.Warn().Str("pattern", pattern).Err(err).Msg("failed to invalidate cache")
		}
	}
}

// importCategories creates each distinct category referenced by the rows.
// Duplicates (already-imported categories) are not errors.
func (i *Importer) importCategories(ctx context.Context, products []models.Product) int {
	seen := map[string]bool{}
	created := 0
	for _, product := range products {
		name := models.TitleCase(product.CategoryName)
		if seen[name] || product.CategoryID == 0 {
			continue
		}
		seen[name] = true

		_, err := i.categories.Create(ctx, models.Category{
			CategoryName: product.CategoryName,
			CategoryID:   product.CategoryID,
			IsActive:     true,
		})
		if err != nil {
			if apperror.IsConflict(err) {
				continue
			}
			log.Warn().Str("category", name).Err(err).Msg("failed to save category")
			continue
		}
		created++
	}
	return created
}

func parseFloat(s string, fallback float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || value == 0 {
		return fallback
	}
	return value
}

func parseInt(s string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || value == 0 {
		return fallback
	}
	return value
}
