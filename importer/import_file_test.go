package importer_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ecom-product/cache"
	"ecom-product/importer"
	"ecom-product/models"
	"ecom-product/stores"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "products.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportFile(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"prod_name", "price", "max_price", "stock", "category_name", "category_id"},
		{"Whole Milk", "2.50", "3.00", "24", "dairy", "2"},
		{"Butter", "4.00", "", "", "dairy", "2"},
		{"Bread", "1.75", "", "12", "bakery", "34"},
		{"", "9.99", "", "", "mystery", "99"}, // no name: skipped
	})

	products := stores.NewMemoryProductStore()
	categories := stores.NewMemoryCategoryStore()
	imp := importer.New(products, categories, nil)

	report, err := imp.ImportFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalRows)
	assert.Equal(t, 3, report.Products)
	assert.Equal(t, 2, report.Categories)
	assert.Equal(t, 1, report.Skipped)

	list, err := products.FindAll(context.Background(), stores.ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Rows, 3)
	// Spreadsheet defaults applied
	assert.Equal(t, 10, list.Rows[1].Stock)
	assert.Equal(t, 4.0, list.Rows[1].MaxPrice)

	// Categories were created through the store, so title-casing applied
	active, err := categories.FindActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Bakery", active[0].CategoryName)
	assert.Equal(t, "Dairy", active[1].CategoryName)
}

func TestImportFile_EmptyWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"prod_name", "price", "category_name"},
	})

	imp := importer.New(stores.NewMemoryProductStore(), stores.NewMemoryCategoryStore(), nil)
	_, err := imp.ImportFile(context.Background(), path)
	assert.Error(t, err)
}

// recordingInvalidator captures the cache patterns an import flushes.
type recordingInvalidator struct {
	patterns []string
}

func (r *recordingInvalidator) DeleteByPattern(_ context.Context, pattern string) error {
	r.patterns = append(r.patterns, pattern)
	return nil
}

func TestImportFile_InvalidatesCachedPages(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"prod_name", "price", "category_name", "category_id"},
		{"Whole Milk", "2.50", "dairy", "2"},
	})

	invalidator := &recordingInvalidator{}
	imp := importer.New(stores.NewMemoryProductStore(), stores.NewMemoryCategoryStore(), invalidator)

	_, err := imp.ImportFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{cache.ProductListPattern, cache.CategoryListPattern}, invalidator.patterns)
}

func TestImportFile_DuplicateCategoriesNotSkipped(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"prod_name", "price", "category_name", "category_id"},
		{"Whole Milk", "2.50", "dairy", "2"},
		{"Butter", "4.00", "dairy", "2"},
	})

	categories := stores.NewMemoryCategoryStore()
	_, err := categories.Create(context.Background(), models.Category{
		CategoryName: "Dairy",
		CategoryID:   2,
		IsActive:     true,
	})
	require.NoError(t, err)

	imp := importer.New(stores.NewMemoryProductStore(), categories, nil)
	report, err := imp.ImportFile(context.Background(), path)
	require.NoError(t, err)

	// The category already exists: both products import, nothing is
	// skipped, and no new category is counted.
	assert.Equal(t, 2, report.Products)
	assert.Equal(t, 0, report.Categories)
	assert.Equal(t, 0, report.Skipped)
}
