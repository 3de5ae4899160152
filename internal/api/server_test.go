package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/coinflow-dev/coinflow/internal/config"
	"github.com/coinflow-dev/coinflow/internal/database"
	"github.com/coinflow-dev/coinflow/internal/database/repository"
	"github.com/coinflow-dev/coinflow/internal/logger"
	"github.com/coinflow-dev/coinflow/internal/service"
)

func newTestApp(t *testing.T) (*fiber.App, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedDefaults(context.Background(), db))

	log := logger.Nop()
	txs := repository.NewTransactionRepo(db)
	cats := repository.NewCategoryRepo(db)
	ruleRepo := repository.NewRuleRepo(db)
	categorizer := service.NewCategorizer(txs, cats, ruleRepo, nil, log)
	importer := service.NewImporter(txs, categorizer, log)

	srv := NewServer(txs, cats, ruleRepo, importer, categorizer, log)
	srv.UI = config.UIConfig{Timezone: "America/Toronto", CurrencySymbol: "$"}
	return srv.App(), db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestHealth(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCategoryCRUD(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/categories", fiber.Map{"name": "Pets"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created repository.Category
	decode(t, resp, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Pets", created.Name)

	// duplicate names are rejected, case-insensitively
	resp = doJSON(t, app, http.MethodPost, "/api/categories", fiber.Map{"name": "pets"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/categories/"+created.ID, fiber.Map{"name": "Pet Care"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/categories/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got repository.Category
	decode(t, resp, &got)
	require.Equal(t, "Pet Care", got.Name)

	resp = doJSON(t, app, http.MethodDelete, "/api/categories/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/categories/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDefaultCategoryIsProtected(t *testing.T) {
	t.Parallel()
	app, db := newTestApp(t)
	ctx := context.Background()

	cats := repository.NewCategoryRepo(db)
	def, err := cats.GetDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, def)

	resp := doJSON(t, app, http.MethodDelete, "/api/categories/"+def.ID, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// demoting it is refused too
	resp = doJSON(t, app, http.MethodPut, "/api/categories/"+def.ID, fiber.Map{
		"name": def.Name, "is_default": false,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	still, err := cats.GetDefault(ctx)
	require.NoError(t, err)
	require.NotNil(t, still)
	require.Equal(t, def.ID, still.ID)
}

func TestCreateRuleValidation(t *testing.T) {
	t.Parallel()
	app, db := newTestApp(t)

	cat, err := repository.NewCategoryRepo(db).GetByName(context.Background(), "Travel")
	require.NoError(t, err)
	require.NotNil(t, cat)

	resp := doJSON(t, app, http.MethodPost, "/api/rules", fiber.Map{
		"pattern": "(", "is_regex": true, "category_id": cat.ID,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/rules", fiber.Map{
		"pattern": "AIR CANADA", "category_id": cat.ID, "priority": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/rules", fiber.Map{
		"pattern": "VIA RAIL", "category_id": "nope",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func uploadStatement(t *testing.T, app *fiber.App, path, filename, data string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(data))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestImportEndpoints(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	statement := "Date,Description,Amount\n2024-01-15,STARBUCKS COFFEE #12,-4.50\n2024-01-16,ACME CORP PAYROLL,2000.00\n"

	resp := uploadStatement(t, app, "/api/imports/preview", "statement.csv", statement)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var preview service.PreviewResult
	decode(t, resp, &preview)
	require.Equal(t, 2, preview.Total)
	require.Zero(t, preview.Duplicates)

	resp = uploadStatement(t, app, "/api/imports", "statement.csv", statement)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var imported service.ImportResult
	decode(t, resp, &imported)
	require.Equal(t, 2, imported.Imported)
	require.Equal(t, 2, imported.Categorized)

	// same file again previews as all duplicates
	resp = uploadStatement(t, app, "/api/imports/preview", "statement.csv", statement)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &preview)
	require.Equal(t, 2, preview.Duplicates)

	resp = doJSON(t, app, http.MethodGet, "/api/transactions?search=STARBUCKS", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Items []repository.Transaction `json:"items"`
		Count int                      `json:"count"`
	}
	decode(t, resp, &list)
	require.Equal(t, 1, list.Count)
	require.NotNil(t, list.Items[0].CategoryID)
}

func TestSummaryCarriesDisplaySettings(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/summary/categories?month=2024-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary struct {
		Month          string `json:"month"`
		CurrencySymbol string `json:"currency_symbol"`
	}
	decode(t, resp, &summary)
	require.Equal(t, "2024-01", summary.Month)
	require.Equal(t, "$", summary.CurrencySymbol)

	resp = doJSON(t, app, http.MethodGet, "/api/summary/trend", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trend struct {
		CurrencySymbol string `json:"currency_symbol"`
	}
	decode(t, resp, &trend)
	require.Equal(t, "$", trend.CurrencySymbol)
}

func TestImportRejectsUnknownFormat(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp := uploadStatement(t, app, "/api/imports", "statement.txt", "not a statement")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
