//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/config"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

func registerSetupSteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)
	ctx.Given(`^the API server is running on "([^"]*)" storage$`, t.theAPIServerIsRunningOnStorage)
	ctx.Given(`^the current date is "([^"]*)"$`, t.theCurrentDateIs)
	ctx.Given(`^the following transactions exist:$`, t.theFollowingTransactionsExist)
	ctx.Given(`^the legacy storage contains:$`, t.theLegacyStorageContains)
	ctx.When(`^the legacy data is migrated$`, t.theLegacyDataIsMigrated)
}

func registerRequestSteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.Given(`^the header is empty$`, t.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
}

func registerResponseSteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, t.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, t.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, t.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, t.theResponseHeaderShouldContain)
}

func registerStorageSteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.Then(`^the store should contain (\d+) transactions$`, t.theStoreShouldContainTransactions)
	ctx.Then(`^the stored transaction "([^"]*)" should have "([^"]*)" equal to "([^"]*)"$`, t.theStoredTransactionShouldHave)
	ctx.Then(`^the legacy storage should be empty$`, t.theLegacyStorageShouldBeEmpty)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
}

// Setup steps

func (t *TestContext) theAPIServerIsRunning() error {
	return t.startServer(config.StorageDriverSQLite)
}

func (t *TestContext) theAPIServerIsRunningOnStorage(driver string) error {
	return t.startServer(driver)
}

func (t *TestContext) theCurrentDateIs(value string) error {
	d, err := entity.ParseDate(value)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(d.Time().Add(12 * time.Hour))
	return nil
}

// theFollowingTransactionsExist seeds the store. Columns: id, amount, description,
// category, date and optionally type and status.
func (t *TestContext) theFollowingTransactionsExist(table *godog.Table) error {
	if t.injector == nil {
		return errors.New("the API server is not running")
	}
	if len(table.Rows) < 2 {
		return errors.New("table needs a header row and at least one transaction")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = cell.Value
	}

	transactions := make([]entity.Transaction, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i]] = cell.Value
		}

		amount, err := decimal.NewFromString(values["amount"])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", values["amount"], err)
		}
		date, err := entity.ParseDate(values["date"])
		if err != nil {
			return err
		}

		tx := entity.Transaction{
			ID:          values["id"],
			Amount:      amount,
			Description: values["description"],
			Category:    values["category"],
			Date:        date,
			Status:      entity.TransactionStatusCompleted,
			Type:        entity.TypeFromAmount(amount),
			CreatedAt:   date.Time(),
			UpdatedAt:   date.Time(),
		}
		if v := values["type"]; v != "" {
			tx.Type = entity.TransactionType(v)
		}
		if v := values["status"]; v != "" {
			tx.Status = entity.TransactionStatus(v)
		}
		transactions = append(transactions, tx)
	}

	ctx := context.Background()
	if err := t.injector.Storage.Store.Save(ctx, transactions); err != nil {
		return err
	}
	return t.injector.Session.Load(ctx)
}

func (t *TestContext) theLegacyStorageContains(content *godog.DocString) error {
	if t.injector == nil {
		return errors.New("the API server is not running")
	}
	var transactions []entity.Transaction
	if err := json.Unmarshal([]byte(content.Content), &transactions); err != nil {
		return err
	}
	return t.injector.Storage.Legacy.Save(context.Background(), transactions)
}

func (t *TestContext) theLegacyDataIsMigrated() error {
	ctx := context.Background()
	if _, err := t.injector.UseCases.MigrateLegacyData.Execute(ctx); err != nil {
		return err
	}
	return t.injector.Session.Load(ctx)
}

// Request steps

func (t *TestContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *TestContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *TestContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *TestContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *TestContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID)

	if len(t.transactionIDs) > 0 {
		ids := make([]string, len(t.transactionIDs))
		for i, id := range t.transactionIDs {
			ids[i] = strconv.Quote(id)
		}
		content = strings.ReplaceAll(content, "{{transaction_ids}}", "["+strings.Join(ids, ", ")+"]")
	}
	return content
}

func (t *TestContext) executeRequest(method, path string, payload []byte) error {
	if t.server == nil {
		return errors.New("the API server is not running")
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     raw,
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.response.body = string(raw)
		return nil
	}
	t.response.body = decoded

	// Capture the id of a returned transaction
	if id, ok := getFieldValue(decoded, "transaction.id").(string); ok && id != "" {
		t.lastTransactionID = id
		t.transactionIDs = append(t.transactionIDs, id)
	}
	return nil
}

// Response steps

func (t *TestContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *TestContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *TestContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *TestContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.headers.Get(header); !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *TestContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

// Storage steps

func (t *TestContext) theStoreShouldContainTransactions(count int) error {
	transactions, err := t.injector.Storage.Store.Load(context.Background())
	if err != nil {
		return err
	}
	if len(transactions) != count {
		return fmt.Errorf("expected %d stored transactions, got %d", count, len(transactions))
	}
	return nil
}

func (t *TestContext) theStoredTransactionShouldHave(id, field, expected string) error {
	transactions, err := t.injector.Storage.Store.Load(context.Background())
	if err != nil {
		return err
	}
	idx := entity.IndexOfTransaction(transactions, id)
	if idx < 0 {
		return fmt.Errorf("transaction %q is not stored", id)
	}

	actual := fmt.Sprintf("%v", getFieldValue(transactions[idx], field))
	if actual != expected {
		return fmt.Errorf("transaction %q field '%s' expected '%s', got '%s'", id, field, expected, actual)
	}
	return nil
}

func (t *TestContext) theLegacyStorageShouldBeEmpty() error {
	transactions, err := t.injector.Storage.Legacy.Load(context.Background())
	if err != nil {
		return err
	}
	if len(transactions) != 0 {
		return fmt.Errorf("expected empty legacy storage, got %d transactions", len(transactions))
	}
	return nil
}

func (t *TestContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	model, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	modelType := reflect.TypeOf(model).Elem()
	slicePtr := reflect.New(reflect.SliceOf(modelType))

	if err := t.db.DbConn.Unscoped().Find(slicePtr.Interface()).Error; err != nil {
		return err
	}

	count := slicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	var field any = objectMap
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
