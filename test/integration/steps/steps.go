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

	"github.com/finance-tracker/wallet-api/internal/domain/entity"
	"github.com/finance-tracker/wallet-api/internal/integration/persistence/model"
)

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()

	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	now := time.Now().UTC()
	categoryModel := &model.CategoryModel{
		Name:      name,
		Color:     entity.DefaultCategoryColor,
		Icon:      entity.DefaultCategoryIcon,
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := t.db.DbConn.Create(categoryModel).Error; err != nil {
		return err
	}
	t.categoryID = categoryModel.ID
	return nil
}

func (t *testContext) aPaymentMethodExistsWithNameAndType(name, methodType string) error {
	now := time.Now().UTC()
	paymentMethodModel := &model.PaymentMethodModel{
		Name:      name,
		Type:      methodType,
		Color:     entity.DefaultPaymentMethodColor,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := t.db.DbConn.Create(paymentMethodModel).Error; err != nil {
		return err
	}
	t.paymentMethodID = paymentMethodModel.ID
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) theCacheIsUnavailable() error {
	t.miniRedis.Close()
	t.cacheDown = true
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{category_id}}", strconv.FormatInt(t.categoryID, 10))
	content = strings.ReplaceAll(content, "{{payment_method_id}}", strconv.FormatInt(t.paymentMethodID, 10))
	content = strings.ReplaceAll(content, "{{installment_id}}", strconv.FormatInt(t.installmentID, 10))
	content = strings.ReplaceAll(content, "{{transaction_id}}", strconv.FormatInt(t.lastTransactionID, 10))
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody
	t.captureIDs(responseBody)

	return nil
}

// captureIDs remembers the identifiers of created resources for later placeholders.
func (t *testContext) captureIDs(body map[string]any) {
	// Installment group: keep the purchase and its first occurrence
	if id, ok := body["installment_id"].(float64); ok {
		if _, isGroup := body["transactions"]; isGroup {
			t.installmentID = int64(id)
			if txn, ok := getFieldValue(body, "transactions.0.id").(float64); ok {
				t.lastTransactionID = int64(txn)
			}
			return
		}
	}

	// Single transaction
	if id, ok := body["id"].(float64); ok {
		if _, isTransaction := body["date"]; isTransaction {
			t.lastTransactionID = int64(id)
		}
	}
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue == expectedValue {
		return nil
	}

	// Decimal strings compare by value
	actual, errActual := decimal.NewFromString(actualValue)
	expected, errExpected := decimal.NewFromString(expectedValue)
	if errActual == nil && errExpected == nil && actual.Equal(expected) {
		return nil
	}
	return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.responseObject()
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

func (t *testContext) theResponseHeaderShouldBe(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.headers.Get(header); actual != expected {
		return fmt.Errorf("header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, true, nil)
}

func (t *testContext) theDbShouldContainActiveObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, false, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, false, criteria)
}

func (t *testContext) countRows(quantity int, table string, unscoped bool, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.WithContext(context.Background())
	if unscoped {
		query = query.Unscoped()
	}
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	if err := query.Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theStatsCacheShouldHoldEntries(count int) error {
	keys := 0
	for _, key := range t.miniRedis.Keys() {
		if strings.HasPrefix(key, "installment-stats:v") && key != "installment-stats:version" {
			keys++
		}
	}
	if keys != count {
		return fmt.Errorf("expected %d cached stats entries, got %d", count, keys)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var field any = object
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
