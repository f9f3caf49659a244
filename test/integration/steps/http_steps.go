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

	"github.com/cucumber/godog"
	"gorm.io/gorm"
)

func theAPIServerIsRunning(ctx context.Context) error {
	resp, err := http.Get(suite.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func theHeaderIsEmpty(ctx context.Context) error {
	tc := GetTestContext(ctx)
	tc.headers = make(map[string]string)
	tc.accessToken = ""
	return nil
}

func theHeaderContainsTheKeyWith(ctx context.Context, key, value string) error {
	tc := GetTestContext(ctx)
	tc.headers[key] = tc.replacePlaceholders(value)
	return nil
}

func iSendARequestTo(ctx context.Context, method, path string) error {
	tc := GetTestContext(ctx)
	return tc.executeRequest(method, tc.replacePlaceholders(path), nil)
}

func iSendARequestToWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	tc := GetTestContext(ctx)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(tc.replacePlaceholders(body.Content))
	}
	return tc.executeRequest(method, tc.replacePlaceholders(path), payload)
}

func iRememberTheResponseFieldAs(ctx context.Context, field, name string) error {
	tc := GetTestContext(ctx)
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	tc.values[name] = fmt.Sprintf("%v", value)
	return nil
}

func (tc *TestContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", tc.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", tc.refreshToken)
	for name, value := range tc.values {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (tc *TestContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, suite.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
	for key, value := range tc.headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	tc.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     raw,
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err == nil {
		tc.response.body = parsed
	}
	return nil
}

func (tc *TestContext) responseField(field string) (any, error) {
	if tc.response == nil {
		return nil, errors.New("no response received")
	}
	value := getFieldValue(tc.response.body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %s", field, tc.response.raw)
	}
	return value, nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc.response == nil {
		return errors.New("no response received")
	}
	if tc.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, tc.response.status, tc.response.raw)
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc.response == nil {
		return errors.New("no response received")
	}
	if tc.response.body == nil {
		return fmt.Errorf("response is not JSON: %s", tc.response.raw)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	_, err := tc.responseField(field)
	return err
}

func theResponseFieldShouldBe(ctx context.Context, field, expectedValue string) error {
	tc := GetTestContext(ctx)
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	expectedValue = tc.replacePlaceholders(expectedValue)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	_, err := tc.responseField(field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, quantity int) error {
	tc := GetTestContext(ctx)
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	return expectItems(value, quantity)
}

func theResponseShouldHaveItems(ctx context.Context, quantity int) error {
	tc := GetTestContext(ctx)
	if tc.response == nil {
		return errors.New("no response received")
	}
	return expectItems(tc.response.body, quantity)
}

func expectItems(value any, quantity int) error {
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("expected an array, got %T", value)
	}
	if len(items) != quantity {
		return fmt.Errorf("expected %d items, got %d", quantity, len(items))
	}
	return nil
}

func theResponseHeaderShouldContain(ctx context.Context, header, expected string) error {
	tc := GetTestContext(ctx)
	if tc.response == nil {
		return errors.New("no response received")
	}
	for _, value := range tc.response.headers[http.CanonicalHeaderKey(header)] {
		if strings.Contains(value, expected) {
			return nil
		}
	}
	return fmt.Errorf("header '%s' does not contain '%s': %v", header, expected, tc.response.headers[http.CanonicalHeaderKey(header)])
}

func theDbShouldContainObjectsInTheTable(ctx context.Context, quantity int, table string) error {
	return countRows(table, quantity, nil)
}

func theDbShouldContainObjectsInWithTheValues(ctx context.Context, quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(GetTestContext(ctx).replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return countRows(table, quantity, criteria)
}

func countRows(table string, quantity int, criteria map[string]any) error {
	entity, ok := suite.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := suite.db.DbConn.Unscoped()
	for key, value := range criteria {
		if value == nil {
			query = query.Where(fmt.Sprintf("%s IS NULL", key))
			continue
		}
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	field := object
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
