package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"ticketgen/internal/models"
)

// emptyObject stands in for a missing choice or text field.
const emptyObject = "{}"

// ExtractText returns the first choice's text, or "{}" when the response has no
// choices or the text field is absent.
func ExtractText(resp *models.CompletionResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return emptyObject
	}

	choice := resp.Choices[0]
	if choice.FinishReason == models.FinishReasonLength {
		slog.Warn("completion stopped at the token budget, output may be truncated",
			"max_tokens", models.MaxTokens)
	}

	if choice.Text == nil {
		return emptyObject
	}
	return *choice.Text
}

// ParseFiles decodes model output into an ordered file set.
//
// Invalid JSON is a parse error. Valid JSON that is not an object of string
// values is a shape error. An object with no entries is an empty-result error.
func ParseFiles(text string) (*models.FileSet, error) {
	data := []byte(text)

	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, models.Errorf(models.ErrorKindParse, "model output is not valid JSON: %w", err)
	}

	if _, ok := probe.(map[string]interface{}); !ok {
		return nil, models.Errorf(models.ErrorKindShape, "model output is %s, not a JSON object", describe(probe))
	}

	// Decode again token by token to keep the object's key order.
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, models.Errorf(models.ErrorKindParse, "failed to read model output: %w", err)
	}

	files := models.NewFileSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, models.Errorf(models.ErrorKindParse, "failed to read key: %w", err)
		}
		name, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, models.Errorf(models.ErrorKindParse, "failed to read value for %q: %w", name, err)
		}

		var content string
		if err := unmarshalString(raw, &content); err != nil {
			var value interface{}
			_ = json.Unmarshal(raw, &value)
			return nil, models.Errorf(models.ErrorKindShape, "value for %q is %s, not a string", name, describe(value))
		}

		files.Set(name, content)
	}

	if files.Len() == 0 {
		return nil, models.Errorf(models.ErrorKindEmptyResult, "completion produced no files")
	}

	return files, nil
}

// unmarshalString is json.Unmarshal into a string, except that null is rejected
// instead of silently leaving the target empty.
func unmarshalString(raw json.RawMessage, dst *string) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("null value")
	}
	return json.Unmarshal(raw, dst)
}

func describe(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []interface{}:
		return "an array"
	case map[string]interface{}:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
