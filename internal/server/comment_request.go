package server

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"commentary/internal/models"

	"github.com/gofiber/fiber/v2"
)

// commentRequest is the accepted body of create and update. Fields stay raw
// until decoded: clients send numbers for body and numeric strings for userId.
type commentRequest struct {
	Body   json.RawMessage `json:"body"`
	UserID json.RawMessage `json:"userId"`
}

func invalidRequestBody() error {
	return models.NewValidationError("Invalid request body")
}

// parseCommentRequest decodes the JSON body into stored field types. Falsy
// values (null, false, 0, "") and missing fields come back as zero values so
// the field rules report them. An empty body counts as {}.
func parseCommentRequest(c *fiber.Ctx) (body string, userID uint, err error) {
	var req commentRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return "", 0, invalidRequestBody()
		}
	}

	if body, err = textField(req.Body); err != nil {
		return "", 0, err
	}
	if userID, err = idField(req.UserID); err != nil {
		return "", 0, err
	}
	return body, userID, nil
}

func decodeField(raw json.RawMessage) (interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, invalidRequestBody()
	}
	return v, nil
}

// truthy reports whether v counts as a provided value: anything except null,
// false, zero and the empty string.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	default:
		return true
	}
}

// textField accepts strings and numbers. Numbers keep their literal text.
func textField(raw json.RawMessage) (string, error) {
	v, err := decodeField(raw)
	if err != nil || !truthy(v) {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	default:
		return "", invalidRequestBody()
	}
}

// idField accepts positive whole numbers given as JSON numbers or strings.
func idField(raw json.RawMessage) (uint, error) {
	v, err := decodeField(raw)
	if err != nil || !truthy(v) {
		return 0, err
	}

	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
		if f, err := t.Float64(); err == nil && f == math.Trunc(f) && f >= 1 && f <= math.MaxUint32 {
			return uint(f), nil
		}
	case string:
		s = strings.TrimSpace(t)
	default:
		return 0, invalidRequestBody()
	}

	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil || id == 0 {
		return 0, invalidRequestBody()
	}
	return uint(id), nil
}
