// Package validation holds the field rules applied to incoming resources.
package validation

import (
	"commentary/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Messages reported for rejected comment fields.
const (
	MsgBodyRequired   = "Please provide a value for the comment body"
	MsgUserIDRequired = "Please provide a value for the user ID"
)

type fieldRules struct {
	value interface{}
	rules []validation.Rule
}

// CommentFields checks a comment's body and user id. Rules run in declaration
// order and every failure is reported, body first.
func CommentFields(body string, userID uint) error {
	return check(
		fieldRules{body, []validation.Rule{validation.Required.Error(MsgBodyRequired)}},
		fieldRules{userID, []validation.Rule{validation.Required.Error(MsgUserIDRequired)}},
	)
}

// check collects one message per failing field. ozzo's ValidateStruct returns
// an unordered map, so fields are validated one at a time instead.
func check(fields ...fieldRules) error {
	var messages []string
	for _, f := range fields {
		if err := validation.Validate(f.value, f.rules...); err != nil {
			messages = append(messages, err.Error())
		}
	}
	if len(messages) == 0 {
		return nil
	}
	return models.NewValidationError(messages...)
}
