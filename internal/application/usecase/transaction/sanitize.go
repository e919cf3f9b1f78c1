// Package transaction contains transaction-related use cases.
package transaction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum length, in characters, kept for descriptions.
	MaxDescriptionLength = 200
	// MaxCategoryLength is the maximum length, in characters, kept for category labels.
	MaxCategoryLength = 200
	// MaxIDLength is the maximum length of an imported transaction id.
	MaxIDLength = 50
)

var htmlEntityPattern = regexp.MustCompile(`&(#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)

// SanitizeText removes angle brackets, trims surrounding whitespace and truncates
// the result to maxLen characters.
func SanitizeText(s string, maxLen int) string {
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	s = strings.TrimSpace(s)
	return truncate(s, maxLen)
}

// SanitizeDescription is SanitizeText preceded by the removal of HTML entities.
func SanitizeDescription(s string) string {
	return SanitizeText(htmlEntityPattern.ReplaceAllString(s, ""), MaxDescriptionLength)
}

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:maxLen]))
}

func validateAmount(amount *decimal.Decimal) (decimal.Decimal, error) {
	if amount == nil {
		return decimal.Zero, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount",
			"amount is required and must be a number",
		)
	}
	return *amount, nil
}

func validateDescription(description *string) (string, error) {
	if description == nil {
		return "", domainerror.NewValidationError(
			domainerror.ErrCodeMissingDescription,
			"description",
			"description is required",
		)
	}
	clean := SanitizeDescription(*description)
	if clean == "" {
		return "", domainerror.NewValidationError(
			domainerror.ErrCodeMissingDescription,
			"description",
			"description must not be empty",
		)
	}
	return clean, nil
}

func validateCategory(category *string) (string, error) {
	if category == nil {
		return "", domainerror.NewValidationError(
			domainerror.ErrCodeMissingCategory,
			"category",
			"category is required",
		)
	}
	clean := SanitizeText(*category, MaxCategoryLength)
	if clean == "" {
		return "", domainerror.NewValidationError(
			domainerror.ErrCodeMissingCategory,
			"category",
			"category must not be empty",
		)
	}
	return clean, nil
}

func validateDate(value string) (entity.Date, error) {
	date, err := entity.ParseDate(strings.TrimSpace(value))
	if err != nil || date.IsZero() {
		return entity.Date{}, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date",
			"date must be a valid calendar date in YYYY-MM-DD format",
		)
	}
	return date, nil
}

func validateStatus(status entity.TransactionStatus) error {
	if !status.IsValid() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidTransactionStatus,
			"status",
			"status must be 'completed', 'pending' or 'failed'",
		)
	}
	return nil
}

func validateType(transactionType entity.TransactionType) error {
	if !transactionType.IsValid() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidTransactionType,
			"type",
			"transaction type must be 'expense' or 'income'",
		)
	}
	return nil
}

func loadError(err error) error {
	return domainerror.WrapStorageError(domainerror.ErrCodeStorageUnavailable, "failed to load transactions", err)
}

func saveError(err error) error {
	return domainerror.WrapStorageError(domainerror.ErrCodeStorageWriteFailed, "failed to save transactions", err)
}
