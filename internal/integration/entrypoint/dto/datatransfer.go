// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/finance-tracker/zfinance/internal/application/usecase/datatransfer"

// ImportResponse reports the outcome of an applied import along with the validation
// warnings of the file.
type ImportResponse struct {
	Mode     string                    `json:"mode"`
	Imported int                       `json:"imported"`
	Skipped  int                       `json:"skipped"`
	Warnings []string                  `json:"warnings"`
	Stats    *datatransfer.ImportStats `json:"stats,omitempty"`
}

// ImportRejectedResponse is returned when the file fails validation.
type ImportRejectedResponse struct {
	Error    string   `json:"error"`
	Code     string   `json:"code"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
