// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/zfinance/internal/application/session"
	"github.com/finance-tracker/zfinance/internal/application/usecase/datatransfer"
	"github.com/finance-tracker/zfinance/internal/domain/entity"
	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
	"github.com/finance-tracker/zfinance/internal/integration/entrypoint/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DataTransferController handles export and import endpoints.
type DataTransferController struct {
	session           *session.Session
	exportUseCase     *datatransfer.ExportTransactionsUseCase
	spreadsheetExport *datatransfer.ExportSpreadsheetUseCase
	maxBodySize       int64
}

// NewDataTransferController creates a new data transfer controller instance.
func NewDataTransferController(
	sess *session.Session,
	exportUseCase *datatransfer.ExportTransactionsUseCase,
	spreadsheetExport *datatransfer.ExportSpreadsheetUseCase,
	maxBodySize int64,
) *DataTransferController {
	if maxBodySize <= datatransfer.MaxImportSize {
		maxBodySize = datatransfer.MaxImportSize + 1
	}
	return &DataTransferController{
		session:           sess,
		exportUseCase:     exportUseCase,
		spreadsheetExport: spreadsheetExport,
		maxBodySize:       maxBodySize,
	}
}

// Export handles GET /export requests with the JSON envelope as an attachment.
func (c *DataTransferController) Export(ctx *gin.Context) {
	output, err := c.exportUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", attachment(output.Filename))
	ctx.IndentedJSON(http.StatusOK, output.Envelope)
}

// ExportSpreadsheet handles GET /export/xlsx requests.
func (c *DataTransferController) ExportSpreadsheet(ctx *gin.Context) {
	var buf bytes.Buffer
	output, err := c.spreadsheetExport.Execute(ctx.Request.Context(), datatransfer.ExportSpreadsheetInput{
		Writer: &buf,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", attachment(output.Filename))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Validate handles POST /import/validate requests. The file is checked but not applied.
func (c *DataTransferController) Validate(ctx *gin.Context) {
	raw, ok := c.readImportFile(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, datatransfer.ValidateImport(raw))
}

// Import handles POST /import?mode=merge|replace requests. The file is validated first;
// nothing is written unless every record is valid.
func (c *DataTransferController) Import(ctx *gin.Context) {
	mode := entity.ImportMode(ctx.Query("mode"))

	raw, ok := c.readImportFile(ctx)
	if !ok {
		return
	}

	result := datatransfer.ValidateImport(raw)
	if !result.Valid {
		ctx.JSON(http.StatusBadRequest, dto.ImportRejectedResponse{
			Error:    "Import file is invalid",
			Code:     string(domainerror.ErrCodeInvalidImportData),
			Errors:   result.Errors,
			Warnings: result.Warnings,
		})
		return
	}

	output, err := c.session.Import(ctx.Request.Context(), result.Data.Transactions, mode)
	if err != nil && output == nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ImportResponse{
		Mode:     string(mode),
		Imported: output.Imported,
		Skipped:  output.Skipped,
		Warnings: result.Warnings,
		Stats:    result.Stats,
	})
}

// readImportFile returns the request body, or the "file" part of a multipart upload.
// One byte past the validator limit is read so the validator can report the oversize.
func (c *DataTransferController) readImportFile(ctx *gin.Context) ([]byte, bool) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxBodySize)

	var body io.Reader = ctx.Request.Body
	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		header, err := ctx.FormFile("file")
		if rejectTooLarge(ctx, err) {
			return nil, false
		}
		if err != nil {
			badRequest(ctx, "Missing file")
			return nil, false
		}
		file, err := header.Open()
		if err != nil {
			badRequest(ctx, "Unreadable file")
			return nil, false
		}
		defer file.Close()
		body = file
	}

	raw, err := io.ReadAll(io.LimitReader(body, datatransfer.MaxImportSize+1))
	if rejectTooLarge(ctx, err) {
		return nil, false
	}
	if err != nil {
		slog.WarnContext(ctx.Request.Context(), "Failed to read import body", "error", err)
		badRequest(ctx, "Unreadable request body")
		return nil, false
	}
	return raw, true
}

func rejectTooLarge(ctx *gin.Context, err error) bool {
	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		return false
	}
	ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
		Error: "Request body too large",
		Code:  string(domainerror.ErrCodeMalformedRequest),
	})
	return true
}

func attachment(filename string) string {
	return `attachment; filename="` + filename + `"`
}
