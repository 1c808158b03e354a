package httpapi

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/splitledger/internal/service"
)

var balanceSheetHeader = []string{"User", "Total Paid", "Total Owed", "Balance", "Individual Expenses"}

func (h *Handler) getBalanceDetails(c *gin.Context) {
	summary, err := h.balances.Report(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	details := make([]gin.H, 0, len(summary.Users))
	for _, ub := range summary.Users {
		shares := make([]gin.H, 0, len(ub.Shares))
		for _, share := range ub.Shares {
			shares = append(shares, gin.H{
				"description": share.Description,
				"amount":      share.Amount.StringFixed(2),
				"date":        share.Date,
			})
		}
		details = append(details, gin.H{
			"user":                ub.User.Name,
			"email":               ub.User.Email,
			"total_paid":          ub.TotalPaid.StringFixed(2),
			"total_owed":          ub.TotalOwed.StringFixed(2),
			"balance":             ub.Balance.StringFixed(2),
			"individual_expenses": shares,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"balance_details": details,
		"overall_total":   summary.OverallTotal.StringFixed(2),
	})
}

// downloadBalanceSheetCSV streams the balance sheet as CSV. The rows come
// from the same Report the JSON endpoint uses, so the two can never
// disagree.
func (h *Handler) downloadBalanceSheetCSV(c *gin.Context) {
	summary, err := h.balances.Report(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	if err := writer.Write(balanceSheetHeader); err != nil {
		respondError(c, err)
		return
	}
	for _, row := range service.Rows(summary) {
		record := []string{
			row.User,
			row.TotalPaid.StringFixed(2),
			row.TotalOwed.StringFixed(2),
			row.Balance.StringFixed(2),
			row.Breakdown,
		}
		if err := writer.Write(record); err != nil {
			respondError(c, err)
			return
		}
	}
	if err := writer.Write([]string{}); err != nil {
		respondError(c, err)
		return
	}
	if err := writer.Write([]string{"Overall Expenses", summary.OverallTotal.StringFixed(2)}); err != nil {
		respondError(c, err)
		return
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="balance_sheet.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// downloadBalanceSheetXLSX renders the same tabular view as a spreadsheet.
func (h *Handler) downloadBalanceSheetXLSX(c *gin.Context) {
	summary, err := h.balances.Report(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, title := range balanceSheetHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	rowIdx := 2
	for _, row := range service.Rows(summary) {
		values := []any{
			row.User,
			row.TotalPaid.StringFixed(2),
			row.TotalOwed.StringFixed(2),
			row.Balance.StringFixed(2),
			row.Breakdown,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx)
			f.SetCellValue(sheet, cell, v)
		}
		rowIdx++
	}

	rowIdx++ // blank row before the summary line
	f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIdx), "Overall Expenses")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", rowIdx), summary.OverallTotal.StringFixed(2))

	buf, err := f.WriteToBuffer()
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="balance_sheet.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
