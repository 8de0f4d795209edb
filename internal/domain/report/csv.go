package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
	"github.com/yanqian/ethix-logistics/pkg/util"
)

var csvHeader = []string{
	"OrderID", "Item", "Lane", "Score", "MedicalUrgency", "BusinessValue",
	"ProfitImpact", "SlackUsed", "Timestamp", "Explanation",
}

// Filename is the download name of a report generated at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("EthixLogistics_Report_%s.csv", util.DateStamp(t))
}

// WriteCSV writes one row per shipment after the header.
func WriteCSV(w io.Writer, shipments []storefront.Shipment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range shipments {
		if err := cw.Write(csvRow(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(s storefront.Shipment) []string {
	slack := "No"
	if s.SlackUsed {
		slack = "Yes"
	}
	return []string{
		s.OrderID,
		s.ItemName,
		string(s.Lane),
		strconv.FormatFloat(s.PriorityScore, 'f', 3, 64),
		strconv.FormatFloat(s.MedicalUrgency, 'f', 2, 64),
		strconv.FormatFloat(s.BusinessValue, 'f', 2, 64),
		strconv.FormatFloat(s.ProfitImpact, 'f', -1, 64),
		slack,
		s.Timestamp,
		strings.ReplaceAll(s.AIExplanation, ",", " "),
	}
}
