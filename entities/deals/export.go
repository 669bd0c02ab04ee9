package deals

import (
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"strconv"

	"api/database"
)

var exportHeader = []string{
	"Lead", "Phone", "Property", "Stage", "Price",
	"Projected Commission", "Actual Commission", "Probability", "Created At",
}

// RenderDealsCSV renders the deal list as UTF-8 CSV with a BOM so Excel
// opens Hebrew content correctly. Stage identifiers become display labels,
// money stays plain numbers.
func RenderDealsCSV(deals []schemas.Deal) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(buf)
	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}

	for _, deal := range deals {
		label, ok := schemas.DealStageLabels[deal.Stage]
		if !ok {
			label = deal.Stage
		}
		record := []string{
			deal.LeadName,
			deal.LeadPhone,
			deal.PropertyName,
			label,
			strconv.FormatFloat(deal.Price, 'f', -1, 64),
			strconv.FormatFloat(deal.ProjectedCommission, 'f', -1, 64),
			strconv.FormatFloat(deal.ActualCommission, 'f', -1, 64),
			strconv.Itoa(deal.Probability),
			deal.CreatedAt.Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Export(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), database.MONGO_TIMEOUT)
	defer cancel()

	deals, err := fetchDeals(ctx, session.AgencyID)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.CANNOT_FIND_DEALS_IN_MONGODB)
		return
	}

	data, err := RenderDealsCSV(deals)
	if err != nil {
		utils.SendResponse(w, http.StatusInternalServerError, "Cannot render deal export", nil, 0)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="deals.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
