package imports

import (
	"api/importer"
	"api/middlewares"
	"api/utils"
	"errors"
	"net/http"
)

const maxUploadBytes = 20 << 20

type previewResponse struct {
	Headers  []string         `json:"headers"`
	Mapping  importer.Mapping `json:"mapping"`
	RowCount int              `json:"row_count"`
	Sample   []importer.Row   `json:"sample"`
}

// Preview parses the upload and returns the auto-suggested column mapping
// plus a few sample rows, for the mapping screen shown before the job runs.
func Preview(w http.ResponseWriter, r *http.Request) {
	if _, ok := middlewares.SessionFromRequest(r); !ok {
		utils.SendResponse(w, http.StatusUnauthorized, "Missing session", nil, 0)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "", nil, utils.IMPORTS_INVALID_REQUEST_DATA)
		return
	}

	entity, err := importer.ParseEntityType(r.FormValue("entity"))
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, "Missing import file", nil, 0)
		return
	}
	defer file.Close()

	table, err := importer.ParseFile(header.Filename, file)
	if err != nil {
		var parseErr *importer.ParseError
		if errors.As(err, &parseErr) {
			utils.SendResponse(w, http.StatusUnprocessableEntity, parseErr.Error(), nil, 0)
			return
		}
		utils.SendResponse(w, http.StatusInternalServerError, "", nil, utils.IMPORTS_INVALID_REQUEST_DATA)
		return
	}

	sample := table.Rows
	if len(sample) > 5 {
		sample = sample[:5]
	}

	utils.SendResponse(w, http.StatusOK, "", previewResponse{
		Headers:  table.Headers,
		Mapping:  importer.AutoMap(table.Headers, entity),
		RowCount: len(table.Rows),
		Sample:   sample,
	}, 0)
}
