package imports

import (
	"api/database"
	"api/entities/alerts"
	"api/importer"
	"api/middlewares"
	"api/schemas"
	"api/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// CreateOne runs a whole import job: parse, map (with the caller's
// overrides), validate, resolve duplicates and write in chunks. The
// response carries the job report; a chunk failure reports how many rows
// made it in before the abort.
func CreateOne(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromRequest(r)
	if !ok {
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
	strategy, err := importer.ParseDuplicateStrategy(r.FormValue("strategy"))
	if err != nil {
		utils.SendResponse(w, http.StatusBadRequest, err.Error(), nil, 0)
		return
	}

	overrides := map[string]string{}
	if raw := r.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
			utils.SendResponse(w, http.StatusBadRequest, "Malformed mapping overrides", nil, 0)
			return
		}
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

	// Imports run longer than a single query; give the job its own
	// deadline instead of the per-query one.
	ctx, cancel := context.WithTimeout(r.Context(), 5*database.MONGO_TIMEOUT)
	defer cancel()

	existing, err := importer.FetchExistingIndex(ctx, session.AgencyID, entity)
	if err != nil {
		utils.SendResponse(w, http.StatusBadGateway, "", nil, utils.CANNOT_CONNECT_TO_MONGODB)
		return
	}

	job := &importer.Job{
		AgencyID: session.AgencyID,
		ActorID:  session.UserID,
		Options: importer.Options{
			Entity:        entity,
			Strategy:      strategy,
			Overrides:     overrides,
			Discriminator: r.FormValue("discriminator"),
		},
		Existing:  existing,
		Committer: importer.MongoCommitter{},
		Progress: func(processed, total int) {
			utils.Log.Info("import progress",
				zap.String("agency_id", session.AgencyID),
				zap.Int("processed", processed),
				zap.Int("total", total))
		},
	}

	result, runErr := job.Run(ctx, table)

	alerts.Notify(ctx, session.AgencyID, session.UserID, schemas.ALERT_TYPE_IMPORT,
		fmt.Sprintf("Import finished: %d created, %d updated, %d skipped, %d invalid",
			result.Created, result.Updated, result.Skipped, len(result.Invalid)))

	if runErr != nil {
		utils.Log.Error("import aborted", zap.Error(runErr),
			zap.String("agency_id", session.AgencyID),
			zap.Int("processed", result.Processed))
		utils.SendResponse(w, http.StatusInternalServerError,
			fmt.Sprintf("Import aborted after %d of %d rows", result.Processed, result.Total),
			result, 0)
		return
	}

	utils.SendResponse(w, http.StatusOK, "", result, 0)
}
