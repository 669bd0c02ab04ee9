package utils

import "fmt"

const (
	CANNOT_CONNECT_TO_MONGODB = iota + 1
	LEADS_INVALID_REQUEST_DATA
	CANNOT_INSERT_LEAD_TO_MONGODB
	CANNOT_FIND_LEADS_IN_MONGODB
	CANNOT_UPDATE_LEAD_IN_MONGODB
	CANNOT_DELETE_LEAD_IN_MONGODB
	INVALID_LEAD_ID_FORMAT
	PROPERTIES_INVALID_REQUEST_DATA
	CANNOT_INSERT_PROPERTY_TO_MONGODB
	CANNOT_FIND_PROPERTIES_IN_MONGODB
	CANNOT_UPDATE_PROPERTY_IN_MONGODB
	CANNOT_DELETE_PROPERTY_IN_MONGODB
	INVALID_PROPERTY_ID_FORMAT
	DEALS_INVALID_REQUEST_DATA
	CANNOT_INSERT_DEAL_TO_MONGODB
	CANNOT_FIND_DEALS_IN_MONGODB
	CANNOT_UPDATE_DEAL_IN_MONGODB
	CANNOT_DELETE_DEAL_IN_MONGODB
	INVALID_DEAL_ID_FORMAT
	USERS_INVALID_REQUEST_DATA
	CANNOT_FIND_USERS_IN_MONGODB
	CANNOT_UPDATE_USER_IN_MONGODB
	CANNOT_INSERT_USER_TO_MONGODB
	INVALID_USER_ID_FORMAT
	CATALOGS_INVALID_REQUEST_DATA
	CANNOT_INSERT_CATALOG_TO_MONGODB
	CANNOT_FIND_CATALOG_IN_MONGODB
	ALERTS_INVALID_REQUEST_DATA
	CANNOT_INSERT_ALERT_TO_MONGODB
	CANNOT_FIND_ALERTS_IN_MONGODB
	CANNOT_UPDATE_ALERT_IN_MONGODB
	INVALID_ALERT_ID_FORMAT
	MESSAGES_INVALID_REQUEST_DATA
	CANNOT_INSERT_MESSAGE_TO_MONGODB
	CANNOT_FIND_MESSAGES_IN_MONGODB
	IMPORTS_INVALID_REQUEST_DATA
	CANNOT_WRITE_IMPORT_BATCH_TO_MONGODB
)

func SendInternalError(internalErrorCode int) string {
	return fmt.Sprintf("An internal server error occurred. Please try again later (code: %d)", internalErrorCode)
}
