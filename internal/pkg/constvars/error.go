package constvars

// Validation messages for users, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s",
	"max":      "maximum at %s",
	"url":      "must be a valid URL",
	"oneof":    "must be one of %s",
	"weekday":  "must be a valid weekday name",
	"urgency":  "must be one of RED, AMBER, YELLOW, GREEN",
}

// Tags whose message carries the validation parameter
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientDatasetNotFound               = "dataset not found"
	ErrClientDatasetNotReady               = "dataset is still being processed"
	ErrClientPlanNotFound                  = "capacity plan not found"
	ErrClientShareNotFound                 = "share link expired or does not exist"
	ErrClientSharePasscodeWrong            = "wrong passcode"
	ErrClientFileNotRecognized             = "the file does not look like a triage export"
	ErrClientFileTooLarge                  = "the file is too large"
	ErrClientTooManyRequests               = "too many requests, slow down"
)

// Error messages for developers
const (
	ErrDevInvalidInput    = "invalid input"
	ErrDevCannotParseJSON = "cannot parse JSON"

	// Validation messages
	ErrDevValidationFailed      = "validation failed"
	ErrDevInvalidRequestPayload = "invalid request payload"

	// Database messages
	ErrDevDBFailedToInsertDocument  = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument  = "failed to update document into database"
	ErrDevDBFailedToFindDocument    = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument  = "failed to delete document from database"
	ErrDevDBFailedToIterateDocument = "failed to iterate documents from database"
	ErrDevDBStringNotObjectID       = "given ID is not valid object ID"
	ErrDevDocumentNotFound          = "document not found"

	// Redis messages
	ErrDevRedisFailedToSetData    = "failed to set data into redis"
	ErrDevRedisFailedToGetData    = "failed to get data from redis"
	ErrDevRedisFailedToDeleteData = "failed to delete data from redis"
	ErrDevRedisFailedToUnlock     = "failed to release redis lock"

	// Queue messages
	ErrDevQueueFailedToPublish = "failed to publish message to queue %s"
	ErrDevQueueFailedToConsume = "failed to consume message from queue %s"
	ErrDevQueueFailedToAck     = "failed to ack message"

	// Storage messages
	ErrDevStorageFailedToUpload   = "failed to upload object to storage"
	ErrDevStorageFailedToDownload = "failed to download object from storage"
	ErrDevStorageFailedToRemove   = "failed to remove object from storage"

	// Ingestion messages
	ErrDevIngestCannotOpenWorkbook = "cannot open spreadsheet workbook"
	ErrDevIngestHeaderMismatch     = "spreadsheet headers do not match a triage export"
	ErrDevIngestWrongFileType      = "uploaded file is not an xlsx workbook"
	ErrDevIngestFetchFailed        = "failed to fetch export from remote url"

	// Share messages
	ErrDevShareTokenInvalid    = "invalid share token"
	ErrDevShareTokenExpired    = "share token expired"
	ErrDevSharePasscodeInvalid = "share passcode does not match"
	ErrDevShareSigningMethod   = "unexpected signing method"
	ErrDevShareGenerateToken   = "failed to generate share token"

	// Server messages
	ErrDevRequestIDMissing       = "request id not found in context"
	ErrDevServerInternalError    = "internal server error"
	ErrDevServerBadRequest       = "bad request"
	ErrDevServerNotFound         = "resource not found"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerUnauthorized     = "unauthorized access"
	ErrDevServerInvalidAPIKey    = "invalid api key"
	ErrDevServerTooManyRequests  = "rate limit exceeded"
)
