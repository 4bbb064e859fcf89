package server

const (
	// CodeOK for ok
	CodeOK int32 = iota
	// CodeInvalidRequest for invalid request
	CodeInvalidRequest
	// CodeInvalidArgument for invalid argument
	CodeInvalidArgument
	// CodeSchemaConflict for conflicting index or constraint
	CodeSchemaConflict
	// CodeInternalError for internal error
	CodeInternalError
)
