package response

// Значения копируются при использовании, поэтому Details можно менять
var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status: "error",
		Error:  "authentication_failed",
	}

	ErrAuthenticationRequired = ErrorResponse{
		Status:  "error",
		Error:   "authentication_required",
		Details: "Admin session required",
	}

	ErrInvalidID = ErrorResponse{
		Status:  "error",
		Error:   "invalid_id",
		Details: "Not a valid painting id",
	}

	ErrPaintingNotFound = ErrorResponse{
		Status:  "error",
		Error:   "painting_not_found",
		Details: "Painting no longer exists, refresh the catalog",
	}

	ErrPersistence = ErrorResponse{
		Status:  "error",
		Error:   "storage_unavailable",
		Details: "Catalog storage failed, please retry",
	}

	ErrNoFiles = ErrorResponse{
		Status:  "error",
		Error:   "no_files",
		Details: "Select at least one image",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Internal server error",
	}
)
