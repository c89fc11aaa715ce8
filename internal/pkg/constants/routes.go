package constants

// Route and path constants shared between storage and the router.
const (
	PublicRoute = "/"

	// Listing images served from local disk when S3 is not configured.
	UploadsRoute = "/uploads"
	UploadsPath  = "uploads"
)
