package routes

const (
	// Health
	Health = "/health"

	// Leasing endpoints. The id pattern admits negative integers on purpose
	// so non-positive ids reach the handlers and come back as 400, not as a
	// router-level 404.
	LeasingCollection = "/api/leasingAPI"
	LeasingByID       = "/api/leasingAPI/{id:-?[0-9]+}"
)
