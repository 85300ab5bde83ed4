package server

// Route path constants
const (
	RouteHealth = "/healthz"

	RouteSession = "/api/session"

	RouteLeadership      = "/api/leadership"
	RouteAccessOverrides = "/api/admin/access-overrides"

	RouteContentSection = "/api/content/{section}"

	RouteFormSubmit      = "/api/forms/{form}"
	RouteFormSubmissions = "/api/forms/{form}/submissions"

	RouteChatChannel = "/api/chat/{channel}"

	RouteTreasuryTransactions = "/api/treasury/transactions"

	RouteUploads    = "/api/uploads"
	RouteUploadItem = "/api/uploads/{key}"
)
