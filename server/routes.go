package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// Session / identity
	s.RegisterRouteFunc("GET "+RouteSession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))

	// Leadership roster
	s.RegisterRouteFunc("GET "+RouteLeadership, ChainMiddleware(s.LeadershipGetHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("PUT "+RouteLeadership, ChainMiddleware(s.LeadershipPutHandler(), s.APIMiddleware(s.RequireCouncilAdmin())...))

	// Access overrides (operator surface)
	s.RegisterRouteFunc("GET "+RouteAccessOverrides, ChainMiddleware(s.AccessOverridesGetHandler(), s.APIMiddleware(s.RequireCouncilAdmin())...))
	s.RegisterRouteFunc("PUT "+RouteAccessOverrides, ChainMiddleware(s.AccessOverridesPutHandler(), s.APIMiddleware(s.RequireCouncilAdmin())...))

	// Content sections
	s.RegisterRouteFunc("GET "+RouteContentSection, ChainMiddleware(s.ContentGetHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("PUT "+RouteContentSection, ChainMiddleware(s.ContentPutHandler(), s.APIMiddleware(s.RequireSiteEditor())...))

	// Forms
	s.RegisterRouteFunc("POST "+RouteFormSubmit, ChainMiddleware(s.FormSubmitHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteFormSubmissions, ChainMiddleware(s.FormSubmissionsHandler(), s.APIMiddleware(s.RequireCouncilAdmin())...))

	// Chat / forum
	s.RegisterRouteFunc("GET "+RouteChatChannel, ChainMiddleware(s.ChatListHandler(), s.APIMiddleware(s.RequireAuthenticated())...))
	s.RegisterRouteFunc("POST "+RouteChatChannel, ChainMiddleware(s.ChatPostHandler(), s.APIMiddleware(s.RequireAuthenticated())...))

	// Treasury
	s.RegisterRouteFunc("GET "+RouteTreasuryTransactions, ChainMiddleware(s.TreasuryListHandler(), s.APIMiddleware(s.RequireTreasuryAdmin())...))
	s.RegisterRouteFunc("POST "+RouteTreasuryTransactions, ChainMiddleware(s.TreasuryIngestHandler(), s.APIMiddleware(s.RequireTreasuryAdmin())...))

	// Uploads
	s.RegisterRouteFunc("POST "+RouteUploads, ChainMiddleware(s.UploadHandler(), s.APIMiddleware(s.RequireSiteEditor())...))
	s.RegisterRouteFunc("GET "+RouteUploadItem, ChainMiddleware(s.UploadDownloadHandler(), s.APIMiddleware(s.RequireAuthenticated())...))
}
