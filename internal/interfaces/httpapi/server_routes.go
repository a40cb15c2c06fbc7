package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)

	mux.HandleFunc("GET /v1/clubs/{clubID}/formulas", handler.ListFormulas)
	mux.HandleFunc("POST /v1/clubs/{clubID}/formulas", handler.CreateFormula)
	mux.HandleFunc("GET /v1/clubs/{clubID}/formulas/active", handler.GetActiveFormula)
	mux.HandleFunc("POST /v1/clubs/{clubID}/formulas/{formulaID}/activate", handler.ActivateFormula)

	mux.HandleFunc("POST /v1/clubs/{clubID}/imports/matches/{externalMatchID}", handler.ImportMatch)
	mux.HandleFunc("POST /v1/clubs/{clubID}/imports/seasons/{season}", handler.ImportSeason)
	mux.HandleFunc("POST /v1/clubs/{clubID}/matches/{matchID}/publish", handler.PublishMatch)
	mux.HandleFunc("POST /v1/clubs/{clubID}/matches/{matchID}/unpublish", handler.UnpublishMatch)

	mux.HandleFunc("GET /v1/clubs/{clubID}/stats/seasons/{season}", handler.ListSeasonStats)
	mux.HandleFunc("GET /v1/players/{playerID}/performances", handler.ListMatchPerformances)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recalc", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecalcJob)))
	mux.Handle("POST /v1/internal/jobs/recalc-all", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecalcAllJob)))
}
