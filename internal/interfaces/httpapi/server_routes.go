package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/upcoming", handler.ListUpcomingMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("POST /v1/matches/odds", handler.UpdateOdds)
}

func registerPipelineRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/ingest", handler.IngestFixtures)
	mux.HandleFunc("POST /v1/sweep", handler.RunSweep)
	mux.HandleFunc("POST /v1/analyze", handler.RunAnalysis)
	mux.HandleFunc("POST /v1/pipeline/refresh", handler.RefreshPipeline)
}
