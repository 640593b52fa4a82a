package routes

import (
	"net/http"
	"path/filepath"

	"github.com/Dosada05/tournament-admin/handlers"
	"github.com/Dosada05/tournament-admin/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Team        *handlers.TeamHandler
	Player      *handlers.PlayerHandler
	Competition *handlers.CompetitionHandler
	Catalog     *handlers.CatalogHandler
	Match       *handlers.MatchHandler
	Goal        *handlers.GoalHandler
	Sanction    *handlers.SanctionHandler
	User        *handlers.UserHandler
	WebSocket   *handlers.WebSocketHandler
	Health      *handlers.HealthHandler
}

// SetupRoutes регистрирует все маршруты; staticDir содержит images/ и docs/.
func SetupRoutes(router chi.Router, h Handlers, staticDir string, logger zerolog.Logger) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.AccessLog(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:     []string{"*"},
		ExposedHeaders:     []string{"Content-Disposition"},
		AllowCredentials:   false,
		MaxAge:             300,
		OptionsPassthrough: true,
	}))
	router.Use(middleware.Preflight)

	router.Get("/healthz", h.Health.Healthz)
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(filepath.Join(staticDir, "images")))))
	router.Handle("/docs/*", http.StripPrefix("/docs/", http.FileServer(http.Dir(filepath.Join(staticDir, "docs")))))

	router.Get("/ws/matches/{matchID}", h.WebSocket.ServeWs)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/getAll", h.Team.GetAllTeams)
		r.Post("/addTeam", h.Team.AddTeam)
		r.Post("/addMultipleTeams", h.Team.AddMultipleTeams)
		r.Put("/updateTeam/{id}", h.Team.UpdateTeam)
		r.Delete("/deleteTeam/{id}", h.Team.DeleteTeam)
		r.Get("/{id}/players", h.Team.GetTeamPlayers)
		r.Get("/{id}", h.Team.GetTeamByID)
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/getAll", h.Player.GetAllPlayers)
		r.Post("/addPlayer", h.Player.AddPlayer)
		r.Post("/addMultiplePlayers", h.Player.AddMultiplePlayers)
		r.Get("/team/{teamId}", h.Player.GetPlayersByTeam)
		r.Put("/updatePlayer/{id}", h.Player.UpdatePlayer)
		r.Delete("/deletePlayer/{id}", h.Player.DeletePlayer)
		r.Get("/{id}", h.Player.GetPlayerByID)
	})

	router.Route("/competitions", func(r chi.Router) {
		r.Get("/getAll", h.Competition.GetAllCompetitions)
		r.Post("/addCompetition", h.Competition.AddCompetition)
		r.Put("/updateCompetition/{id}", h.Competition.UpdateCompetition)
		r.Delete("/deleteCompetition/{id}", h.Competition.DeleteCompetition)
		r.Get("/{id}", h.Competition.GetCompetitionByID)
	})

	router.Route("/rounds", func(r chi.Router) {
		r.Get("/getAll", h.Catalog.GetAllRounds)
		r.Post("/addRound", h.Catalog.AddRound)
		r.Post("/addMultipleRounds", h.Catalog.AddMultipleRounds)
		r.Get("/code/{code}", h.Catalog.GetRoundByCode)
		r.Put("/updateRound/{id}", h.Catalog.UpdateRound)
		r.Delete("/deleteRound/{id}", h.Catalog.DeleteRound)
		r.Get("/{id}", h.Catalog.GetRoundByID)
	})

	router.Route("/fields", func(r chi.Router) {
		r.Get("/getAll", h.Catalog.GetAllFields)
		r.Post("/addField", h.Catalog.AddField)
		r.Post("/addMultipleFields", h.Catalog.AddMultipleFields)
		r.Get("/name/{name}", h.Catalog.GetFieldByName)
		r.Put("/updateField/{id}", h.Catalog.UpdateField)
		r.Delete("/deleteField/{id}", h.Catalog.DeleteField)
		r.Get("/{id}", h.Catalog.GetFieldByID)
	})

	router.Route("/states", func(r chi.Router) {
		r.Get("/getAll", h.Catalog.GetAllStates)
		r.Post("/addState", h.Catalog.AddState)
		r.Get("/name/{name}", h.Catalog.GetStateByName)
		r.Put("/updateState/{id}", h.Catalog.UpdateState)
		r.Delete("/deleteState/{id}", h.Catalog.DeleteState)
		r.Get("/{id}", h.Catalog.GetStateByID)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/getAll", h.Match.GetAllMatches)
		r.Post("/addMatch", h.Match.AddMatch)
		r.Post("/addMultipleMatches", h.Match.AddMultipleMatches)
		r.Get("/competition/{id}", h.Match.GetMatchesByCompetition)
		r.Put("/updateResult/{id}", h.Match.UpdateResult)
		r.Put("/updateSchedule/{id}", h.Match.UpdateSchedule)
		r.Delete("/deleteMatch/{id}", h.Match.DeleteMatch)
		r.Get("/{id}", h.Match.GetMatchByID)
	})

	router.Route("/goals", func(r chi.Router) {
		r.Get("/getAll", h.Goal.GetAllGoals)
		r.Post("/addGoal", h.Goal.AddGoal)
		r.Post("/addMultipleGoals", h.Goal.AddMultipleGoals)
		r.Get("/match/{id}", h.Goal.GetGoalsByMatch)
		r.Get("/topScorers", h.Goal.TopScorers)
		r.Get("/topFiveScorers", h.Goal.TopFiveScorers)
		r.Get("/topScorers/export", h.Goal.ExportTopScorers)
		r.Get("/topScorers/match/{id}", h.Goal.TopScorersByMatch)
		r.Get("/topScorers/team/{id}", h.Goal.TopScorersByTeam)
		r.Delete("/deleteGoal/{id}", h.Goal.DeleteGoal)
		r.Get("/{id}", h.Goal.GetGoalByID)
	})

	router.Route("/sanctions", func(r chi.Router) {
		r.Get("/getAll", h.Sanction.GetAllSanctions)
		r.Post("/addSanction", h.Sanction.AddSanction)
		r.Get("/type/{typeId}", h.Sanction.SanctionsByType)
		r.Get("/type/{typeId}/top", h.Sanction.TopFiveSanctioned)
		r.Get("/type/{typeId}/team/{teamId}", h.Sanction.SanctionsByTypeAndTeam)
		r.Get("/type/{typeId}/match/{matchId}", h.Sanction.SanctionsByTypeAndMatch)
		r.Put("/updateSanction/{id}", h.Sanction.UpdateSanction)
		r.Delete("/deleteSanction/{id}", h.Sanction.DeleteSanction)
		r.Get("/{id}", h.Sanction.GetSanctionByID)
	})

	router.Route("/sanctiontypes", func(r chi.Router) {
		r.Get("/getAll", h.Sanction.GetAllSanctionTypes)
		r.Post("/addSanctionType", h.Sanction.AddSanctionType)
		r.Post("/addMultipleSanctionTypes", h.Sanction.AddMultipleSanctionTypes)
		r.Put("/updateSanctionType/{id}", h.Sanction.UpdateSanctionType)
		r.Delete("/deleteSanctionType/{id}", h.Sanction.DeleteSanctionType)
		r.Get("/{id}", h.Sanction.GetSanctionTypeByID)
	})

	router.Route("/user", func(r chi.Router) {
		r.Get("/getAll", h.User.GetAllUsers)
		r.Post("/addUser", h.User.AddUser)
		r.Post("/login", h.User.Login)
		r.Get("/roles/getAll", h.User.GetAllRoles)
		r.Post("/roles/addRole", h.User.AddRole)
	})

	router.Get("/log/getAll", h.User.GetAllLogs)
}
