package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gofrs/uuid"
	"github.com/mbolis/platform-pulse/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	root.Mount("/api", apiRouter(app))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/health", Health)

	// CRUD survey
	api.Get("/surveys", ListVisibleSurveys(app))
	api.Get("/surveys/all", ListAllSurveys(app))
	api.Post("/surveys", CreateSurvey(app))
	api.Get("/surveys/{id}", GetSurveyById(app))
	api.Put("/surveys/{id}", UpdateSurvey(app))
	api.Delete("/surveys/{id}", DeleteSurvey(app))

	// responses and aggregates
	api.Post("/responses", SubmitResponse(app))
	api.Get("/surveys/{id}/results", GetSurveyResults(app))
	api.Get("/surveys/{id}/stats", GetSurveyStats(app))
	api.Delete("/surveys/{id}/responses", ResetSurveyResponses(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}

// Timestamps are stored as fixed-width UTC text so that SQL ORDER BY
// on them matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

func timestamp() string {
	return time.Now().UTC().Format(timeLayout)
}

func newID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
