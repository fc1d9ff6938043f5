package routes

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/platform-pulse/app"
	"github.com/mbolis/platform-pulse/httpx"
	"github.com/mbolis/platform-pulse/log"
	"github.com/mbolis/platform-pulse/model"
)

const surveyColumns = `id, title, COALESCE(description, ''), is_active, is_visible, created_at, updated_at`

func ListVisibleSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT `+surveyColumns+`
			FROM surveys
			WHERE is_visible = 1
			ORDER BY created_at DESC`)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_surveys", err)
			return
		}
		defer rows.Close()

		surveys, err := collectSurveys(rows)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_surveys.scan", err)
			return
		}

		render.JSON(w, r, surveys)
	}
}

func ListAllSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT `+surveyColumns+`
			FROM surveys
			ORDER BY created_at DESC`)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_all_surveys", err)
			return
		}
		defer rows.Close()

		surveys, err := collectSurveys(rows)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_all_surveys.scan", err)
			return
		}

		render.JSON(w, r, surveys)
	}
}

func GetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		survey, err := getSurvey(r.Context(), app, surveyId)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, r, "get_survey", surveyId, "Survey not found")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := model.SurveyInput{}
		err := render.DecodeJSON(r.Body, &input)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Invalid request data")
			return
		}

		surveyId, err := newID()
		if err != nil {
			httpx.LogInternalError(w, r, "uuid.new", err)
			return
		}

		now := timestamp()
		_, err = app.ExecContext(r.Context(), `
			INSERT INTO surveys (id, title, description, is_active, is_visible, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			surveyId,
			input.Title,
			input.Description,
			flagOrDefault(input.IsActive, true),
			flagOrDefault(input.IsVisible, true),
			now,
			now,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_survey", err)
			return
		}

		survey, err := getSurvey(r.Context(), app, surveyId)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_survey.get", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, survey)
	}
}

func UpdateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		input := model.SurveyInput{}
		err := render.DecodeJSON(r.Body, &input)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Invalid request data")
			return
		}

		// full replacement: absent flags are taken as false
		res, err := app.ExecContext(r.Context(), `
			UPDATE surveys
			SET
				title = ?,
				description = ?,
				is_active = ?,
				is_visible = ?,
				updated_at = ?
			WHERE id = ?`,
			input.Title,
			input.Description,
			flagOrDefault(input.IsActive, false),
			flagOrDefault(input.IsVisible, false),
			timestamp(),
			surveyId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_survey", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_survey.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, r, "update_survey", surveyId, "Survey not found")
			return
		}

		survey, err := getSurvey(r.Context(), app, surveyId)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_survey.get", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		res, err := app.ExecContext(r.Context(), `
			DELETE FROM surveys WHERE id = ?`,
			surveyId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_survey", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_survey.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, r, "delete_survey", surveyId, "Survey not found")
			return
		}

		render.JSON(w, r, model.MessageResult{Message: "Survey deleted successfully"})
	}
}

func getSurvey(ctx context.Context, app app.App, surveyId string) (survey model.Survey, err error) {
	err = app.QueryRowContext(ctx, `
		SELECT `+surveyColumns+`
		FROM surveys
		WHERE id = ?`,
		surveyId,
	).Scan(
		&survey.ID, &survey.Title, &survey.Description,
		&survey.IsActive, &survey.IsVisible,
		&survey.CreatedAt, &survey.UpdatedAt,
	)
	return
}

func collectSurveys(rows *sql.Rows) ([]model.Survey, error) {
	surveys := []model.Survey{}
	for rows.Next() {
		s := model.Survey{}
		err := rows.Scan(
			&s.ID, &s.Title, &s.Description,
			&s.IsActive, &s.IsVisible,
			&s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		surveys = append(surveys, s)
	}
	return surveys, rows.Err()
}

func flagOrDefault(flag *bool, def bool) bool {
	if flag == nil {
		return def
	}
	return *flag
}
