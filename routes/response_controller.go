package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/platform-pulse/app"
	"github.com/mbolis/platform-pulse/httpx"
	"github.com/mbolis/platform-pulse/log"
	"github.com/mbolis/platform-pulse/model"
)

// SubmitResponse validates shape only: the survey id must be present and
// platforms must be a non-empty list. Unknown survey ids, platform names
// outside the client vocabulary and repeated platforms are accepted as-is.
func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := model.SubmitResponseInput{}
		err := render.DecodeJSON(r.Body, &input)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "Invalid request data")
			return
		}
		if input.SurveyID == "" || len(input.Platforms) == 0 {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.validate_body", "Invalid request data")
			return
		}

		responseId, err := newID()
		if err != nil {
			httpx.LogInternalError(w, r, "uuid.new", err)
			return
		}
		// record-keeping only, carries no identity
		sessionId, err := newID()
		if err != nil {
			httpx.LogInternalError(w, r, "uuid.new", err)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, r, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		now := timestamp()
		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO survey_responses (id, survey_id, session_id, created_at)
			VALUES (?, ?, ?, ?)`,
			responseId,
			input.SurveyID,
			sessionId,
			now,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_response", err)
			return
		}

		stmt, err := tx.PrepareContext(r.Context(), `
			INSERT INTO social_media_selections (id, response_id, platform_name, created_at)
			VALUES (?, ?, ?, ?)`)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_response.selections.prepare", err)
			return
		}
		defer stmt.Close()

		for _, platform := range input.Platforms {
			selectionId, err := newID()
			if err != nil {
				httpx.LogInternalError(w, r, "uuid.new", err)
				return
			}
			_, err = stmt.ExecContext(r.Context(), selectionId, responseId, platform, now)
			if err != nil {
				httpx.LogInternalError(w, r, "db.insert_response.selections.insert", err)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_response.commit", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, model.SubmitResponseResult{
			ID:      responseId,
			Message: "Response submitted successfully",
		})
	}
}

func GetSurveyResults(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		results, errCode, err := querySurveyResults(r.Context(), app, surveyId)
		if err != nil {
			httpx.LogInternalError(w, r, errCode, err)
			return
		}

		render.JSON(w, r, results)
	}
}

func GetSurveyStats(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		results, errCode, err := querySurveyResults(r.Context(), app, surveyId)
		if err != nil {
			httpx.LogInternalError(w, r, errCode, err)
			return
		}

		rows, err := app.QueryContext(r.Context(), `
			SELECT
				sr.id, sr.created_at,
				COALESCE(GROUP_CONCAT(sms.platform_name, ', '), '')
			FROM survey_responses sr
			LEFT JOIN social_media_selections sms ON (sr.id = sms.response_id)
			WHERE sr.survey_id = ?
			GROUP BY sr.id
			ORDER BY sr.created_at DESC
			LIMIT 10`,
			surveyId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_recent_responses", err)
			return
		}
		defer rows.Close()

		recent := []model.RecentResponse{}
		for rows.Next() {
			resp := model.RecentResponse{}
			err = rows.Scan(&resp.ID, &resp.CreatedAt, &resp.Platforms)
			if err != nil {
				httpx.LogInternalError(w, r, "db.get_recent_responses.scan", err)
				return
			}

			recent = append(recent, resp)
		}
		if err = rows.Err(); err != nil {
			httpx.LogInternalError(w, r, "db.get_recent_responses.rows", err)
			return
		}

		render.JSON(w, r, model.SurveyStats{
			SurveyResults:   results,
			RecentResponses: recent,
		})
	}
}

func ResetSurveyResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId := chi.URLParam(r, "id")

		res, err := app.ExecContext(r.Context(), `
			DELETE FROM survey_responses WHERE survey_id = ?`,
			surveyId,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_responses", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_responses.verify", err)
			return
		}

		render.JSON(w, r, model.ResetResult{
			Message:      "All responses deleted successfully",
			DeletedCount: int(n),
		})
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, model.Health{Status: "ok", Timestamp: timestamp()})
}

// querySurveyResults gathers total response and per-platform selection
// counts for a survey. An unknown survey id yields zero totals.
func querySurveyResults(ctx context.Context, app app.App, surveyId string) (results model.SurveyResults, errCode string, err error) {
	results.PlatformCounts = []model.PlatformCount{}

	err = app.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM survey_responses
		WHERE survey_id = ?`,
		surveyId,
	).Scan(&results.TotalResponses)
	if err != nil {
		return results, "db.count_responses", err
	}

	// ties broken by platform name for a deterministic order
	rows, err := app.QueryContext(ctx, `
		SELECT
			sms.platform_name,
			COUNT(*) AS count
		FROM social_media_selections sms
		JOIN survey_responses sr ON (sms.response_id = sr.id)
		WHERE sr.survey_id = ?
		GROUP BY sms.platform_name
		ORDER BY count DESC, sms.platform_name`,
		surveyId,
	)
	if err != nil {
		return results, "db.get_platform_counts", err
	}
	defer rows.Close()

	for rows.Next() {
		pc := model.PlatformCount{}
		err = rows.Scan(&pc.PlatformName, &pc.Count)
		if err != nil {
			return results, "db.get_platform_counts.scan", err
		}

		results.PlatformCounts = append(results.PlatformCounts, pc)
	}
	return results, "db.get_platform_counts.rows", rows.Err()
}
