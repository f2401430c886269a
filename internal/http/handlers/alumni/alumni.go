// Package alumni contains the HTTP handlers for the alumni list.
//
// HANDLER PATTERN (CLOSURE / FACTORY):
// ────────────────────────────────────────────────
// Each exported function receives its dependencies once at startup and
// returns the http.HandlerFunc the router calls on every request:
//
//	router.HandleFunc("GET /alumni", alumni.GetList(storage, sorting.ByField))
//
// Every request re-reads the source through storage, so the handlers keep
// no state between requests and need no locking.
package alumni

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/aanand-mishra/alumni-api/internal/filter"
	"github.com/aanand-mishra/alumni-api/internal/parser"
	"github.com/aanand-mishra/alumni-api/internal/sorting"
	"github.com/aanand-mishra/alumni-api/internal/storage"
	"github.com/aanand-mishra/alumni-api/internal/types"
	"github.com/aanand-mishra/alumni-api/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// validate is shared by all handlers; *validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = validator.New()

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /alumni
// Returns a pretty-printed JSON array of alumni, sorted.
//
// Query parameters (all optional):
//
//	sort=field|university|year|major   overrides defaultSort
//	q=<text>                           substring search
//	university=, major=, field=        exact, case-insensitive
//	year=<int>                         exact graduation year
//
// Success response (200 OK):
//
//	[
//	  { "id": 2, "name": "Bob", "university": "MIT", ... },
//	  { "id": 1, "name": "Alice", ... }
//	]
//
// A source that cannot be read is logged and answered with [] (200), never
// with an error status.
//
// Error responses:
//
//	400 Bad Request   unknown sort key or non-integer year
//
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage, defaultSort sorting.Selector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := filter.ParseAlumniFilter(r)
		if err := validate.Struct(f); err != nil {
			writeValidationError(w, err)
			return
		}

		selector := defaultSort
		if f.Sort != "" {
			s, err := sorting.ParseSelector(f.Sort)
			if err != nil {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
				return
			}
			selector = s
		}

		slog.Info("listing alumni", slog.String("sort", selector.String()))

		records, _ := load(r, storage)
		records = sorting.Sort(f.Apply(records), selector)

		response.WritePrettyJSON(w, http.StatusOK, records)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetStats handles GET /alumni/stats
// Summarises one parse pass of the source.
//
// Success response (200 OK):
//
//	{
//	  "totalAlumni": 3,
//	  "averageGraduationYear": 2019,
//	  "uniqueFields": 2,
//	  "withAchievements": 1,
//	  "rejectedRows": 0
//	}
//
// ─────────────────────────────────────────────────────────────────────────────
func GetStats(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("summarising alumni")

		records, report := load(r, storage)
		response.WritePrettyJSON(w, http.StatusOK, Summarize(records, report))
	}
}

// Summarize computes the dashboard numbers for records.
// The average year is rounded half away from zero and is 0 for no records.
func Summarize(records []types.Alumni, report parser.Report) types.Stats {
	stats := types.Stats{
		TotalAlumni:  len(records),
		RejectedRows: report.Rejected(),
	}

	fields := make(map[string]struct{})
	sum := 0
	for _, a := range records {
		sum += a.YearOfGraduation
		fields[a.FieldAfterGraduation] = struct{}{}
		if a.NotableAchievements != "" {
			stats.WithAchievements++
		}
	}
	stats.UniqueFields = len(fields)

	if len(records) > 0 {
		stats.AverageGraduationYear = int(math.Round(float64(sum) / float64(len(records))))
	}

	return stats
}

// load runs one parse pass and degrades every failure to "no records".
func load(r *http.Request, storage storage.Storage) ([]types.Alumni, parser.Report) {
	records, report, err := storage.ListAlumni(r.Context())
	if err != nil {
		slog.Error("alumni source unavailable, serving empty list",
			slog.String("error", err.Error()))
		return []types.Alumni{}, report
	}

	if report.Rejected() > 0 {
		slog.Warn("dropped malformed alumni rows",
			slog.Int("accepted", report.Accepted),
			slog.Int("rejected_field_count", report.RejectedFields),
			slog.Int("rejected_year", report.RejectedYear),
		)
	}

	return records, report
}

// writeValidationError answers 400 with the validator's field errors.
func writeValidationError(w http.ResponseWriter, err error) {
	var validateErrs validator.ValidationErrors
	if errors.As(err, &validateErrs) {
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(validateErrs))
		return
	}
	response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
}
