package tracking

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/longevity/pkg/handlers"
	"github.com/JaimeStill/longevity/pkg/openapi"
	"github.com/JaimeStill/longevity/pkg/pagination"
	"github.com/JaimeStill/longevity/pkg/routes"
)

// Handler provides HTTP endpoints for tracking, measurements, goals, and biomarkers.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "tracking"),
		pagination: pagination,
		now:        time.Now,
	}
}

// Routes returns the route group definition for tracking endpoints.
func (h *Handler) Routes() routes.Group {
	idParam := openapi.IDParam("id", "Tracking ID")
	userParam := openapi.IDParam("userId", "User ID")

	return routes.Group{
		Prefix: "/tracking",
		Tags:   []string{"Tracking"},
		Routes: []routes.Route{
			{
				Method: "POST", Pattern: "/start", Handler: h.Start,
				OpenAPI: &openapi.Operation{
					Summary:     "Start tracking an intervention",
					RequestBody: openapi.RequestBodyJSON("TrackingStartCommand", true),
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Started", "Tracking"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/interventions/user/{userId}", Handler: h.ListByUser,
				OpenAPI: &openapi.Operation{
					Summary: "List a user's tracked interventions",
					Parameters: []*openapi.Parameter{
						userParam,
						openapi.QueryParam("status", "string", "Tracking status", false),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of tracking records", "TrackingPage"),
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{id}", Handler: h.Find,
				OpenAPI: &openapi.Operation{
					Summary:    "Find a tracking record",
					Parameters: []*openapi.Parameter{idParam},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Tracking record", "Tracking"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "PUT", Pattern: "/{id}", Handler: h.Update,
				OpenAPI: &openapi.Operation{
					Summary:     "Update a tracking record",
					Parameters:  []*openapi.Parameter{idParam},
					RequestBody: openapi.RequestBodyJSON("TrackingUpdateCommand", true),
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Updated", "Tracking"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{id}/measurements", Handler: h.Measurements,
				OpenAPI: &openapi.Operation{
					Summary:    "List a tracking record's measurements",
					Parameters: []*openapi.Parameter{idParam},
					Responses: map[int]*openapi.Response{
						200: {Description: "Measurements, newest first", Content: map[string]*openapi.MediaType{
							"application/json": {Schema: openapi.ArrayOf("Measurement")},
						}},
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/{id}/progress", Handler: h.Progress,
				OpenAPI: &openapi.Operation{
					Summary:    "Measurement progress against baseline",
					Parameters: []*openapi.Parameter{idParam},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Progress keyed by metric", "Progress"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "POST", Pattern: "/measurements", Handler: h.AddMeasurement,
				OpenAPI: &openapi.Operation{
					Summary:     "Record a measurement",
					RequestBody: openapi.RequestBodyJSON("MeasurementCommand", true),
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Recorded", "Measurement"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/measurements/user/{userId}", Handler: h.MeasurementsByUser,
				OpenAPI: &openapi.Operation{
					Summary: "List a user's measurements",
					Parameters: []*openapi.Parameter{
						userParam,
						openapi.QueryParam("metric_name", "string", "Metric name", false),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of measurements", "MeasurementPage"),
					},
				},
			},
			{
				Method: "POST", Pattern: "/goals", Handler: h.CreateGoal,
				OpenAPI: &openapi.Operation{
					Summary:     "Create a health goal",
					RequestBody: openapi.RequestBodyJSON("GoalCommand", true),
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Created", "Goal"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "PUT", Pattern: "/goals/{goalId}", Handler: h.UpdateGoal,
				OpenAPI: &openapi.Operation{
					Summary:     "Update a health goal",
					Parameters:  []*openapi.Parameter{openapi.IDParam("goalId", "Goal ID")},
					RequestBody: openapi.RequestBodyJSON("GoalUpdateCommand", true),
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Updated", "Goal"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/goals/user/{userId}", Handler: h.GoalsByUser,
				OpenAPI: &openapi.Operation{
					Summary:    "List a user's goals",
					Parameters: []*openapi.Parameter{userParam},
					Responses: map[int]*openapi.Response{
						200: goalList("Goals, newest first"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/goals/active/{userId}", Handler: h.ActiveGoals,
				OpenAPI: &openapi.Operation{
					Summary:    "List a user's active goals",
					Parameters: []*openapi.Parameter{userParam},
					Responses: map[int]*openapi.Response{
						200: goalList("Active goals, nearest target first"),
					},
				},
			},
			{
				Method: "POST", Pattern: "/biomarkers", Handler: h.AddBiomarker,
				OpenAPI: &openapi.Operation{
					Summary:     "Record a biomarker reading",
					RequestBody: openapi.RequestBodyJSON("BiomarkerCommand", true),
					Responses: map[int]*openapi.Response{
						201: openapi.ResponseJSON("Recorded", "Biomarker"),
						400: openapi.ResponseRef("BadRequest"),
						404: openapi.ResponseRef("NotFound"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/biomarkers/user/{userId}", Handler: h.BiomarkersByUser,
				OpenAPI: &openapi.Operation{
					Summary: "List a user's biomarker readings",
					Parameters: []*openapi.Parameter{
						userParam,
						openapi.QueryParam("biomarker_name", "string", "Biomarker name", false),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Page of biomarker readings", "BiomarkerPage"),
					},
				},
			},
			{
				Method: "GET", Pattern: "/biomarkers/trends/{userId}", Handler: h.Trend,
				OpenAPI: &openapi.Operation{
					Summary: "Biomarker trend over recent days",
					Parameters: []*openapi.Parameter{
						userParam,
						openapi.QueryParam("biomarker_name", "string", "Biomarker name", true),
						openapi.QueryParam("days", "integer", "Window in days, default 30", false),
					},
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Readings, oldest first", "Trend"),
						400: openapi.ResponseRef("BadRequest"),
					},
				},
			},
		},
	}
}

func goalList(description string) *openapi.Response {
	return &openapi.Response{
		Description: description,
		Content: map[string]*openapi.MediaType{
			"application/json": {Schema: openapi.ArrayOf("Goal")},
		},
	}
}

// Start begins tracking an intervention for a user.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var cmd StartCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	t, err := h.sys.Start(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, t)
}

// Find returns a single tracking record by ID.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	t, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, t)
}

// Update changes the status, adherence, end date, or notes of a tracking record.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd UpdateCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	t, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, t)
}

// ListByUser returns a user's tracking records, newest first.
func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	filters := FiltersFromQuery(r.URL.Query())
	if filters.Status != nil && !ValidStatus(*filters.Status) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidStatus)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.ListByUser(r.Context(), userID, page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Measurements returns the readings of one tracking record.
func (h *Handler) Measurements(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	ms, err := h.sys.Measurements(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ms)
}

// Progress groups a tracking record's readings by metric.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	progress, err := h.sys.Progress(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, progress)
}

// AddMeasurement records a metric reading against a tracking record.
func (h *Handler) AddMeasurement(w http.ResponseWriter, r *http.Request) {
	var cmd MeasurementCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	m, err := h.sys.AddMeasurement(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, m)
}

// MeasurementsByUser returns a user's readings across all tracking records.
func (h *Handler) MeasurementsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.MeasurementsByUser(r.Context(), userID, page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateGoal creates a health goal.
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var cmd GoalCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	g, err := h.sys.CreateGoal(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, g)
}

// UpdateGoal changes a goal's current value, status, or target date.
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "goalId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd GoalUpdateCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	g, err := h.sys.UpdateGoal(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, g)
}

// GoalsByUser returns all of a user's goals.
func (h *Handler) GoalsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	goals, err := h.sys.GoalsByUser(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, goals)
}

// ActiveGoals returns a user's goals that are not started or in progress.
func (h *Handler) ActiveGoals(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	goals, err := h.sys.ActiveGoals(r.Context(), userID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, goals)
}

// AddBiomarker records a biomarker reading.
func (h *Handler) AddBiomarker(w http.ResponseWriter, r *http.Request) {
	var cmd BiomarkerCommand
	if err := handlers.DecodeValid(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	b, err := h.sys.AddBiomarker(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, b)
}

// BiomarkersByUser returns a user's biomarker readings, newest first.
func (h *Handler) BiomarkersByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.BiomarkersByUser(r.Context(), userID, page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Trend returns one biomarker's readings over the last days days.
func (h *Handler) Trend(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	name := r.URL.Query().Get("biomarker_name")
	if name == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrBiomarkerRequired)
		return
	}

	days, err := handlers.QueryInt(r, "days", DefaultTrendDays)
	if err != nil || days < 1 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidDays)
		return
	}

	trend, err := h.sys.Trend(r.Context(), userID, name, days, h.now())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, trend)
}
