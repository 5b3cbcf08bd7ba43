package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/noamsilver/luach-api/internal/cache"
	"github.com/noamsilver/luach-api/internal/config"
	"github.com/noamsilver/luach-api/internal/database"
	"github.com/noamsilver/luach-api/internal/hebcal"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	cfg    *config.Config
	logger *slog.Logger

	// now supplies "today"; replaceable in tests.
	now func() time.Time

	// Year summaries are pure functions of the year, so they are
	// memoized across requests.
	years cache.Memo[int, YearSummary]
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// =============================================================================
// Response Shapes
// =============================================================================

// HebrewDate is the JSON form of a calendar date, carrying both the
// Hebrew and Gregorian representations.
type HebrewDate struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	Day       int    `json:"day"`
	Gregorian string `json:"gregorian"` // YYYY-MM-DD
	EpochDay  int64  `json:"epoch_day"`
	LeapYear  bool   `json:"leap_year"`
}

// MonthSummary is one row of a year's month table.
type MonthSummary struct {
	Month int    `json:"month"`
	Name  string `json:"name"`
	Days  int    `json:"days"`
}

// YearSummary describes a whole Hebrew year.
type YearSummary struct {
	Year     int            `json:"year"`
	LeapYear bool           `json:"leap_year"`
	Days     int            `json:"days"`
	NewYear  string         `json:"new_year"` // Gregorian YYYY-MM-DD
	Months   []MonthSummary `json:"months"`
}

func hebrewDateJSON(d hebcal.Date) HebrewDate {
	return HebrewDate{
		Year:      d.Year(),
		Month:     int(d.Month()),
		MonthName: d.Month().String(),
		Day:       d.Day(),
		Gregorian: d.Time().Format("2006-01-02"),
		EpochDay:  d.EpochDay(),
		LeapYear:  hebcal.IsLeapYear(d.Year()),
	}
}

func yearSummary(year int) YearSummary {
	s := YearSummary{
		Year:     year,
		LeapYear: hebcal.IsLeapYear(year),
		Days:     hebcal.DaysInYear(year),
	}
	if d, err := hebcal.New(year, hebcal.Tishri, 1); err == nil {
		s.NewYear = d.Time().Format("2006-01-02")
	}
	for _, m := range hebcal.MonthsInYear(year) {
		n, err := hebcal.DaysInMonth(year, m)
		if err != nil {
			continue // cannot happen for months of the year
		}
		s.Months = append(s.Months, MonthSummary{Month: int(m), Name: m.String(), Days: n})
	}
	return s
}

// =============================================================================
// Public Handlers
// =============================================================================

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check database health
	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// ConvertGregorian handles GET /api/v1/convert/{date}
// where {date} is a Gregorian date in YYYY-MM-DD form.
func (h *Handlers) ConvertGregorian(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")

	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	d, err := hebcal.FromTime(t)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	WriteSuccess(w, hebrewDateJSON(d))
}

// ConvertHebrew handles GET /api/v1/convert/hebrew/{year}/{month}/{day}
// where {month} is the civil month number, 1 (Tishri) to 13 (Elul).
func (h *Handlers) ConvertHebrew(w http.ResponseWriter, r *http.Request) {
	year, err1 := strconv.Atoi(chi.URLParam(r, "year"))
	month, err2 := strconv.Atoi(chi.URLParam(r, "month"))
	day, err3 := strconv.Atoi(chi.URLParam(r, "day"))
	if err1 != nil || err2 != nil || err3 != nil {
		WriteBadRequest(w, "Year, month and day must be integers")
		return
	}

	d, err := hebcal.New(year, hebcal.Month(month), day)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	WriteSuccess(w, hebrewDateJSON(d))
}

// Today handles GET /api/v1/today
func (h *Handlers) Today(w http.ResponseWriter, r *http.Request) {
	d, err := hebcal.FromTime(h.now().UTC())
	if err != nil {
		h.logger.Error("failed to compute today", slog.Any("error", err))
		WriteInternalError(w, "Failed to compute today's date")
		return
	}

	WriteSuccess(w, hebrewDateJSON(d))
}

// YearInfo handles GET /api/v1/years/{year}
func (h *Handlers) YearInfo(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Year must be an integer")
		return
	}
	if year < hebcal.MinYear || year > hebcal.MaxYear {
		WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("Year %d outside %d..%d", year, hebcal.MinYear, hebcal.MaxYear),
			"OUT_OF_RANGE")
		return
	}

	WriteSuccess(w, h.years.Get(year, yearSummary))
}

// Add handles GET /api/v1/add?date=YYYY-MM-DD&years=N&months=N&weeks=N&days=N
//
// The date is Gregorian; the amounts are applied on the Hebrew
// calendar, largest unit first, each defaulting to zero.
func (h *Handlers) Add(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		WriteBadRequest(w, "Date parameter is required")
		return
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	amounts := map[string]int{}
	for _, name := range []string{"years", "months", "weeks", "days"} {
		v := r.URL.Query().Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid %s amount: %s", name, v))
			return
		}
		amounts[name] = n
	}

	d, err := hebcal.FromTime(t)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	start := d
	for _, step := range []struct {
		name string
		add  func(hebcal.Date, int) (hebcal.Date, error)
	}{
		{"years", hebcal.Date.AddYears},
		{"months", hebcal.Date.AddMonths},
		{"weeks", hebcal.Date.AddWeeks},
		{"days", hebcal.Date.AddDays},
	} {
		n, ok := amounts[step.name]
		if !ok {
			continue
		}
		d, err = step.add(d, n)
		if err != nil {
			WriteCalendarError(w, err)
			return
		}
	}

	WriteSuccess(w, map[string]interface{}{
		"start":  hebrewDateJSON(start),
		"result": hebrewDateJSON(d),
	})
}

// BetweenDates handles GET /api/v1/between?unit=months&start=YYYY-MM-DD&end=YYYY-MM-DD
//
// Start and end may also be given as Hebrew year/month/day triples,
// e.g. start=5784/1/1.
//
// The count follows whole-elapsed-unit semantics: incomplete trailing
// units are dropped and the sign follows the direction of the span.
func (h *Handlers) BetweenDates(w http.ResponseWriter, r *http.Request) {
	unitStr := r.URL.Query().Get("unit")
	if unitStr == "" {
		unitStr = "days"
	}
	unit, err := hebcal.ParseUnit(unitStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid unit: %s. Use days, weeks, months or years", unitStr))
		return
	}

	start, err := parseDateParam(r, "start")
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	end, err := parseDateParam(r, "end")
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	n, err := hebcal.Between(unit, start, end)
	if err != nil {
		WriteCalendarError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"unit":   unit.String(),
		"start":  hebrewDateJSON(start),
		"end":    hebrewDateJSON(end),
		"amount": n,
	})
}

// parseDateParam reads a required date query parameter. Two forms are
// accepted: Gregorian YYYY-MM-DD, or a Hebrew year/month/day triple
// such as 5784/8/15.
func parseDateParam(r *http.Request, name string) (hebcal.Date, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return hebcal.Date{}, fmt.Errorf("%s date parameter is required", name)
	}

	if parts := strings.Split(v, "/"); len(parts) == 3 {
		year, err1 := strconv.Atoi(parts[0])
		month, err2 := strconv.Atoi(parts[1])
		day, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return hebcal.Date{}, fmt.Errorf("invalid %s date: %s, use year/month/day", name, v)
		}
		d, err := hebcal.New(year, hebcal.Month(month), day)
		if err != nil {
			return hebcal.Date{}, fmt.Errorf("invalid %s date %s: %w", name, v, err)
		}
		return d, nil
	}

	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return hebcal.Date{}, fmt.Errorf("invalid %s date: %s, use YYYY-MM-DD or year/month/day", name, v)
	}
	d, err := hebcal.FromTime(t)
	if err != nil {
		return hebcal.Date{}, fmt.Errorf("%s date outside the supported range", name)
	}
	return d, nil
}

// =============================================================================
// Authenticated Handlers
// =============================================================================

// GetCurrentUser handles GET /api/v1/me
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.db.GetUser(ctx, UserID(ctx))
	if err != nil {
		h.logger.Error("failed to load current user", slog.Any("error", err))
		WriteInternalError(w, "Failed to load user")
		return
	}

	WriteSuccess(w, user)
}

// GetMyAPIKeys handles GET /api/v1/me/keys
func (h *Handlers) GetMyAPIKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	keys, err := h.db.ListAPIKeys(ctx, UserID(ctx))
	if err != nil {
		h.logger.Error("failed to list api keys", slog.Any("error", err))
		WriteInternalError(w, "Failed to list API keys")
		return
	}

	WriteSuccess(w, keys)
}

// RevokeMyAPIKey handles DELETE /api/v1/me/keys/{keyID}
func (h *Handlers) RevokeMyAPIKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	keyID, err := strconv.ParseInt(chi.URLParam(r, "keyID"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Key ID must be an integer")
		return
	}

	if err := h.db.RevokeAPIKey(ctx, UserID(ctx), keyID); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "No such key")
			return
		}
		h.logger.Error("failed to revoke api key", slog.Any("error", err))
		WriteInternalError(w, "Failed to revoke key")
		return
	}

	WriteSuccess(w, map[string]string{"status": "revoked"})
}

// =============================================================================
// Admin Handlers
// =============================================================================

// CreateUser handles POST /api/v1/admin/users
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if req.Name == "" || req.Email == "" {
		WriteBadRequest(w, "Both name and email are required")
		return
	}

	user, err := h.db.CreateUser(ctx, req.Name, req.Email)
	if err != nil {
		h.logger.Error("failed to create user", slog.Any("error", err))
		WriteInternalError(w, "Failed to create user")
		return
	}

	WriteJSON(w, http.StatusCreated, Response{Success: true, Data: user})
}

// ListUsers handles GET /api/v1/admin/users
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.db.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", slog.Any("error", err))
		WriteInternalError(w, "Failed to list users")
		return
	}

	WriteSuccess(w, users)
}

// CreateAPIKey handles POST /api/v1/admin/users/{userID}/keys
func (h *Handlers) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "User ID must be an integer")
		return
	}

	var req struct {
		Label string `json:"label"`
	}
	if r.Body != nil {
		// Body is optional; ignore decode errors on empty bodies
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	key, plaintext, err := h.db.CreateAPIKey(ctx, userID, req.Label)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "No such user")
			return
		}
		h.logger.Error("failed to create api key", slog.Any("error", err))
		WriteInternalError(w, "Failed to create key")
		return
	}

	WriteJSON(w, http.StatusCreated, Response{Success: true, Data: map[string]interface{}{
		"key":       key,
		"plaintext": plaintext, // shown once, never stored
	}})
}
