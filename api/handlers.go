/*
handlers.go - HTTP API handlers for units of time and reporting periods

PURPOSE:
  Exposes the timeunit algebra and the named-period catalog via REST API.
  Handles HTTP request/response, JSON serialization, validation, and
  delegates to the timeunit, allocation and store packages.

ENDPOINTS:
  Units:
    POST   /api/units/parse            Decode a unit (plain or sortable form)
    POST   /api/units/plus             Shift a unit by n units
    POST   /api/units/convert          Calendar <-> fiscal quarter
    POST   /api/units/to-date          Units from start of year through unit

  Periods:
    POST   /api/periods/parse          Decode a period
    POST   /api/periods/contains       Is a unit inside a period
    POST   /api/periods/overlap        Do two periods share a unit
    POST   /api/periods/units          Enumerate a bounded period
    POST   /api/periods/permutations   Contiguous sub-periods up to max_units
    POST   /api/periods/allocate       Split an amount across the units

  Catalog:
    GET    /api/catalog                List named periods
    POST   /api/catalog                Save a named period
    GET    /api/catalog/overlapping    Named periods overlapping ?period=
    GET    /api/catalog/{id}           Get a named period
    DELETE /api/catalog/{id}           Delete a named period

  Presets:
    GET    /api/presets                List preset catalogs
    POST   /api/presets/load           Save a preset's periods

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Named-period catalog (SQLite in production, memory in tests)
  - FiscalQ1: Calendar quarter in which the fiscal year begins
  - validate: Request DTO validation

REQUEST FLOW:
  1. Decode JSON body
  2. Validate DTO tags
  3. Parse units/periods from text
  4. Call domain logic
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, unparseable or mismatched units and periods
  - 404: Named period not found
  - 409: Duplicate named period
  - 500: Internal errors
  ErrorResponse.Code carries a stable machine-readable reason.

SECURITY NOTE:
  No authentication. Requests under /api are rate limited per client IP.

SEE ALSO:
  - dto.go: Request/response data structures
  - presets.go: Preset catalogs
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/warp/accounting-time/allocation"
	"github.com/warp/accounting-time/timeunit"
)

// maxListedUnits bounds the size of any enumerated response.
const maxListedUnits = 100_000

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    timeunit.PeriodStore
	FiscalQ1 timeunit.QuarterNumber

	validate *validator.Validate
}

// NewHandler creates a new handler. fiscalQ1 is the default first fiscal
// quarter used by /api/units/convert.
func NewHandler(store timeunit.PeriodStore, fiscalQ1 timeunit.QuarterNumber) *Handler {
	v := validator.New()
	// Report JSON field names in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{
		Store:    store,
		FiscalQ1: fiscalQ1,
		validate: v,
	}
}

// =============================================================================
// UNIT HANDLERS
// =============================================================================

// ParseUnit decodes a unit and returns its decomposed form.
func (h *Handler) ParseUnit(w http.ResponseWriter, r *http.Request) {
	var req ParseUnitRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := parseUnit(req.Value, req.As)
	if err != nil {
		writeDomainError(w, "Invalid unit", err)
		return
	}
	writeJSON(w, http.StatusOK, toUnitDTO(u))
}

// PlusUnit shifts a unit by n units of its own granularity, or of the
// requested coarser granularity.
func (h *Handler) PlusUnit(w http.ResponseWriter, r *http.Request) {
	var req PlusRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := parseUnit(req.Unit, "")
	if err != nil {
		writeDomainError(w, "Invalid unit", err)
		return
	}

	var shifted timeunit.UnitOfTime
	if req.Granularity == "" {
		shifted, err = timeunit.Plus(u, req.N)
	} else {
		var g timeunit.Granularity
		if g, err = timeunit.ParseGranularity(req.Granularity); err == nil {
			shifted, err = timeunit.PlusAt(u, req.N, g)
		}
	}
	if err != nil {
		writeDomainError(w, "Cannot shift unit", err)
		return
	}
	writeJSON(w, http.StatusOK, toUnitDTO(shifted))
}

// ConvertQuarter maps a calendar quarter to its fiscal quarter and back.
func (h *Handler) ConvertQuarter(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := parseUnit(req.Unit, "")
	if err != nil {
		writeDomainError(w, "Invalid unit", err)
		return
	}
	firstQuarter := h.FiscalQ1
	if req.FirstFiscalQuarter != 0 {
		firstQuarter = timeunit.QuarterNumber(req.FirstFiscalQuarter)
	}

	var converted timeunit.UnitOfTime
	switch q := u.(type) {
	case timeunit.CalendarQuarter:
		converted, err = timeunit.ToFiscalQuarter(q, firstQuarter)
	case timeunit.FiscalQuarter:
		converted, err = timeunit.ToCalendarQuarter(q, firstQuarter)
	default:
		err = fmt.Errorf("%w: only calendar and fiscal quarters convert, got %s", timeunit.ErrUnsupported, u)
	}
	if err != nil {
		writeDomainError(w, "Cannot convert unit", err)
		return
	}
	writeJSON(w, http.StatusOK, toUnitDTO(converted))
}

// UnitsToDate lists the units of the unit's variant from the start of its
// year through the unit itself.
func (h *Handler) UnitsToDate(w http.ResponseWriter, r *http.Request) {
	var req UnitRequest
	if !h.decode(w, r, &req) {
		return
	}

	u, err := parseUnit(req.Unit, "")
	if err != nil {
		writeDomainError(w, "Invalid unit", err)
		return
	}
	units, err := timeunit.UnitsToDate(u)
	if err != nil {
		writeDomainError(w, "Cannot list units to date", err)
		return
	}
	writeJSON(w, http.StatusOK, UnitListResponse{Units: toUnitDTOs(units), Count: len(units)})
}

// =============================================================================
// PERIOD HANDLERS
// =============================================================================

// ParsePeriod decodes a period in plain or rpi(...) form.
func (h *Handler) ParsePeriod(w http.ResponseWriter, r *http.Request) {
	var req ParsePeriodRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := parsePeriod(req.Value, req.As)
	if err != nil {
		writeDomainError(w, "Invalid period", err)
		return
	}
	writeJSON(w, http.StatusOK, toPeriodDTO(p))
}

// ContainsUnit reports whether a unit lies inside a period.
func (h *Handler) ContainsUnit(w http.ResponseWriter, r *http.Request) {
	var req ContainsRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := parsePeriod(req.Period, "")
	if err != nil {
		writeDomainError(w, "Invalid period", err)
		return
	}
	u, err := parseUnit(req.Unit, "")
	if err != nil {
		writeDomainError(w, "Invalid unit", err)
		return
	}
	in, err := timeunit.IsInReportingPeriod(u, p)
	if err != nil {
		writeDomainError(w, "Cannot compare unit and period", err)
		return
	}
	writeJSON(w, http.StatusOK, ContainsResponse{Contains: in})
}

// Overlap reports whether two periods share a unit, and how much of A
// lies in B when A is bounded.
func (h *Handler) Overlap(w http.ResponseWriter, r *http.Request) {
	var req OverlapRequest
	if !h.decode(w, r, &req) {
		return
	}

	a, err := parsePeriod(req.A, "")
	if err != nil {
		writeDomainError(w, "Invalid period a", err)
		return
	}
	b, err := parsePeriod(req.B, "")
	if err != nil {
		writeDomainError(w, "Invalid period b", err)
		return
	}

	overlaps, err := timeunit.HasOverlapWith(a, b)
	if err != nil {
		writeDomainError(w, "Cannot compare periods", err)
		return
	}
	resp := OverlapResponse{Overlaps: overlaps}
	if a.IsBounded() {
		fraction, err := timeunit.OverlapFraction(a, b)
		if err != nil {
			writeDomainError(w, "Cannot compare periods", err)
			return
		}
		s := fraction.String()
		resp.Fraction = &s
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListUnits enumerates every unit of a bounded period in order.
func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	var req PeriodRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := parsePeriod(req.Period, "bounded")
	if err != nil {
		writeDomainError(w, "Invalid period", err)
		return
	}
	if err := checkListSize(p, 1); err != nil {
		writeDomainError(w, "Period too large", err)
		return
	}
	seq, err := p.Units()
	if err != nil {
		writeDomainError(w, "Cannot list units", err)
		return
	}
	units := slices.Collect(seq)
	writeJSON(w, http.StatusOK, UnitListResponse{Units: toUnitDTOs(units), Count: len(units)})
}

// ListPermutations returns every contiguous sub-period of at most
// max_units units, or the period itself when it is already small enough.
func (h *Handler) ListPermutations(w http.ResponseWriter, r *http.Request) {
	var req PermutationsRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := parsePeriod(req.Period, "bounded")
	if err != nil {
		writeDomainError(w, "Invalid period", err)
		return
	}
	if err := checkListSize(p, req.MaxUnits); err != nil {
		writeDomainError(w, "Period too large", err)
		return
	}
	perms, err := p.Permutations(req.MaxUnits)
	if err != nil {
		writeDomainError(w, "Cannot list permutations", err)
		return
	}

	dtos := make([]PeriodDTO, 0, len(perms))
	for _, perm := range perms {
		dtos = append(dtos, toPeriodDTO(perm))
	}
	writeJSON(w, http.StatusOK, PeriodListResponse{Periods: dtos, Count: len(dtos)})
}

// Allocate splits an amount across the units of a bounded period.
func (h *Handler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req AllocateRequest
	if !h.decode(w, r, &req) {
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	weighting, err := allocation.ParseWeighting(req.Weighting)
	if err != nil {
		writeDomainError(w, "Invalid weighting", err)
		return
	}
	p, err := parsePeriod(req.Period, "bounded")
	if err != nil {
		writeDomainError(w, "Invalid period", err)
		return
	}
	if err := checkListSize(p, 1); err != nil {
		writeDomainError(w, "Period too large", err)
		return
	}

	shares, err := allocation.Allocate(amount, req.Places, p, weighting)
	if err != nil {
		writeDomainError(w, "Cannot allocate amount", err)
		return
	}
	writeJSON(w, http.StatusOK, AllocationResponse{
		Shares: toShareDTOs(shares, req.Places),
		Total:  allocation.Total(shares).StringFixed(req.Places),
	})
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

// ListNamedPeriods returns every named period ordered by name.
func (h *Handler) ListNamedPeriods(w http.ResponseWriter, r *http.Request) {
	nps, err := h.Store.List(r.Context())
	if err != nil {
		writeDomainError(w, "Failed to list named periods", err)
		return
	}
	writeJSON(w, http.StatusOK, toNamedPeriodDTOs(nps))
}

// CreateNamedPeriod saves a period under a unique name.
func (h *Handler) CreateNamedPeriod(w http.ResponseWriter, r *http.Request) {
	var req CreateNamedPeriodRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := parsePeriod(req.Period, "")
	if err != nil {
		writeDomainError(w, "Invalid period", err)
		return
	}
	saved, err := h.Store.Save(r.Context(), timeunit.NamedPeriod{Name: strings.TrimSpace(req.Name), Period: p})
	if err != nil {
		writeDomainError(w, "Failed to save named period", err)
		return
	}
	writeJSON(w, http.StatusCreated, toNamedPeriodDTO(saved))
}

// GetNamedPeriod returns one named period by ID.
func (h *Handler) GetNamedPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	np, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Named period not found", err)
		return
	}
	writeJSON(w, http.StatusOK, toNamedPeriodDTO(np))
}

// DeleteNamedPeriod removes a named period.
func (h *Handler) DeleteNamedPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.Delete(r.Context(), id); err != nil {
		writeDomainError(w, "Failed to delete named period", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FindOverlapping returns the named periods that overlap ?period=.
func (h *Handler) FindOverlapping(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("period")
	if strings.TrimSpace(raw) == "" {
		writeError(w, http.StatusBadRequest, "Missing period query parameter", nil)
		return
	}

	p, err := parsePeriod(raw, "")
	if err != nil {
		writeDomainError(w, "Invalid period", err)
		return
	}
	nps, err := h.Store.FindOverlapping(r.Context(), p)
	if err != nil {
		writeDomainError(w, "Failed to search named periods", err)
		return
	}
	writeJSON(w, http.StatusOK, toNamedPeriodDTOs(nps))
}

// =============================================================================
// HELPERS
// =============================================================================

// decode reads the JSON body into dst and validates it. On failure the
// error response has been written and false is returned.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return false
		}
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = fe.Tag()
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Code:    "validation_failed",
			Details: fields,
		})
		return false
	}
	return true
}

// parseUnit accepts the plain or sortable form, restricted to the named
// grouping ("" accepts any unit).
func parseUnit(s, as string) (timeunit.UnitOfTime, error) {
	g, err := timeunit.ParseGrouping(as)
	if err != nil {
		return nil, err
	}
	return timeunit.ParseUnitAs(strings.TrimSpace(s), g)
}

// parsePeriod accepts "start,end" or "rpi(start,end)" and normalizes both
// to a reporting period.
func parsePeriod(s, as string) (timeunit.ReportingPeriod[timeunit.UnitOfTime], error) {
	g, err := timeunit.ParseGrouping(as)
	if err != nil {
		return timeunit.ReportingPeriod[timeunit.UnitOfTime]{}, err
	}
	p, err := timeunit.ParseAnyPeriodAs(strings.TrimSpace(s), g)
	if err != nil {
		return timeunit.ReportingPeriod[timeunit.UnitOfTime]{}, err
	}
	start, end := p.Bounds()
	return timeunit.NewReportingPeriod(start, end)
}

func checkListSize(p timeunit.Period, perUnit int) error {
	n, err := timeunit.NumberOfUnitsWithin(p)
	if err != nil {
		return err
	}
	// A cap covering the whole period yields the period itself.
	if perUnit >= n {
		return nil
	}
	if n > maxListedUnits/perUnit {
		return fmt.Errorf("%w: %d units with max %d exceeds the listing limit of %d",
			timeunit.ErrOutOfRange, n, perUnit, maxListedUnits)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError picks the status and code from the error's sentinel.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, timeunit.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, timeunit.ErrDuplicateName):
		status = http.StatusConflict
	case timeunit.IsClientError(err):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, ErrorResponse{Error: message, Code: errorCode(err), Details: err.Error()})
}

var errorCodes = []struct {
	err  error
	code string
}{
	{timeunit.ErrBlankInput, "blank_input"},
	{timeunit.ErrUnrecognizedFormat, "unrecognized_format"},
	{timeunit.ErrWrongTokenCount, "wrong_token_count"},
	{timeunit.ErrMalformedField, "malformed_field"},
	{timeunit.ErrIncompatibleType, "incompatible_type"},
	{timeunit.ErrTypeMismatch, "type_mismatch"},
	{timeunit.ErrKindMismatch, "kind_mismatch"},
	{timeunit.ErrStartAfterEnd, "start_after_end"},
	{timeunit.ErrUnsupported, "unsupported"},
	{timeunit.ErrOutOfRange, "out_of_range"},
	{timeunit.ErrInvalidArgument, "invalid_argument"},
	{timeunit.ErrNotFound, "not_found"},
	{timeunit.ErrDuplicateName, "duplicate_name"},
}

func errorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}
