/*
dto.go - Data Transfer Objects for the HTTP API

PURPOSE:
  Defines the JSON structures for API requests and responses. Units and
  periods travel as strings in requests (plain or sortable form) and come
  back decomposed so clients never need to parse tokens themselves.

NAMING CONVENTION:
  - *DTO: Response objects (what API returns)
  - *Request: Request objects (what API accepts)
  - *Response: Wrapper responses with metadata

VALIDATION:
  Request structs carry go-playground/validator tags. Handlers call
  Handler.decode which runs the validator after JSON decoding, so a
  request that reaches domain code always has its required fields.

UNIT AND PERIOD INPUT:
  Units accept either form: "c-2017-Q3" or "cq-2017-3".
  Periods accept "start,end" in plain form or "rpi(start,end)" in sortable
  form. The optional "as" field names a grouping ("calendar",
  "fiscal-quarter", "bounded", ...) the decoded value must belong to.

SEE ALSO:
  - handlers.go: Uses these DTOs
  - timeunit/grouping.go: Grouping names accepted by "as"
*/
package api

import (
	"time"

	"github.com/warp/accounting-time/allocation"
	"github.com/warp/accounting-time/timeunit"
)

// =============================================================================
// UNIT DTOs
// =============================================================================

// UnitDTO is the decomposed form of a unit of time.
type UnitDTO struct {
	Kind        string `json:"kind"`
	Granularity string `json:"granularity"`
	Display     string `json:"display"`
	Sortable    string `json:"sortable,omitempty"` // empty for unbounded units
}

type ParseUnitRequest struct {
	Value string `json:"value" validate:"required"`
	As    string `json:"as"`
}

type PlusRequest struct {
	Unit        string `json:"unit" validate:"required"`
	N           int    `json:"n"`
	Granularity string `json:"granularity" validate:"omitempty,oneof=day month quarter year"`
}

type ConvertRequest struct {
	Unit               string `json:"unit" validate:"required"`
	FirstFiscalQuarter int    `json:"first_fiscal_quarter" validate:"omitempty,min=1,max=4"`
}

type UnitRequest struct {
	Unit string `json:"unit" validate:"required"`
}

// UnitListResponse wraps an ordered list of units.
type UnitListResponse struct {
	Units []UnitDTO `json:"units"`
	Count int       `json:"count"`
}

// =============================================================================
// PERIOD DTOs
// =============================================================================

// PeriodDTO is the decomposed form of a reporting period.
type PeriodDTO struct {
	Display     string  `json:"display"`
	Inclusive   string  `json:"inclusive,omitempty"` // rpi(...) form, bounded periods only
	Kind        string  `json:"kind"`
	Granularity string  `json:"granularity"`
	Start       UnitDTO `json:"start"`
	End         UnitDTO `json:"end"`
	Bounded     bool    `json:"bounded"`
	UnitCount   *int    `json:"unit_count,omitempty"`
}

type ParsePeriodRequest struct {
	Value string `json:"value" validate:"required"`
	As    string `json:"as"`
}

type ContainsRequest struct {
	Period string `json:"period" validate:"required"`
	Unit   string `json:"unit" validate:"required"`
}

type ContainsResponse struct {
	Contains bool `json:"contains"`
}

type OverlapRequest struct {
	A string `json:"a" validate:"required"`
	B string `json:"b" validate:"required"`
}

type OverlapResponse struct {
	Overlaps bool `json:"overlaps"`
	// Fraction of A's units that also lie in B. Omitted when A is open-ended.
	Fraction *string `json:"fraction,omitempty"`
}

type PeriodRequest struct {
	Period string `json:"period" validate:"required"`
}

type PermutationsRequest struct {
	Period   string `json:"period" validate:"required"`
	MaxUnits int    `json:"max_units" validate:"required,min=1"`
}

type PeriodListResponse struct {
	Periods []PeriodDTO `json:"periods"`
	Count   int         `json:"count"`
}

// =============================================================================
// ALLOCATION DTOs
// =============================================================================

type AllocateRequest struct {
	Period    string `json:"period" validate:"required"`
	Amount    string `json:"amount" validate:"required,numeric"`
	Places    int32  `json:"places" validate:"min=0,max=12"`
	Weighting string `json:"weighting" validate:"omitempty,oneof=even days"`
}

type ShareDTO struct {
	Unit   UnitDTO `json:"unit"`
	Amount string  `json:"amount"`
}

type AllocationResponse struct {
	Shares []ShareDTO `json:"shares"`
	Total  string     `json:"total"`
}

// =============================================================================
// CATALOG DTOs
// =============================================================================

type CreateNamedPeriodRequest struct {
	Name   string `json:"name" validate:"required,max=200"`
	Period string `json:"period" validate:"required"`
}

type NamedPeriodDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Period    PeriodDTO `json:"period"`
	CreatedAt string    `json:"created_at"`
}

// =============================================================================
// PRESET DTOs
// =============================================================================

// PresetDTO describes a preset catalog.
type PresetDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LoadPresetRequest struct {
	PresetID string `json:"preset_id" validate:"required"`
	Year     int    `json:"year" validate:"required,min=1,max=9999"`
}

type LoadPresetResponse struct {
	Preset  string           `json:"preset"`
	Created []NamedPeriodDTO `json:"created"`
	Skipped []string         `json:"skipped"` // names already in the catalog
}

// =============================================================================
// ERROR DTOs
// =============================================================================

// ErrorResponse is the standard error format.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toUnitDTO(u timeunit.UnitOfTime) UnitDTO {
	dto := UnitDTO{
		Kind:        u.Kind().String(),
		Granularity: u.Granularity().String(),
		Display:     u.String(),
	}
	if token, err := timeunit.FormatSortable(u); err == nil {
		dto.Sortable = token
	}
	return dto
}

func toUnitDTOs(units []timeunit.UnitOfTime) []UnitDTO {
	dtos := make([]UnitDTO, 0, len(units))
	for _, u := range units {
		dtos = append(dtos, toUnitDTO(u))
	}
	return dtos
}

func toPeriodDTO(p timeunit.ReportingPeriod[timeunit.UnitOfTime]) PeriodDTO {
	dto := PeriodDTO{
		Display:     p.String(),
		Kind:        p.Kind().String(),
		Granularity: p.Granularity().String(),
		Start:       toUnitDTO(p.Start()),
		End:         toUnitDTO(p.End()),
		Bounded:     p.IsBounded(),
	}
	if !dto.Bounded {
		return dto
	}
	if inclusive, err := p.ToInclusive(); err == nil {
		dto.Inclusive = inclusive.String()
	}
	if n, err := timeunit.NumberOfUnitsWithin(p); err == nil {
		dto.UnitCount = &n
	}
	return dto
}

func toNamedPeriodDTO(np timeunit.NamedPeriod) NamedPeriodDTO {
	return NamedPeriodDTO{
		ID:        np.ID,
		Name:      np.Name,
		Period:    toPeriodDTO(np.Period),
		CreatedAt: np.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toNamedPeriodDTOs(nps []timeunit.NamedPeriod) []NamedPeriodDTO {
	dtos := make([]NamedPeriodDTO, 0, len(nps))
	for _, np := range nps {
		dtos = append(dtos, toNamedPeriodDTO(np))
	}
	return dtos
}

func toShareDTOs(shares []allocation.Share, places int32) []ShareDTO {
	dtos := make([]ShareDTO, 0, len(shares))
	for _, s := range shares {
		dtos = append(dtos, ShareDTO{Unit: toUnitDTO(s.Unit), Amount: s.Amount.StringFixed(places)})
	}
	return dtos
}
