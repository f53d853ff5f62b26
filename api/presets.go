/*
presets.go - Preset catalogs of named reporting periods

PURPOSE:
  Provides pre-built sets of named periods so a fresh catalog is useful
  straight away and demos have realistic data. Each preset is generated
  for a year chosen by the caller.

AVAILABLE PRESETS:
  calendar-year:    CY<year>, its halves and its four quarters
  fiscal-year:      FY<year>, its halves and quarters in fiscal units, plus
                    the same year expressed in calendar quarters
  trailing-twelve:  TTM ending in each calendar quarter of the year, in months

HOW PRESETS WORK:
  1. Build the periods for the requested year
  2. Save each one to the catalog
  3. Names that already exist are skipped, not overwritten

USAGE VIA API:
  GET  /api/presets
  POST /api/presets/load
  {"preset_id": "fiscal-year", "year": 2018}

ADDING NEW PRESETS:
  1. Add to 'presets' slice with ID, name, description
  2. Create builder function: buildXxxPreset(year, fiscalQ1)
  3. Add case to presetBuilder

SEE ALSO:
  - handlers.go: Catalog handlers
  - timeunit/conversion.go: Fiscal <-> calendar quarters
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/accounting-time/timeunit"
)

// =============================================================================
// PRESET DEFINITIONS
// =============================================================================

var presets = []PresetDTO{
	{
		ID:          "calendar-year",
		Name:        "Calendar Year",
		Description: "The calendar year with its halves and quarters",
	},
	{
		ID:          "fiscal-year",
		Name:        "Fiscal Year",
		Description: "The fiscal year with its halves and quarters, and its calendar-quarter equivalent",
	},
	{
		ID:          "trailing-twelve",
		Name:        "Trailing Twelve Months",
		Description: "Twelve-month windows ending in each calendar quarter of the year",
	},
}

// ListPresets returns available presets.
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presets)
}

// LoadPreset saves a preset's periods to the catalog.
func (h *Handler) LoadPreset(w http.ResponseWriter, r *http.Request) {
	var req LoadPresetRequest
	if !h.decode(w, r, &req) {
		return
	}

	build, ok := presetBuilder(req.PresetID)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown preset", nil)
		return
	}
	nps, err := build(req.Year, h.FiscalQ1)
	if err != nil {
		writeDomainError(w, "Failed to build preset", err)
		return
	}

	resp, err := h.savePreset(r.Context(), req.PresetID, nps)
	if err != nil {
		writeDomainError(w, fmt.Sprintf("Failed to load preset: %v", err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) savePreset(ctx context.Context, id string, nps []timeunit.NamedPeriod) (LoadPresetResponse, error) {
	resp := LoadPresetResponse{
		Preset:  id,
		Created: []NamedPeriodDTO{},
		Skipped: []string{},
	}
	for _, np := range nps {
		saved, err := h.Store.Save(ctx, np)
		if errors.Is(err, timeunit.ErrDuplicateName) {
			resp.Skipped = append(resp.Skipped, np.Name)
			continue
		}
		if err != nil {
			return resp, err
		}
		resp.Created = append(resp.Created, toNamedPeriodDTO(saved))
	}
	return resp, nil
}

// =============================================================================
// PRESET BUILDERS
// =============================================================================

type presetFunc func(year int, fiscalQ1 timeunit.QuarterNumber) ([]timeunit.NamedPeriod, error)

func presetBuilder(id string) (presetFunc, bool) {
	switch id {
	case "calendar-year":
		return buildCalendarYearPreset, true
	case "fiscal-year":
		return buildFiscalYearPreset, true
	case "trailing-twelve":
		return buildTrailingTwelvePreset, true
	default:
		return nil, false
	}
}

// presetPeriods collects named periods, stopping at the first error.
type presetPeriods struct {
	nps []timeunit.NamedPeriod
	err error
}

func (pp *presetPeriods) add(name string, start, end timeunit.UnitOfTime) {
	if pp.err != nil {
		return
	}
	p, err := timeunit.NewReportingPeriod(start, end)
	if err != nil {
		pp.err = fmt.Errorf("%s: %w", name, err)
		return
	}
	pp.nps = append(pp.nps, timeunit.NamedPeriod{Name: name, Period: p})
}

func (pp *presetPeriods) result() ([]timeunit.NamedPeriod, error) {
	return pp.nps, pp.err
}

func calendarQuarters(year int) ([4]timeunit.CalendarQuarter, error) {
	var qs [4]timeunit.CalendarQuarter
	for i := range qs {
		q, err := timeunit.NewCalendarQuarter(year, timeunit.QuarterNumber(i+1))
		if err != nil {
			return qs, err
		}
		qs[i] = q
	}
	return qs, nil
}

func buildCalendarYearPreset(year int, _ timeunit.QuarterNumber) ([]timeunit.NamedPeriod, error) {
	qs, err := calendarQuarters(year)
	if err != nil {
		return nil, err
	}

	var pp presetPeriods
	pp.add(fmt.Sprintf("CY%d", year), qs[0], qs[3])
	pp.add(fmt.Sprintf("CY%d H1", year), qs[0], qs[1])
	pp.add(fmt.Sprintf("CY%d H2", year), qs[2], qs[3])
	for _, q := range qs {
		pp.add(fmt.Sprintf("CY%d %s", year, q.Quarter()), q, q)
	}
	return pp.result()
}

func buildFiscalYearPreset(year int, fiscalQ1 timeunit.QuarterNumber) ([]timeunit.NamedPeriod, error) {
	var qs [4]timeunit.FiscalQuarter
	for i := range qs {
		q, err := timeunit.NewFiscalQuarter(year, timeunit.QuarterNumber(i+1))
		if err != nil {
			return nil, err
		}
		qs[i] = q
	}
	first, err := timeunit.ToCalendarQuarter(qs[0], fiscalQ1)
	if err != nil {
		return nil, err
	}
	last, err := timeunit.ToCalendarQuarter(qs[3], fiscalQ1)
	if err != nil {
		return nil, err
	}

	var pp presetPeriods
	pp.add(fmt.Sprintf("FY%d", year), qs[0], qs[3])
	pp.add(fmt.Sprintf("FY%d H1", year), qs[0], qs[1])
	pp.add(fmt.Sprintf("FY%d H2", year), qs[2], qs[3])
	for _, q := range qs {
		pp.add(fmt.Sprintf("FY%d %s", year, q.Quarter()), q, q)
	}
	pp.add(fmt.Sprintf("FY%d (calendar)", year), first, last)
	return pp.result()
}

func buildTrailingTwelvePreset(year int, _ timeunit.QuarterNumber) ([]timeunit.NamedPeriod, error) {
	qs, err := calendarQuarters(year)
	if err != nil {
		return nil, err
	}

	var pp presetPeriods
	for _, q := range qs {
		end, err := timeunit.NewCalendarMonth(year, time.Month(int(q.Quarter())*3))
		if err != nil {
			return nil, err
		}
		start, err := end.Plus(-11)
		if err != nil {
			return nil, err
		}
		pp.add(fmt.Sprintf("TTM %d %s", year, q.Quarter()), start, end)
	}
	return pp.result()
}
