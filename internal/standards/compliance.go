package standards

import (
	"log/slog"

	"github.com/luxaudit/luxaudit/constants"
)

// complianceParams fixes the evaluation order so results are deterministic.
var complianceParams = []string{
	"illuminance",
	"uniformity",
	"ugr",
	"power_density",
	"color_temperature",
	"cri",
}

// Checker evaluates extracted values against a standard's requirement table.
type Checker struct {
	db  *Database
	log *slog.Logger
}

func NewChecker(db *Database, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{db: db, log: logger}
}

// Check compares actual values against the requirements for the given room
// type under the given standard. An unknown standard yields an empty list.
// When the room type has no bucket in the standard, the office bucket is
// used instead; if that is also absent the result is empty.
//
// Deviation is signed toward the shortfall: required-actual for minimums,
// actual-required for maximums, so a positive deviation means the check
// failed by that amount.
func (c *Checker) Check(values map[string]float64, roomType constants.RoomType, standard StandardType) []ComplianceResult {
	results := []ComplianceResult{}

	entry, ok := c.db.Lookup(standard)
	if !ok {
		c.log.Warn("unknown standard", slog.String("standard", string(standard)))
		return results
	}

	reqs, ok := entry.Requirements[string(roomType)]
	if !ok {
		reqs, ok = entry.Requirements[string(constants.Office)]
		if !ok {
			c.log.Warn("no requirements for room type",
				slog.String("standard", string(standard)),
				slog.String("room_type", string(roomType)))
			return results
		}
	}

	for _, param := range complianceParams {
		actual, present := values[param]
		if !present {
			continue
		}

		if required, exists := reqs[param+"_minimum"]; exists {
			pct := 0.0
			if required > 0 {
				pct = actual / required * 100
			}
			results = append(results, ComplianceResult{
				Parameter:            param,
				RequiredValue:        required,
				ActualValue:          actual,
				Unit:                 ParameterUnit(param),
				IsCompliant:          actual >= required,
				CompliancePercentage: pct,
				Deviation:            required - actual,
				RoomType:             roomType,
				Standard:             standard,
				Notes:                "Minimum requirement check",
			})
		}

		if required, exists := reqs[param+"_maximum"]; exists {
			pct := 0.0
			if actual > 0 {
				pct = required / actual * 100
			}
			results = append(results, ComplianceResult{
				Parameter:            param,
				RequiredValue:        required,
				ActualValue:          actual,
				Unit:                 ParameterUnit(param),
				IsCompliant:          actual <= required,
				CompliancePercentage: pct,
				Deviation:            actual - required,
				RoomType:             roomType,
				Standard:             standard,
				Notes:                "Maximum requirement check",
			})
		}
	}

	return results
}
