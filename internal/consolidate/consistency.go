package consolidate

import (
	"fmt"
	"strings"

	"github.com/pkarpov/claimsift/internal/model"
)

// keyField is one of the fields compared across sub-reports for the
// mechanical consistency score.
type keyField struct {
	Name  string
	Value func(model.IncidentSubReport) string
}

var keyFields = []keyField{
	{"incident dates", func(r model.IncidentSubReport) string { return r.IncidentDate }},
	{"locations", func(r model.IncidentSubReport) string { return r.Location }},
	{"fault determinations", func(r model.IncidentSubReport) string { return r.FaultDetermination }},
}

// Consistency computes the categorical agreement score across sub-reports.
// It compares the set of distinct non-empty values per key field and never
// depends on the text-analysis service. A single report yields the
// not-applicable label rather than a forced score.
func Consistency(reports []model.IncidentSubReport) string {
	if len(reports) < 2 {
		return model.ConsistencySingle
	}

	var disagreeing []string
	for _, kf := range keyFields {
		distinct := make(map[string]struct{})
		for _, r := range reports {
			if v := strings.TrimSpace(kf.Value(r)); v != "" {
				distinct[v] = struct{}{}
			}
		}
		if len(distinct) > 1 {
			disagreeing = append(disagreeing, kf.Name)
		}
	}

	switch {
	case len(disagreeing) == 0:
		return model.ConsistencyHigh + " - All key fields are consistent"
	case len(disagreeing) <= 2:
		return fmt.Sprintf("%s - Some inconsistencies in: %s", model.ConsistencyMedium, strings.Join(disagreeing, ", "))
	default:
		return fmt.Sprintf("%s - Multiple inconsistencies in: %s", model.ConsistencyLow, strings.Join(disagreeing, ", "))
	}
}
