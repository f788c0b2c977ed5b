// internal/checklist/progress.go
package checklist

// ComputeProgress derives the integer completion percentage for an
// inspection. Progress measures completeness, not pass rate: a template item
// counts as completed merely by having a record in state, whatever its
// status, and a custom amenity counts when its Done flag is set.
//
//	total     = template items + custom amenities
//	completed = records present in state + amenities with Done
//	progress  = round(100 * completed / total), 0 when total is 0
func ComputeProgress(tmpl []Category, state State, amenities []CustomAmenity) int {
	total := CountItems(tmpl) + len(amenities)
	if total == 0 {
		return 0
	}
	completed := len(state)
	for _, a := range amenities {
		if a.Done {
			completed++
		}
	}
	// round half up
	return (100*completed + total/2) / total
}
