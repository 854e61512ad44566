package pollination

import "github.com/jengzang/pollinator-abundance/internal/models"

// ComposeDelta returns ROI - CA for every metric present in both summaries.
// A metric absent on either side is absent in the delta.
func ComposeDelta(ca, roi models.Summary) models.Summary {
	var delta models.Summary
	for _, m := range models.Metrics() {
		c, r := ca.Get(m), roi.Get(m)
		if !c.Valid || !r.Valid {
			continue
		}
		delta.Set(m, models.Some(r.Float-c.Float))
	}
	return delta
}
