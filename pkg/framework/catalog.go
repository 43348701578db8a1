package framework

import (
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// FilterCatalog returns the items whose id is in activeIDs, keeping catalog
// order. An empty activeIDs selects every item. The result never aliases catalog.
func FilterCatalog(catalog Catalog, activeIDs map[int]struct{}) Catalog {
	if len(activeIDs) == 0 {
		out := make(Catalog, len(catalog))
		copy(out, catalog)
		return out
	}

	out := make(Catalog, 0, len(catalog))
	for _, it := range catalog {
		if _, ok := activeIDs[it.ID]; ok {
			out = append(out, it)
		}
	}
	return out
}

// IDSet builds the active-id set consumed by FilterCatalog
func IDSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Aggregate sums area, gain and quantity of ind over catalog.
func Aggregate(ind Individual, catalog Catalog) (area, gain float64, quantity int) {
	for i, q := range ind {
		area += float64(q) * catalog[i].Area
		gain += float64(q) * catalog[i].Gain
		quantity += q
	}
	return area, gain, quantity
}

// TotalArea is the area ind occupies on the shelf
func TotalArea(ind Individual, catalog Catalog) float64 {
	area, _, _ := Aggregate(ind, catalog)
	return area
}

// Validate rejects items the operators cannot handle: negative stock, and
// negative or non-finite area or gain.
func (c Catalog) Validate() error {
	var errs field.ErrorList
	root := field.NewPath("catalog")

	for i, it := range c {
		p := root.Index(i)
		if it.Stock < 0 {
			errs = append(errs, field.Invalid(p.Child("stock"), it.Stock, "must not be negative"))
		}
		if it.Area < 0 || math.IsNaN(it.Area) || math.IsInf(it.Area, 0) {
			errs = append(errs, field.Invalid(p.Child("area"), it.Area, "must be a finite number not below 0"))
		}
		if math.IsNaN(it.Gain) || math.IsInf(it.Gain, 0) {
			errs = append(errs, field.Invalid(p.Child("gain"), it.Gain, "must be a finite number"))
		}
	}
	return errs.ToAggregate()
}
