package dispatch

// SupplyType identifies one of the container supply categories tracked per store.
type SupplyType string

const (
	SupplySleeves   SupplyType = "sleeves"
	SupplyCaps      SupplyType = "caps"
	SupplyCanvases  SupplyType = "canvases"
	SupplyTotes     SupplyType = "totes"
	SupplyHardlines SupplyType = "hardlines"
	SupplySoftlines SupplyType = "softlines"
)

// SupplyTypes lists all supply categories in canonical order.
func SupplyTypes() []SupplyType {
	return []SupplyType{
		SupplySleeves,
		SupplyCaps,
		SupplyCanvases,
		SupplyTotes,
		SupplyHardlines,
		SupplySoftlines,
	}
}

// SupplyQuantities holds one signed count per supply category.
// Quantities are signed on purpose: deficit math can go negative when a
// store has counted more containers than its par level calls for.
type SupplyQuantities struct {
	Sleeves   int `json:"sleeves"`
	Caps      int `json:"caps"`
	Canvases  int `json:"canvases"`
	Totes     int `json:"totes"`
	Hardlines int `json:"hardlines"`
	Softlines int `json:"softlines"`
}

// Add returns the component-wise sum of q and other.
func (q SupplyQuantities) Add(other SupplyQuantities) SupplyQuantities {
	return SupplyQuantities{
		Sleeves:   q.Sleeves + other.Sleeves,
		Caps:      q.Caps + other.Caps,
		Canvases:  q.Canvases + other.Canvases,
		Totes:     q.Totes + other.Totes,
		Hardlines: q.Hardlines + other.Hardlines,
		Softlines: q.Softlines + other.Softlines,
	}
}

// Sub returns the component-wise difference q minus other.
func (q SupplyQuantities) Sub(other SupplyQuantities) SupplyQuantities {
	return SupplyQuantities{
		Sleeves:   q.Sleeves - other.Sleeves,
		Caps:      q.Caps - other.Caps,
		Canvases:  q.Canvases - other.Canvases,
		Totes:     q.Totes - other.Totes,
		Hardlines: q.Hardlines - other.Hardlines,
		Softlines: q.Softlines - other.Softlines,
	}
}

// IsZero reports whether every component is zero.
func (q SupplyQuantities) IsZero() bool {
	return q == SupplyQuantities{}
}
