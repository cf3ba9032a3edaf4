package structs

// Label is the visual tag shown on a product card. The stored value is the
// short code; Display returns the storefront string.
type Label string

const (
	LabelNone        Label = "NONE"
	LabelBlackFriday Label = "BF"
	LabelOffer       Label = "OF"
	LabelLiquidation Label = "LQ"
	LabelNew         Label = "NW"
)

func (l Label) Valid() bool {
	switch l {
	case LabelNone, LabelBlackFriday, LabelOffer, LabelLiquidation, LabelNew:
		return true
	}
	return false
}

func (l Label) Display() string {
	switch l {
	case LabelBlackFriday:
		return "Black Friday"
	case LabelOffer:
		return "Oferta"
	case LabelLiquidation:
		return "Liquidación"
	case LabelNew:
		return "Nuevo"
	default:
		return ""
	}
}

// ProductListOptions narrows a catalog listing. Listings only ever return
// active products; these filters narrow further.
type ProductListOptions struct {
	Search     string `json:"search,omitempty"`
	CategoryID *int64 `json:"category,omitempty"`
}
