package domain

// Category is the fixed set of listing categories. The values are the
// exact strings persisted on item documents.
type Category string

const (
	CategoryConstruction Category = "Bouwgereedschap"
	CategoryKitchen      Category = "Keukenapparatuur"
	CategoryCleaning     Category = "Schoonmaakapparatuur"
	CategoryTransport    Category = "Transportbenodigdheden"
	CategoryGarden       Category = "Tuinbenodigdheden"
)

// CategoryAll is the browse-filter sentinel meaning no category
// restriction. It is never stored on an item.
const CategoryAll Category = "All Categories"

func Categories() []Category {
	return []Category{
		CategoryConstruction,
		CategoryKitchen,
		CategoryCleaning,
		CategoryTransport,
		CategoryGarden,
	}
}

func ValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Item is a rentable listing. The coordinate is snapshotted from the
// owner's profile when the item is created and never updated; there is
// no edit or delete path for items.
type Item struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Currency    string   `json:"currency"`
	Category    Category `json:"category"`
	ImageURL    string   `json:"image_url,omitempty"`
	Latitude    string   `json:"latitude"`
	Longitude   string   `json:"longitude"`
	CreatedOn   string   `json:"created_on"`
}

// Coordinate parses the item's stored position. Items created before
// the owner had a location resolve to ErrNoCoordinate.
func (i *Item) Coordinate() (Coordinate, error) {
	return ParseCoordinate(i.Latitude, i.Longitude)
}
