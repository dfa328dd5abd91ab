package core

// ArtworkStatus 是作品在目录中的状态。
type ArtworkStatus string

const (
	ArtworkDraft    ArtworkStatus = "draft"
	ArtworkActive   ArtworkStatus = "active"
	ArtworkSold     ArtworkStatus = "sold"
	ArtworkInactive ArtworkStatus = "inactive"
)

// Artwork 是作品目录中的一条记录，由外部目录服务提供。
// PriceRange 由目录预先分档；PopularityScore 是目录侧计算好的热度分。
type Artwork struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	ArtistID        int64         `json:"artist_id"`
	ArtistName      string        `json:"artist_name"`
	Category        string        `json:"category"`
	Price           float64       `json:"price"`
	PriceRange      PriceRange    `json:"price_range"`
	ImageURL        string        `json:"image_url"`
	PopularityScore float64       `json:"popularity_score"`
	Status          ArtworkStatus `json:"status,omitempty"`
}

// Available 表示作品可售（状态为空视为 active）。
func (a *Artwork) Available() bool {
	if a == nil {
		return false
	}
	return a.Status == "" || a.Status == ArtworkActive
}
