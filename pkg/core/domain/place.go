package domain

import (
	"strings"
	"time"
)

// Place represents a tourist destination
type Place struct {
	ID               int64     `json:"id"`
	PlaceName        string    `json:"place_name"`
	PlaceLabel       []string  `json:"place_label"` // Handled as JSON text in SQLite
	PhoneNumber      string    `json:"phone_number"`
	VisitTime        string    `json:"visit_time"`
	OpenCloseHour    string    `json:"open_close_hour"`
	Address          string    `json:"address"`
	Description      string    `json:"description"`
	LikeNumber       int64     `json:"like_number"`
	Comment          string    `json:"comment,omitempty"`
	ViewNumber       int64     `json:"view_number"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	PlaceImageFolder string    `json:"place_image_folder"`
	PriceFrom        float64   `json:"price_from,omitempty"`
	PriceTo          float64   `json:"price_to,omitempty"`
	Ticket           string    `json:"ticket,omitempty"`
	Images           []string  `json:"images"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NormalizeLabels converts a label field into a clean list of label names.
//
// Contract: the stored value arrives either as a native list ([]string or
// []interface{} from JSON decoding) or as a legacy comma-joined string.
// List input passes through with each element trimmed; string input is split
// on "," with whitespace trimmed per element. Empty elements are dropped.
// Anything else yields nil.
func NormalizeLabels(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return cleanLabels(v)
	case []interface{}:
		labels := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				labels = append(labels, s)
			}
		}
		return cleanLabels(labels)
	case string:
		return cleanLabels(strings.Split(v, ","))
	default:
		return nil
	}
}

func cleanLabels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
