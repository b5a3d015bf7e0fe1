package domain

// Placeholder values applied when a museum record omits a text field.
const (
	UntitledTitle = "Untitled"
	UnknownArtist = "Unknown Artist"
)

// Artwork represents one normalized piece of art served to the overlay UI.
// It is immutable once constructed; containers store it by value.
//
// ID is namespaced by a source prefix (e.g. "met-12345") and the image is
// embedded as a self-describing data URI (mime + base64 payload) so the UI
// never touches the network.
type Artwork struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Date   string `json:"date"`
	Medium string `json:"medium"`
	Source string `json:"source"`
	Image  string `json:"image"`
}
