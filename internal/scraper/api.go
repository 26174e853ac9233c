package scraper

const (
	SchemaVersion    = 1
	NumSides         = 2
	NumHeaders       = 8
	WarStatusHeading = "War status"
	TableClass       = "msg_body warlords"
)

// Record maps a lower-cased column header to the cell value for one character.
type Record map[string]string

type Side struct {
	Characters  []Record `json:"characters"`
	Description string   `json:"description"`
}

// Document is the normalized war status report. Field order matches the
// sorted key order of the persisted file.
type Document struct {
	Generated          string `json:"generated"`
	GeneratedTimestamp int64  `json:"generated_timestamp"`
	SchemaVersion      int    `json:"schema_version"`
	WarStatus          string `json:"war_status"`
	Warlords           []Side `json:"warlords"`
}

// Element is the subset of an HTML tree the extractor relies on.
type Element interface {
	Tag() string
	Text() string
	Attr(name string) (string, bool)
	// Find returns the first descendant with the given tag for which match
	// returns true. A nil match accepts any element.
	Find(tag string, match func(Element) bool) (Element, bool)
	FindAll(tag string) []Element
	// NextSibling returns the first following sibling with the given tag.
	NextSibling(tag string) (Element, bool)
}
