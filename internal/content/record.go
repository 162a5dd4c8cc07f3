// Package content loads faction records from lenient JSON files.
//
// One file per slug lives in the content directory as <slug>.json. The files
// are hand edited, so the loader accepts a UTF-8 byte-order mark, // and /* */
// comments and trailing commas before a closing bracket. Anything else that is
// not JSON (single quotes, raw control characters) is reported as a parse
// error for that slug.
package content

// Item is one gallery entry: a player or a master.
type Item struct {
	Name  string `json:"name"`
	Owner string `json:"owner,omitempty"`
	Text  string `json:"text,omitempty"`
	Image string `json:"image"`
}

// FactionRecord is the decoded content of one <slug>.json file.
type FactionRecord struct {
	Slug    string `json:"-"`
	Name    string `json:"name"`
	Icon    string `json:"icon,omitempty"`
	Text    string `json:"text,omitempty"`
	Players []Item `json:"players"`
	Masters []Item `json:"masters"`
}

// Entries returns players followed by masters, each in input order.
func (r *FactionRecord) Entries() []Item {
	out := make([]Item, 0, len(r.Players)+len(r.Masters))
	out = append(out, r.Players...)
	return append(out, r.Masters...)
}
