package config

import "fmt"

// Selectors maps the structural slots of a listing page to CSS selectors.
// The table is configuration, not code: a markup change on the source site
// means editing this table, never the engine.
type Selectors struct {
	ListContainer string
	Item          string
	Name          string
	Party         string
	District      string
	Phone         string
	Email         string
	Office        string
	Career        string
	DetailLink    string // optional; empty disables detail follows
}

// DefaultSelectors returns the selector table for the NEC listing page.
func DefaultSelectors() Selectors {
	return Selectors{
		ListContainer: "div.candidate_list",
		Item:          "div.candidate_item",
		Name:          ".name",
		Party:         ".party",
		District:      ".district",
		Phone:         ".contact .phone",
		Email:         ".contact .email",
		Office:        ".contact .office",
		Career:        ".career",
		DetailLink:    "a.detail_link",
	}
}

// Validate ensures the required selector slots are filled. DetailLink is the
// only optional slot.
func (s Selectors) Validate() error {
	required := []struct {
		slot  string
		value string
	}{
		{"list container", s.ListContainer},
		{"item", s.Item},
		{"name", s.Name},
		{"party", s.Party},
		{"district", s.District},
		{"phone", s.Phone},
		{"email", s.Email},
		{"office", s.Office},
		{"career", s.Career},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s selector cannot be empty", r.slot)
		}
	}
	return nil
}
