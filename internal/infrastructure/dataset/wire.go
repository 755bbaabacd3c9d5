package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// text decodes a JSON string, number, bool or null into a trimmed string.
// The datasets are exported from spreadsheets, so districts and days arrive
// as either numbers or strings.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if f, fErr := n.Float64(); fErr == nil && f == float64(int64(f)) {
			*t = text(strconv.FormatInt(int64(f), 10))
			return nil
		}
		*t = text(n.String())
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = text(strconv.FormatBool(b))
		return nil
	}
	return fmt.Errorf("unsupported value %s", string(data))
}

// flag decodes booleans that may be spelled as strings ("Yes", "true", "1").
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	var t text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	switch strings.ToLower(string(t)) {
	case "true", "yes", "y", "1", "passed":
		*f = true
	default:
		*f = false
	}
	return nil
}

type wireRepresentative struct {
	Office         text       `json:"Office"`
	Name           text       `json:"Rep_Name"`
	District       text       `json:"District"`
	Party          text       `json:"Party"`
	Counties       text       `json:"County(ies)"`
	Email          text       `json:"Email"`
	Webpage        text       `json:"Webpage"`
	LegislationURL text       `json:"Legislation_By_Representative"`
	ImageID        text       `json:"Img_ID"`
	ImageURL       text       `json:"Img_URL"`
	Bills          []wireBill `json:"Bills"`
}

type wireBill struct {
	Number text `json:"Bill_Number"`
	Passed flag `json:"Passed"`
}

type wireBillRecord struct {
	Sponsor          text `json:"Bill_Sponsor"`
	Number           text `json:"Bill_Number"`
	Title            text `json:"Bill_Title"`
	Description      text `json:"Description"`
	ProcessTag       text `json:"Process_Tag"`
	DayOfLegislature text `json:"Day_of_Legislature"`
	Read             text `json:"Read"`
	Date             text `json:"Date"`
	ImageURL         text `json:"Img_URL"`
	District         text `json:"District"`
	Counties         text `json:"County(ies)"`
	Office           text `json:"Office"`
	Webpage          text `json:"Webpage"`
}
