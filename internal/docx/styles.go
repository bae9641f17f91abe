package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

type valAttr struct {
	Val string `xml:"val,attr"`
}

type numPrXML struct {
	ILvl  *valAttr `xml:"ilvl"`
	NumID *valAttr `xml:"numId"`
}

type stylesXML struct {
	Styles []struct {
		Type    string  `xml:"type,attr"`
		ID      string  `xml:"styleId,attr"`
		Default string  `xml:"default,attr"`
		Name    valAttr `xml:"name"`
		PPr     struct {
			NumPr *numPrXML `xml:"numPr"`
		} `xml:"pPr"`
	} `xml:"style"`
}

type styleTable struct {
	names     map[string]string
	nums      map[string]*numRef
	defaultID string
}

func parseStyles(data []byte) (styleTable, error) {
	var sx stylesXML
	if err := xml.Unmarshal(data, &sx); err != nil {
		return styleTable{}, err
	}

	st := styleTable{
		names: make(map[string]string, len(sx.Styles)),
		nums:  make(map[string]*numRef),
	}
	for _, s := range sx.Styles {
		if s.Type != "" && s.Type != "paragraph" {
			continue
		}
		st.names[s.ID] = uiStyleName(s.Name.Val)
		if onOff(s.Default) && s.Default != "" && st.defaultID == "" {
			st.defaultID = s.ID
		}
		if np := s.PPr.NumPr; np != nil && np.NumID != nil && np.NumID.Val != "0" {
			ref := &numRef{numID: np.NumID.Val}
			if np.ILvl != nil {
				ref.ilvl, _ = strconv.Atoi(np.ILvl.Val)
			}
			st.nums[s.ID] = ref
		}
	}
	return st, nil
}

// name returns the display name of a paragraph style, falling back to the
// style id for styles missing from styles.xml.
func (st styleTable) name(id string) string {
	if n, ok := st.names[id]; ok && n != "" {
		return n
	}
	if id == "" {
		return "Normal"
	}
	return id
}

func (st styleTable) numbering(id string) *numRef {
	if ref, ok := st.nums[id]; ok {
		cp := *ref
		return &cp
	}
	return nil
}

// uiStyleName maps the lowercase names Word stores for built-in styles to
// the names shown in its interface ("heading 1" is displayed "Heading 1").
func uiStyleName(name string) string {
	lower := strings.ToLower(name)
	switch lower {
	case "title", "subtitle", "caption", "header", "footer", "normal":
		return strings.ToUpper(lower[:1]) + lower[1:]
	}
	if rest, ok := strings.CutPrefix(lower, "heading "); ok {
		if _, err := strconv.Atoi(rest); err == nil {
			return "Heading " + rest
		}
	}
	return name
}
