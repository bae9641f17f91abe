package docx

import (
	"encoding/xml"
	"strings"
)

type coreXML struct {
	Title string `xml:"title"`
}

// parseCoreTitle returns dc:title from docProps/core.xml, or "" when the
// part is unreadable.
func parseCoreTitle(data []byte) string {
	var c coreXML
	if err := xml.Unmarshal(data, &c); err != nil {
		return ""
	}
	return strings.TrimSpace(c.Title)
}
