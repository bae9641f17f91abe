package docx

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

type numberingXML struct {
	Abstract []struct {
		ID     string `xml:"abstractNumId,attr"`
		Levels []struct {
			ILvl   string  `xml:"ilvl,attr"`
			Start  valAttr `xml:"start"`
			NumFmt valAttr `xml:"numFmt"`
		} `xml:"lvl"`
	} `xml:"abstractNum"`
	Nums []struct {
		ID        string  `xml:"numId,attr"`
		Abstract  valAttr `xml:"abstractNumId"`
		Overrides []struct {
			ILvl  string  `xml:"ilvl,attr"`
			Start valAttr `xml:"startOverride"`
		} `xml:"lvlOverride"`
	} `xml:"num"`
}

type listLevel struct {
	format string
	start  int
}

// numberingTable resolves numId and level to a list level definition.
type numberingTable map[string]map[int]listLevel

func parseNumbering(data []byte) (numberingTable, error) {
	var nx numberingXML
	if err := xml.Unmarshal(data, &nx); err != nil {
		return nil, err
	}

	abstract := make(map[string]map[int]listLevel, len(nx.Abstract))
	for _, a := range nx.Abstract {
		levels := make(map[int]listLevel, len(a.Levels))
		for _, l := range a.Levels {
			ilvl, err := strconv.Atoi(l.ILvl)
			if err != nil {
				continue
			}
			start, err := strconv.Atoi(l.Start.Val)
			if err != nil {
				start = 1
			}
			levels[ilvl] = listLevel{format: l.NumFmt.Val, start: start}
		}
		abstract[a.ID] = levels
	}

	table := make(numberingTable, len(nx.Nums))
	for _, n := range nx.Nums {
		base := abstract[n.Abstract.Val]
		levels := make(map[int]listLevel, len(base))
		for k, v := range base {
			levels[k] = v
		}
		for _, o := range n.Overrides {
			ilvl, err := strconv.Atoi(o.ILvl)
			if err != nil {
				continue
			}
			if start, err := strconv.Atoi(o.Start.Val); err == nil {
				l := levels[ilvl]
				l.start = start
				levels[ilvl] = l
			}
		}
		table[n.ID] = levels
	}
	return table, nil
}

// listCounters tracks running item numbers per list and level.
type listCounters struct {
	counts map[string]map[int]int
}

func newListCounters() *listCounters {
	return &listCounters{counts: make(map[string]map[int]int)}
}

// marker returns the textual marker for the next item of ref. Bullet levels
// and unknown lists yield "• ", numbered levels "N. ", and "none" nothing.
// Starting an item resets the numbering of deeper levels.
func (c *listCounters) marker(table numberingTable, ref numRef) string {
	lvl, ok := table[ref.numID][ref.ilvl]
	if !ok {
		return "• "
	}
	switch lvl.format {
	case "none":
		return ""
	case "bullet", "":
		return "• "
	}

	levels := c.counts[ref.numID]
	if levels == nil {
		levels = make(map[int]int)
		c.counts[ref.numID] = levels
	}
	for depth := range levels {
		if depth > ref.ilvl {
			delete(levels, depth)
		}
	}
	n, seen := levels[ref.ilvl]
	if !seen {
		n = lvl.start - 1
	}
	n++
	levels[ref.ilvl] = n
	return fmt.Sprintf("%d. ", n)
}
