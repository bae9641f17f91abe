package render

import "github.com/alnah/go-docx2html/internal/extract"

// GroupByCategory reorders top-level sections so sections of the same
// navigation category are adjacent, in category display order. A category
// holding several sections gets a level 2 heading named by label and its
// sections are demoted to level 3. Blocks before the first heading stay first.
func GroupByCategory(blocks []extract.Block, label func(extract.Category) string) []extract.Block {
	sections := extract.Sections(blocks)

	var preamble []extract.Block
	buckets := make(map[extract.Category][]extract.Section)
	for _, s := range sections {
		if s.Heading == nil {
			preamble = append(preamble, s.Blocks...)
			continue
		}
		cat := extract.Categorize(s.Heading.Text)
		buckets[cat] = append(buckets[cat], s)
	}

	out := make([]extract.Block, 0, len(blocks)+len(buckets))
	out = append(out, preamble...)
	for _, cat := range extract.CategoryOrder() {
		members := buckets[cat]
		if len(members) == 0 {
			continue
		}
		if len(members) > 1 {
			out = append(out, extract.HeadingBlock(2, cat.Icon(), label(cat)))
		}
		for _, s := range members {
			h := *s.Heading
			if len(members) > 1 && h.Level < 3 {
				h.Level = 3
			}
			out = append(out, h)
			out = append(out, s.Blocks...)
		}
	}
	return out
}
