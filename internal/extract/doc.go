// Package extract classifies document paragraphs into typed content blocks.
//
// Classification is a pure function of each paragraph: a heading (from its
// style name or a long bold run), a list item (bullet or numeric marker), or a
// plain paragraph. Headings receive an icon and a navigation category from
// fixed, ordered keyword tables. Reading order is never changed; grouping list
// items into containers is left to the renderer.
package extract
