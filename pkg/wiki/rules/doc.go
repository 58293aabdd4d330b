// Package rules provides the built-in parse rules for wikitok.
//
// # Rules
//
//   - WK001: interwiki - Interwiki links
//
// # Interwiki links
//
// The interwiki rule recognizes four forms:
//
//	[[Page]]               site "local", page "Page", text "Page"
//	[[Page|Shown]]         site "local", page "Page", text "Shown"
//	[[:en:Target]]         site "en", page "Target", text "Target"
//	[[:en:Target|Shown]]   site "en", page "Target", text "Shown"
//
// A link directly followed by a word character ("[[Page]]s") is not
// recognized. Colon segments after the page are discarded unless the
// join_overflow option is set:
//
//	rules:
//	  interwiki:
//	    options:
//	      join_overflow: true
//
// Described links ("[[a|b]]") are replaced in a first pass over the whole
// buffer, standalone links in a second pass. Each recognized link becomes a
// placeholder token; the render package turns it back into markup.
package rules
