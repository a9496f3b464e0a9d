// Package catalog defines the fixed cleaning rule set for the vendor's
// product-listing CSV export. The lookup tables live here as ordered
// constants, separate from the generic transforms in transformer/builtin, so
// the rule set stays testable in isolation and auditable in one place.
//
// The rules target a known, fixed-shape feed. They are corrections for
// defects observed in that feed, not a general cleaning framework; values
// outside the known defect families pass through unchanged.
package catalog

import (
	"catalogetl/internal/transformer"
	"catalogetl/internal/transformer/builtin"
)

// Column names of the raw feed and of the cleaned output.
const (
	ColTitle     = "Title"
	ColBrand     = "Brand_Name"
	ColProcessor = "Processor"
	ColRAM       = "RAM"
	ColOS        = "Operating_System"
	ColWarranty  = "Warranty"
	ColPrices    = "Prices"
	ColRating    = "Rating"
)

// ArtifactPrefix marks unnamed index columns inserted by prior spreadsheet
// exports.
const ArtifactPrefix = "Unnamed:"

// ProcessorFixes corrects the vendor naming defect that drops the "i" from
// Intel Core family names. Only the two families observed in the feed are
// corrected; any other defect passes through.
var ProcessorFixes = []builtin.Replacement{
	{Old: "Intel Core 5 Processor", New: "Intel Core i5 Processor"},
	{Old: "Intel Core 7 Processor", New: "Intel Core i7 Processor"},
}

// OSFixes collapses the verbose Windows 11 Home phrasing into the canonical
// form. Every other operating-system string passes through.
var OSFixes = []builtin.Replacement{
	{Old: "64 bit Windows 11 Home Operating System", New: "64 bit Windows 11 Operating System"},
}

// WarrantyFixes maps the known misspellings and variants of the warranty
// field (already shortened to two tokens) onto the three canonical forms.
// These are sequential substring replacements in the original feed-repair
// order; do not reorder or sort them. Values matching no entry are kept
// as-is, malformed ones included.
var WarrantyFixes = []builtin.Replacement{
	{Old: "1 Yr", New: "1 Year"},
	{Old: "1 Yera", New: "1 Year"},
	{Old: "1 Years ", New: "1 Year"},
	{Old: "1 year", New: "1 Year"},
	{Old: "1 Years", New: "1 Year"},
	{Old: "One-year International", New: "1 Year"},
	{Old: "3 Years", New: "3 Year"},
	{Old: "2 Years", New: "2 Year"},
}

// RatingFixes repairs two known data-entry collisions where a price string
// landed in the rating field. Exactly these two values are mapped; the
// repair is intentionally not generalized to other price-like ratings.
var RatingFixes = []builtin.Replacement{
	{Old: "74,990", New: "4.3"},
	{Old: "57,499", New: "4.3"},
}

// Chain returns the full cleaning rule set in required order. Later rules
// assume earlier ones already ran (warranty mapping expects the two-token
// form, the processor fixes expect the parenthesised suffix to be gone).
// Row truncation for loading is not part of the chain; callers apply
// Table.Head after snapshotting the full cleaned table.
func Chain() transformer.Chain {
	return transformer.Chain{
		builtin.Normalize{},
		builtin.DropPrefix{Prefix: ArtifactPrefix},
		builtin.FirstToken{Source: ColTitle, Target: ColBrand, DropSource: true},
		builtin.CutAt{Column: ColProcessor, Sep: "("},
		builtin.ReplaceLiteral{Column: ColProcessor, Pairs: ProcessorFixes},
		builtin.KeepTokens{Column: ColRAM, N: 2},
		builtin.ReplaceLiteral{Column: ColOS, Pairs: OSFixes},
		builtin.KeepTokens{Column: ColWarranty, N: 2},
		builtin.ReplaceLiteral{Column: ColWarranty, Pairs: WarrantyFixes},
		builtin.DigitsToInt{Column: ColPrices},
		builtin.ReplaceLiteral{Column: ColRating, Pairs: RatingFixes},
	}
}

// LoadLimit caps how many cleaned rows reach the warehouse. A design
// decision of the original job, not a correctness bound.
const LoadLimit = 50
