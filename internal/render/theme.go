// Package render turns composed pages into HTML and Markdown.
package render

import "strings"

// Slot is a presentation position of a document component.
type Slot string

const (
	SlotArticle     Slot = "article"
	SlotTitleBlock  Slot = "title-block"
	SlotTitle       Slot = "title"
	SlotAuthor      Slot = "author"
	SlotAffiliation Slot = "affiliation"
	SlotDate        Slot = "date"
	SlotSection     Slot = "section"
	SlotHeading1    Slot = "heading-1"
	SlotHeading2    Slot = "heading-2"
	SlotHeading3    Slot = "heading-3"
	SlotParagraph   Slot = "paragraph"
	SlotCode        Slot = "code"
	SlotStrong      Slot = "strong"
	SlotEm          Slot = "em"
	SlotList        Slot = "list"
	SlotNestedList  Slot = "nested-list"
	SlotOrderedList Slot = "ordered-list"
	SlotListItem    Slot = "list-item"
	SlotFigure      Slot = "figure"
	SlotFigureFrame Slot = "figure-frame"
	SlotFigureImage Slot = "figure-image"
	SlotCaption     Slot = "caption"
	SlotMath        Slot = "math"
	SlotMathPre     Slot = "math-pre"
	SlotTableWrap   Slot = "table-wrap"
	SlotTable       Slot = "table"
	SlotTableHead   Slot = "table-head"
	SlotTableBody   Slot = "table-body"
	SlotTableRow    Slot = "table-row"
	SlotTableHeader Slot = "table-header"
	SlotTableData   Slot = "table-data"
	SlotDivider     Slot = "divider"
)

// Theme maps slots to default class strings.
type Theme map[Slot]string

// DefaultTheme returns the classes of the Catenary whitepaper.
func DefaultTheme() Theme {
	return Theme{
		SlotArticle:     "w-full max-w-5xl bg-black/50 border border-white/20 rounded-lg p-6 sm:p-12 shadow-xl backdrop-blur-sm",
		SlotTitleBlock:  "text-center mb-12 border-b border-primary/30 pb-6",
		SlotTitle:       "text-4xl sm:text-5xl font-bold text-primary mb-3",
		SlotAuthor:      "text-xl text-white/95",
		SlotAffiliation: "text-lg text-white/80",
		SlotDate:        "text-lg text-white/80 mt-2",
		SlotSection:     "my-8",
		SlotHeading1:    "text-3xl sm:text-4xl font-bold mt-10 mb-5 text-primary border-b border-primary/40 pb-2",
		SlotHeading2:    "text-2xl sm:text-3xl font-bold mt-8 mb-4 text-white",
		SlotHeading3:    "text-xl sm:text-2xl font-semibold mt-6 mb-3 text-white/95",
		SlotParagraph:   "my-4 text-base sm:text-lg text-white/80 leading-relaxed",
		SlotCode:        "font-mono bg-gray-700/60 px-1.5 py-0.5 rounded text-sm text-amber-400 border border-gray-600",
		SlotStrong:      "font-semibold text-white",
		SlotEm:          "italic text-white/90",
		SlotList:        "list-disc list-outside my-4 ml-6 text-white/80 space-y-1",
		SlotNestedList:  "list-circle list-outside ml-6 my-2 space-y-1",
		SlotOrderedList: "list-decimal list-outside my-4 ml-6 text-white/80 space-y-1",
		SlotListItem:    "ml-6 my-2",
		SlotFigure:      "my-6 flex flex-col items-center bg-black/20 p-2 sm:p-4 border border-white/10 rounded-lg shadow-md",
		SlotFigureFrame: "relative w-full max-w-3xl",
		SlotFigureImage: "object-contain rounded",
		SlotCaption:     "mt-3 text-xs sm:text-sm text-white/70 italic text-center",
		SlotMath:        "my-4 p-4 bg-gray-800/80 border border-gray-700 rounded overflow-x-auto",
		SlotMathPre:     "text-sm text-cyan-300 font-mono whitespace-pre",
		SlotTableWrap:   "overflow-x-auto my-5 shadow-md rounded-lg border border-gray-700",
		SlotTable:       "min-w-full divide-y divide-gray-600 text-sm",
		SlotTableHead:   "bg-gray-800/60",
		SlotTableBody:   "divide-y divide-gray-700 bg-gray-900/40",
		SlotTableRow:    "hover:bg-gray-800/30 transition-colors duration-150",
		SlotTableHeader: "px-5 py-3 text-left font-medium text-white/90 tracking-wider",
		SlotTableData:   "px-5 py-3 whitespace-nowrap text-white/80",
		SlotDivider:     "my-10 border-white/20",
	}
}

// Class returns the default class of slot with override appended.
func (t Theme) Class(slot Slot, override string) string {
	base := t[slot]
	override = strings.TrimSpace(override)
	switch {
	case override == "":
		return base
	case base == "":
		return override
	default:
		return base + " " + override
	}
}
