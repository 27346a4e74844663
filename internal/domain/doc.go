// Package domain parses UK eAIP aerodrome (AD 2) table cells into typed
// values.
//
// # Data Source
//
// Rows originate from the AD 2 pages of the UK Integrated Aeronautical
// Information Package. The upstream collector extracts each table's cells
// and publishes one JSON message per aerodrome section to the Kafka source
// topic. Cell text keeps the publication's line breaks.
//
// # eAIP Text Conventions
//
// Coordinate format:
//
//	"ddmmssH dddmmssH"  →  e.g. "514851N 0001417W"
//	Runway thresholds add hundredths of a second: "514806.52N 0001438.91W".
//	S and W negate the decimal value.
//
// Hours of operation:
//
//	"Mon-Fri 0800-1630"                                   weekday range
//	"Mon-Fri 0800-1630 (Summer) 0700-1600 (Winter)"       seasonal pair
//	"Mon-Fri, Sat & PH 0900-SS"                           several day ranges, sunset
//	"H24"                                                 continuous
//	Times are UTC HHMM; "2400" closes a day. "SS" is sunset and is kept
//	as [Sunset] rather than resolved. Day ranges wrap Sun to Mon; PH
//	(public holiday) is outside the cycle.
//
// Lateral limits (AD 2.17 first cell, after the designation line):
//
//	"A circle, 2.5 NM radius, centred at 514851N 0001417W"
//	"514807N 0001203W - 513612N 0000458W thence clockwise by the arc of a
//	 circle radius 8 NM centred on 512853N 0000454E to 513010N 0000910W -
//	 512000N 0002000W"
//	Segments are joined by " - ". The closing leg back to the first point
//	is implied, so each segment ends where the next one starts. See
//	[ShapePriority] for the order descriptors are matched in.
//
// Vertical limits:
//
//	"Upper limit: 2500 FT ALT"  "Lower limit: SFC"  "Upper limit: FL195"
//
// # Sections
//
//	2.2   geographical and administrative data   [ParseAerodromeData]
//	2.3   operational hours                       [ParseAdministrationHours]
//	2.12  runway physical characteristics         [ParseRunwayRow]
//	2.17  ATS airspace                            [ParseAirspaceRow]
//	2.18  ATS communication facilities            [ParseRadioRows]
//
// # ID Generation
//
// Section IDs are deterministic SHA-256 hashes of airfield, section and
// row text, so replayed messages produce the same sink key. See
// [generateID].
package domain
