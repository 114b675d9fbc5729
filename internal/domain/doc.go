// Package domain models met.hu settlement forecast data.
//
// # Data Source
//
// Forecasts come from the HungaroMet settlement forecast page at
// https://www.met.hu/idojaras/elorejelzes/magyarorszagi_telepulesek/. The page
// resolves a settlement name through an autocomplete endpoint (returning the
// settlement code plus coordinates) and then loads an HTML table fragment via
// an AJAX POST. There is no structured API: the table fragment is the protocol.
//
// # Source Conventions
//
// The forecast table is locale-specific Hungarian markup:
//
//	Dates:      "2026. február 25." or "02.25." forms, sometimes only a weekday
//	            name ("szerda"). Years are usually omitted and must be inferred.
//	Times:      either "HH:MM" cells, hour labels ("00", "06", "12", "18"), or
//	            day-part words ("éjjel", "reggel", "délben", "este", ...).
//	Directions: 16 Hungarian compass abbreviations ("É", "DNy", "ÉÉK", ...),
//	            plus "szélcsend" (calm) and "változó" (variable).
//	Icons:      weather state is an <img> whose filename encodes the condition
//	            ("04.gif", "n02.gif", "w15ej.png"); some data, such as the wind
//	            bearing in degrees and the textual weather description, exists
//	            only inside tooltip attributes.
//
// Numbers may use comma decimals, non-breaking spaces, and any of three minus
// sign variants (ASCII hyphen, U+2212 minus, en-dash).
//
// # Absence Semantics
//
// Every measurement on [ForecastSlot] is optional. nil means the table did not
// carry the value; it never means zero. Parsing failures degrade at field
// granularity: a cell that doesn't match its expected pattern leaves that one
// field nil and the rest of the slot intact.
package domain
