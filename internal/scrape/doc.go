// Package scrape parses the met.hu settlement forecast HTML fragment into
// typed forecast snapshots.
//
// The source markup has no stable schema. The site has shipped two table
// layouts over time, and the engine models them as an ordered chain of
// strategies, each of which either produces slots or declares itself not
// applicable:
//
//  1. marker — the structured variant. Each row is one time slot; every cell
//     carries a stable class marker naming its field. Dates arrive in
//     row-spanning context cells, times as "HH:MM" cells. Wind bearing and
//     the Hungarian weather description exist only in tooltip attributes.
//  2. heuristic — the transposed variant. Rows are fields with a text label
//     in the first cell; columns are slots. The time axis is rebuilt from
//     colspan'd date and time-label header rows, and rows are classified by
//     keyword-matching their labels.
//  3. column — last resort when no time axis exists at all. Every non-label
//     column becomes one untimed slot; rows are keyword-classified as above,
//     and slots with no substantive reading are discarded.
//
// Failures degrade at field granularity: a malformed cell leaves one field
// absent, a malformed header cell shortens the axis, and only a document with
// no recognizable table at all produces a Found=false snapshot. The engine
// performs no I/O, holds no state across calls, and never logs; callers get
// [ParseStats] for their own observability.
//
// All locale knowledge (month, weekday and day-part words, wind direction
// names, icon code tables, structural marker names) lives in [Vocabulary],
// injected at construction. [DefaultVocabulary] carries the current met.hu
// tables; it is the piece to update when the site changes wording or icons.
package scrape
