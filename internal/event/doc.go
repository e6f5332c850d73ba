// Package event provides the core types for the meetup-alarm pipeline.
//
// An Event is a single scraped Meetup listing identified by its canonical
// URL. The SeenSet records URLs already accepted for posting within the
// current process, and the window helpers decide whether an event's start
// time falls in the this-week/next-week posting window.
package event
