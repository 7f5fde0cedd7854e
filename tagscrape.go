// Package tagscrape fetches web pages and extracts the text of selected HTML
// tags, and optionally their links, behind a small HTTP API.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gin/).
package tagscrape
