// Package pagination provides sorting and offset/limit windows for match
// listings printed by the CLI. It works on the already loaded match set; the
// remote feed is always fetched whole.
package pagination
