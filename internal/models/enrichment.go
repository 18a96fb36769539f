package models

// EnrichmentResult is the triple produced for one capture. It is consumed
// once by the capture pipeline and never persisted on its own.
type EnrichmentResult struct {
	Title    string
	Content  string
	Category string
}
