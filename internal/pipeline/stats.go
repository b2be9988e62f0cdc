package pipeline

// RunStats tracks per-outcome counters and output size across a batch run.
type RunStats struct {
	Total   int
	Current int

	Ripped       int // Decoded, encoded and tagged.
	Planned      int // Would have been ripped (--dry-run).
	Skipped      int // Output already existed (--skip-existing).
	Unparsed     int // No season/episode in filename or directory.
	DecodeFailed int
	EncodeFailed int
	TagFailed    int

	TotalOutputBytes int64
}

// Failed returns the number of files that stopped at any stage.
func (s *RunStats) Failed() int {
	return s.Unparsed + s.DecodeFailed + s.EncodeFailed + s.TagFailed
}
