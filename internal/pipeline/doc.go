// Package pipeline orchestrates file discovery, per-file processing, and
// batch summary reporting.
//
// Each discovered video is processed to completion before the next one
// starts: parse season/episode → dump audio (decoder) → encode (encoder) →
// tag. A failure at any stage is logged and counted in [RunStats], and the
// batch moves on to the next file. Only discovery errors abort the run.
package pipeline
