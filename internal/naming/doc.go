// Package naming parses season/episode numbers out of video paths and builds
// the intermediate and output artifact paths derived from them.
//
// The season/episode pattern is a regular expression with the named groups
// season_number and episode_number. It is validated once by [NewParser] and
// searched first against the file's base name, then against the absolute
// path of the directory that contains it; the leftmost match of the first
// successful search wins.
//
// Artifacts are named after the parsed identifier:
//
//	<video dir>/S01E02.wav   intermediate PCM dump
//	<output dir>/S01E02.mp3  tagged result
//
// [CollisionResolver] records which input claimed each output path during a
// run so a second file resolving to the same episode can be reported.
package naming
