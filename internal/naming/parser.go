package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// Required named capture groups in a season/episode pattern.
const (
	GroupSeason  = "season_number"
	GroupEpisode = "episode_number"
)

var (
	// ErrMissingGroup is returned by NewParser when the pattern lacks one of
	// the required named groups.
	ErrMissingGroup = errors.New("season/episode regex is missing a required named group")

	// ErrUnparseable is wrapped by every ParseError.
	ErrUnparseable = errors.New("could not parse season/episode")
)

// Episode is the (season, episode) pair identifying a TV episode.
type Episode struct {
	Season  int
	Episode int
}

// Code returns the canonical "S01E02" form, zero-padded to two digits.
func (e Episode) Code() string {
	return fmt.Sprintf("S%02dE%02d", e.Season, e.Episode)
}

func (e Episode) String() string { return e.Code() }

// ParseError reports a video path the pattern could not be applied to.
type ParseError struct {
	Path   string
	Reason string // Optional detail, e.g. a capture that is not a number.
}

func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v from %s: %s", ErrUnparseable, e.Path, e.Reason)
	}
	return fmt.Sprintf("%v from %s", ErrUnparseable, e.Path)
}

func (e *ParseError) Unwrap() error { return ErrUnparseable }

// Parser extracts an Episode from a video path with a fixed pattern.
type Parser struct {
	re         *regexp.Regexp
	seasonIdx  int
	episodeIdx int
}

// NewParser compiles pattern and checks that both required named groups are
// present. The returned Parser is safe for concurrent use.
func NewParser(pattern string) (*Parser, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid season/episode regex %q: %w", pattern, err)
	}
	p := &Parser{
		re:         re,
		seasonIdx:  re.SubexpIndex(GroupSeason),
		episodeIdx: re.SubexpIndex(GroupEpisode),
	}
	if p.seasonIdx < 0 {
		return nil, fmt.Errorf("%w: %s (pattern %q)", ErrMissingGroup, GroupSeason, pattern)
	}
	if p.episodeIdx < 0 {
		return nil, fmt.Errorf("%w: %s (pattern %q)", ErrMissingGroup, GroupEpisode, pattern)
	}
	return p, nil
}

// Pattern returns the source text of the compiled pattern.
func (p *Parser) Pattern() string { return p.re.String() }

// Parse searches the base name of videoPath, then its full containing
// directory path, which is made absolute first. The leftmost match of the
// first successful search wins, so a show folder such as
// "/tv/Show S02E03/VIDEO_TS/title.mkv" still yields S02E03. It returns a
// *ParseError when neither matches or when a matched group is not a base-10
// integer.
func (p *Parser) Parse(videoPath string) (Episode, error) {
	m := p.re.FindStringSubmatch(filepath.Base(videoPath))
	if m == nil {
		m = p.re.FindStringSubmatch(dirOf(videoPath))
	}
	if m == nil {
		return Episode{}, &ParseError{Path: videoPath}
	}

	season, err := strconv.Atoi(m[p.seasonIdx])
	if err != nil {
		return Episode{}, &ParseError{Path: videoPath, Reason: fmt.Sprintf("season %q is not a number", m[p.seasonIdx])}
	}
	episode, err := strconv.Atoi(m[p.episodeIdx])
	if err != nil {
		return Episode{}, &ParseError{Path: videoPath, Reason: fmt.Sprintf("episode %q is not a number", m[p.episodeIdx])}
	}
	if season < 0 || episode < 0 {
		return Episode{}, &ParseError{Path: videoPath, Reason: "negative season/episode"}
	}
	return Episode{Season: season, Episode: episode}, nil
}

// dirOf returns the absolute directory containing path. A relative path
// that cannot be resolved falls back to its lexical directory.
func dirOf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Dir(path)
}
