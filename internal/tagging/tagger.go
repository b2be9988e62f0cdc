// Package tagging writes the standardized "TV Audio" ID3v2 tag into an
// encoded mp3.
package tagging

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bogem/id3v2/v2"

	"github.com/backmassage/tvaudio/internal/naming"
)

// Genre is the fixed genre written to every output.
const Genre = "TV Audio"

// ErrTagFailed is wrapped by every TagError.
var ErrTagFailed = errors.New("could not tag")

// Fields is the full set of values written into one file.
type Fields struct {
	Track  string // TRCK: episode number, unpadded.
	Title  string // TIT2: "S01E02".
	Album  string // TALB: "Season 01".
	Artist string // TPE1: show name.
	Part   string // TPOS: season number, unpadded.
	Genre  string // TCON: always Genre.
}

// NewFields derives the tag values for ep of show.
func NewFields(show string, ep naming.Episode) Fields {
	return Fields{
		Track:  strconv.Itoa(ep.Episode),
		Title:  ep.Code(),
		Album:  fmt.Sprintf("Season %02d", ep.Season),
		Artist: show,
		Part:   strconv.Itoa(ep.Season),
		Genre:  Genre,
	}
}

// TagError reports a failure to open, build or save the tag of Path.
type TagError struct {
	Path string
	Err  error
}

func (e *TagError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrTagFailed, e.Path, e.Err)
}

// Is matches ErrTagFailed so callers can use errors.Is.
func (e *TagError) Is(target error) bool { return target == ErrTagFailed }

func (e *TagError) Unwrap() error { return e.Err }

// Tag replaces any existing ID3v2 tag of the mp3 at path with a fresh v2.4
// tag holding f, UTF-8 encoded. The audio frames are left untouched.
func Tag(path string, f Fields) (err error) {
	// Parse: false starts from an empty tag; Save still skips the old one.
	tag, err := id3v2.Open(path, id3v2.Options{Parse: false})
	if err != nil {
		return &TagError{Path: path, Err: err}
	}
	defer func() {
		if cerr := tag.Close(); cerr != nil && err == nil {
			err = &TagError{Path: path, Err: cerr}
		}
	}()

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	tag.AddTextFrame(tag.CommonID("Track number/Position in set"), id3v2.EncodingUTF8, f.Track)
	tag.SetTitle(f.Title)
	tag.SetAlbum(f.Album)
	tag.SetArtist(f.Artist)
	tag.AddTextFrame(tag.CommonID("Part of a set"), id3v2.EncodingUTF8, f.Part)
	tag.SetGenre(f.Genre)

	if err := tag.Save(); err != nil {
		return &TagError{Path: path, Err: err}
	}
	return nil
}
