package audio

import (
	"fmt"
	"strings"

	"gopkg.in/alessio/shellescape.v1"

	"github.com/backmassage/tvaudio/internal/config"
)

// DecodeArgs constructs the decoder argument slice that dumps the audio track
// of video to a PCM wav at wav, discarding video:
//
//	mplayer -ao pcm:fast:file=<wav> -vo null -vc null <video>
func DecodeArgs(cfg *config.Config, video, wav string) []string {
	return []string{
		cfg.Decoder,
		"-ao", "pcm:fast:file=" + escapeSubopt(wav),
		"-vo", "null",
		"-vc", "null",
		video,
	}
}

// EncodeArgs constructs the encoder argument slice that encodes wav to mp3
// with the fixed low-bitrate voice preset:
//
//	lame --preset phone <wav> <mp3>
func EncodeArgs(cfg *config.Config, wav, mp3 string) []string {
	preset := cfg.EncoderPreset
	if preset == "" {
		preset = "phone"
	}
	return []string{
		cfg.Encoder,
		"--preset", preset,
		wav,
		mp3,
	}
}

// escapeSubopt protects a sub-option value for mplayer. ':' and ',' separate
// sub-options and filter lists, so values containing them are written in
// mplayer's length-prefixed form "%<bytes>%<value>".
func escapeSubopt(value string) string {
	if !strings.ContainsAny(value, ":,%") {
		return value
	}
	return fmt.Sprintf("%%%d%%%s", len(value), value)
}

// CommandLine renders args as a copy-pasteable shell command for logs.
func CommandLine(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellescape.Quote(a)
	}
	return strings.Join(quoted, " ")
}
