package audio

import (
	"context"

	"github.com/backmassage/tvaudio/internal/config"
)

// Decode dumps the audio of video to wav. It returns a *StageError wrapping
// ErrDecodeFailed when the decoder cannot start or exits non-zero.
func Decode(ctx context.Context, ex Executor, cfg *config.Config, video, wav string) error {
	return run(ctx, ex, StageDecode, video, DecodeArgs(cfg, video, wav))
}

// Encode encodes wav to mp3. It returns a *StageError wrapping
// ErrEncodeFailed when the encoder cannot start or exits non-zero.
func Encode(ctx context.Context, ex Executor, cfg *config.Config, wav, mp3 string) error {
	return run(ctx, ex, StageEncode, wav, EncodeArgs(cfg, wav, mp3))
}

func run(ctx context.Context, ex Executor, stage Stage, input string, args []string) error {
	res := ex.Execute(ctx, args)
	if res.Err == nil {
		return nil
	}
	return &StageError{
		Stage:  stage,
		Path:   input,
		Stderr: res.Stderr,
		Err:    res.Err,
	}
}
