// Package audio builds and executes the two external commands that turn a
// video into an mp3: the decoder dump (mplayer, audio only, to PCM wav) and
// the encoder pass (lame --preset phone).
//
// Commands are explicit argument lists handed to os/exec; no shell is
// involved, so paths need no quoting. Success is decided solely by the exit
// status. There is no retry: a failed decode skips the encode, and a failed
// encode skips tagging.
//
// Files:
//   - builder.go: DecodeArgs, EncodeArgs and mplayer sub-option escaping.
//   - executor.go: Executor interface and the os/exec implementation.
//   - errors.go: stage sentinels and StageError.
//   - stages.go: Decode and Encode, which wrap failures in StageError.
package audio
