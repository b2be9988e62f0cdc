package naming

import "path/filepath"

// WavPath returns the intermediate wav path, next to the source video:
//
//	<video dir>/S01E02.wav
func WavPath(videoPath string, ep Episode) string {
	return filepath.Join(filepath.Dir(videoPath), ep.Code()+".wav")
}

// MP3Path returns the output mp3 path inside outputDir:
//
//	<outputDir>/S01E02.mp3
func MP3Path(outputDir string, ep Episode) string {
	return filepath.Join(outputDir, ep.Code()+".mp3")
}
