// Package audio plays a chime when a toast is shown. Sounds are picked per
// preset and decoded with beep from WAV, OGG or MP3 files.
package audio
