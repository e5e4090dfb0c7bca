// Package atrac3 provides a pure Go decoder for Sony's ATRAC3 and
// ATRAC3+ perceptual audio codecs, producing interleaved PCM samples
// from compressed frames carried in a RIFF WAVE or Sony OMA/AA3
// container.
//
// Ported from the ATRAC3/ATRAC3+ reference decoder family (FFmpeg's
// libavcodec/atrac3.c and atrac3plus*.c).
package atrac3
