// Package block provides low-level I/O over the FITS block structure.
//
// A FITS stream is a sequence of 2880-byte logical blocks. Header blocks
// hold 36 card images of 80 ASCII bytes each; data blocks hold big-endian
// binary payloads padded with zero bytes to the next block boundary.
//
// [Reader] walks an in-memory stream card by card and segment by segment,
// [Writer] assembles one into a pre-sized buffer. Both track an absolute
// position so block alignment is plain arithmetic.
package block

// FITS layout constants.
const (
	Size          = 2880 // bytes per logical block
	CardSize      = 80   // bytes per header card image
	CardsPerBlock = Size / CardSize
)

// Padded returns n rounded up to the next block boundary.
func Padded(n int) int {
	return (n + Size - 1) / Size * Size
}

// HeaderSize returns the byte length of a header holding cards card images,
// including the blank padding cards that fill the last block.
func HeaderSize(cards int) int {
	return (cards + CardsPerBlock - 1) / CardsPerBlock * Size
}
