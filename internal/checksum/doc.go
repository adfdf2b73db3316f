// Package checksum protects snapshots and frames with a CRC32-C trailer.
//
// Whole buffers use Append and Verify:
//
//	buf = checksum.Append(buf)
//	body, err := checksum.Verify(buf)
//
// Streams use a Writer and finish with WriteTrailer.
package checksum
