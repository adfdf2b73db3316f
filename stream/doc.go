// Package stream provides byte streams used by the codec framing:
//
//   - Reader: a read-only, seekable stream over a byte slice with positioned
//     reads that leave the cursor untouched.
//   - Buffer: a growable buffer that can be written, seeked and read back.
//   - SeqReader: an io.Reader over a lazily produced sequence of chunks.
//   - File: a read-only memory-mapped file served through a Reader.
package stream
