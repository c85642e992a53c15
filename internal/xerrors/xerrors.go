// Package xerrors defines the sentinel error taxonomy shared by the pir and
// mgtable packages (spec §7): input-shape errors, resource-state errors,
// I/O errors, and cryptographic (aggregate decryption) failures.
package xerrors

import "errors"

var (
	// ErrInputShape marks a malformed argument: wrong buffer length, a
	// zero-length or zero-valued dimension list, an out-of-range flat
	// index, or a reply size incompatible with (dimension, packing).
	ErrInputShape = errors.New("epir: invalid input shape")

	// ErrMgNotLoaded marks use of ReplyDecrypt before the mG table has
	// been loaded.
	ErrMgNotLoaded = errors.New("epir: mG table not loaded")

	// ErrIO marks a failure to open the mG table file. A file shorter than
	// the requested element count is not reported as ErrIO: it loads as a
	// table whose Ready() is false, and ReplyDecrypt then fails with
	// ErrMgNotLoaded.
	ErrIO = errors.New("epir: mG table I/O error")

	// ErrDecryptionFailed marks a ciphertext, within a reply, whose
	// recovered point is absent from the mG table. It is the single
	// aggregate failure surfaced for a whole ReplyDecrypt call; it is
	// never paired with the index of the offending ciphertext.
	ErrDecryptionFailed = errors.New("epir: decryption failed")
)
