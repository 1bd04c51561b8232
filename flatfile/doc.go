// Package flatfile stores records as back-to-back fixed-length blocks in a
// single file.
//
// There is no header, footer or record count: the number of records is
// always file size / block size. Appending writes one block at the end of
// file. Every other change re-writes the whole file (see OverwriteAll), which
// is done atomically by writing a temporary file and renaming it over the
// original.
//
// A Store does no locking. Two processes that scan and overwrite the same
// file race and the last writer wins.
package flatfile
