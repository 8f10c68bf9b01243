// Package hashing provides MD5 checksum calculation utilities.
//
// The export writer uses these checksums to compare freshly encoded targets with
// the file already on disk, so that file-watching service discovery only sees a
// write when the target lists actually changed.
//
// # Example Usage
//
//	proxy := hashing.NewMD5ReaderProxy(bytes.NewReader(data))
//	_, _ = io.Copy(io.Discard, proxy)
//	sum, _ := proxy.GetChecksum()
//
//	existing, found, err := hashing.ChecksumFile("/etc/prometheus/bigip.json")
package hashing
