package source

import (
	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("ltfix-source-fingerprint-key-32b")

// Fingerprint returns a fast 64-bit content hash used to tell iterations apart in logs and journals.
func Fingerprint(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
