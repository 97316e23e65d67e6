package utils

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"

	"github.com/sqids/sqids-go"
)

const refAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	refEncoder     *sqids.Sqids
	refEncoderOnce sync.Once
	refEncoderErr  error
)

func getRefEncoder() (*sqids.Sqids, error) {
	refEncoderOnce.Do(func() {
		refEncoder, refEncoderErr = sqids.New(sqids.Options{
			Alphabet:  refAlphabet,
			MinLength: 10,
		})
	})
	return refEncoder, refEncoderErr
}

// NewReference returns a short, URL safe submission code built from the
// current time and a random component.
var NewReference = func() (string, error) {
	enc, err := getRefEncoder()
	if err != nil {
		return "", err
	}
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return enc.Encode([]uint64{
		uint64(time.Now().UnixMilli()),
		uint64(binary.BigEndian.Uint32(buf[:])),
	})
}
