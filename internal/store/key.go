package store

import (
	"crypto/rand"
	"sync"
	"time"
)

// pushChars is the key alphabet, ordered so that lexicographic key order
// matches chronological creation order.
const pushChars = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

var (
	keyMu       sync.Mutex
	lastKeyTime int64
	lastRand    [12]byte
)

// NewKey returns a 20-character unique key for a new record: 8 characters
// encode the current millisecond timestamp, 12 are random. Keys minted in
// the same millisecond reuse the previous random tail incremented by one,
// so order is preserved even under bursts.
func (c *Client) NewKey() string {
	keyMu.Lock()
	defer keyMu.Unlock()

	now := time.Now().UnixMilli()

	var key [20]byte
	ts := now
	for i := 7; i >= 0; i-- {
		key[i] = pushChars[ts%64]
		ts /= 64
	}

	if now == lastKeyTime {
		// Same millisecond: bump the previous random tail.
		for i := 11; i >= 0; i-- {
			lastRand[i]++
			if lastRand[i] < 64 {
				break
			}
			lastRand[i] = 0
		}
	} else {
		var buf [12]byte
		_, _ = rand.Read(buf[:])
		for i := range buf {
			lastRand[i] = buf[i] % 64
		}
	}
	lastKeyTime = now

	for i := 0; i < 12; i++ {
		key[8+i] = pushChars[lastRand[i]]
	}

	return string(key[:])
}
