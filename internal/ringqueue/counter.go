package ringqueue

import "sync/atomic"

// paddedCounter wraps the atomic index used by PaddedQueue so the
// padding fields in padded.go surround a named field rather than an
// anonymous atomic.Uint64 (the purego build's PaddedQueue has no padding).
type paddedCounter struct {
	v atomic.Uint64
}
