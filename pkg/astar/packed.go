package astar

import "sync/atomic"

// Pack both scores into one word: White in the low half, Black in the high half
func Pack(p ScorePair) uint32 {
	return uint32(uint16(p.White)) | uint32(uint16(p.Black))<<16
}

func Unpack(word uint32) ScorePair {
	return ScorePair{
		White: Score(int16(uint16(word))),
		Black: Score(int16(uint16(word >> 16))),
	}
}

// Score pair stored in a single atomic word
type AtomicScores struct {
	word atomic.Uint32
}

func (a *AtomicScores) Load() ScorePair {
	return Unpack(a.word.Load())
}

func (a *AtomicScores) Store(p ScorePair) {
	a.word.Store(Pack(p))
}

func (a *AtomicScores) CompareAndSwap(old, new ScorePair) bool {
	return a.word.CompareAndSwap(Pack(old), Pack(new))
}
