// Package hashing provides position hashing and repetition counting.
package hashing

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
)

// RepetitionTracker counts how often each position has occurred in a game.
// Positions are bucketed by Zobrist hash and confirmed with chess.SamePosition,
// so a hash collision can never produce a false repetition.
type RepetitionTracker struct {
	// hashTable stores every distinct position seen under its hash
	hashTable map[uint64][]positionCount
	// maxCount is the highest occurrence count of any position
	maxCount int
}

// positionCount stores one distinct position and its occurrence count.
type positionCount struct {
	board chess.Board
	count int
}

// NewRepetitionTracker creates an empty tracker.
func NewRepetitionTracker() *RepetitionTracker {
	return &RepetitionTracker{
		hashTable: make(map[uint64][]positionCount),
	}
}

// Add records one occurrence of the position and returns how many times it
// has now been seen.
func (t *RepetitionTracker) Add(board *chess.Board) int {
	hash := GenerateZobristHash(board)
	entries := t.hashTable[hash]
	for i := range entries {
		if chess.SamePosition(&entries[i].board, board) {
			entries[i].count++
			t.noteCount(entries[i].count)
			return entries[i].count
		}
	}
	t.hashTable[hash] = append(entries, positionCount{board: *board, count: 1})
	t.noteCount(1)
	return 1
}

// Count returns how many times the position has been recorded.
func (t *RepetitionTracker) Count(board *chess.Board) int {
	for _, e := range t.hashTable[GenerateZobristHash(board)] {
		if chess.SamePosition(&e.board, board) {
			return e.count
		}
	}
	return 0
}

// MaxCount returns the highest occurrence count of any recorded position.
func (t *RepetitionTracker) MaxCount() int {
	return t.maxCount
}

// UniqueCount returns the number of distinct positions recorded.
func (t *RepetitionTracker) UniqueCount() int {
	count := 0
	for _, entries := range t.hashTable {
		count += len(entries)
	}
	return count
}

// Reset clears the tracker.
func (t *RepetitionTracker) Reset() {
	t.hashTable = make(map[uint64][]positionCount)
	t.maxCount = 0
}

func (t *RepetitionTracker) noteCount(n int) {
	if n > t.maxCount {
		t.maxCount = n
	}
}
