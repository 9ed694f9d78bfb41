// Package ai holds the computer opponent: a material count and a one ply
// greedy move picker.
package ai

import "github.com/notnil/chess"

// PieceValues is the material worth of each piece type. The king is never
// captured in legal play, so it counts for nothing.
var PieceValues = map[chess.PieceType]int{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
	chess.King:   0,
}

// Placement is anything that can list the pieces on the board.
type Placement interface {
	SquareMap() map[chess.Square]chess.Piece
}

// Evaluate returns the material balance, positive when white is ahead.
func Evaluate(p Placement) int {
	score := 0
	for _, piece := range p.SquareMap() {
		value := PieceValues[piece.Type()]
		if piece.Color() == chess.White {
			score += value
		} else {
			score -= value
		}
	}
	return score
}
