package entity

// Player is a mark placed on the board. The zero value EmptyCell marks a free cell.
type Player string

const (
	PlayerX Player = "X"
	PlayerO Player = "O"

	EmptyCell Player = ""
)

// Opponent returns the other player. EmptyCell has no opponent.
func (that Player) Opponent() Player {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Player) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

func (that Player) String() string {
	return string(that)
}
