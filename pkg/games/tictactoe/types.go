package tictactoe

type Square uint8
type Player uint8

const (
	None   Player = 0
	Cross  Player = 1
	Circle Player = 2
)

func (p Player) Other() Player {
	switch p {
	case Cross:
		return Circle
	case Circle:
		return Cross
	}
	return None
}

func (p Player) String() string {
	switch p {
	case Cross:
		return "X"
	case Circle:
		return "O"
	}
	return "."
}
