package entity

const boardWidth = 3

type Direction string

const (
	DirectionHorizontal   Direction = "horizontal"
	DirectionVertical     Direction = "vertical"
	DirectionDiagonal     Direction = "diagonal"
	DirectionAntiDiagonal Direction = "anti-diagonal"
)

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// LineGeometry - where the winning line starts and ends, in board coordinates.
type LineGeometry struct {
	Start     Point     `json:"start"`
	End       Point     `json:"end"`
	Direction Direction `json:"direction"`
}

func CellPosition(index int) Point {
	return Point{Row: index / boardWidth, Col: index % boardWidth}
}

// NewLineGeometry - the line runs from the first to the last cell of the combo.
func NewLineGeometry(combo [3]int) LineGeometry {
	start, end := CellPosition(combo[0]), CellPosition(combo[2])

	var direction Direction
	switch {
	case start.Row == end.Row:
		direction = DirectionHorizontal
	case start.Col == end.Col:
		direction = DirectionVertical
	case start.Col < end.Col:
		direction = DirectionDiagonal
	default:
		direction = DirectionAntiDiagonal
	}

	return LineGeometry{Start: start, End: end, Direction: direction}
}

func (that LineGeometry) Contains(index int) bool {
	p := CellPosition(index)

	switch that.Direction {
	case DirectionHorizontal:
		return p.Row == that.Start.Row
	case DirectionVertical:
		return p.Col == that.Start.Col
	case DirectionDiagonal:
		return p.Row == p.Col
	case DirectionAntiDiagonal:
		return p.Row+p.Col == boardWidth-1
	}

	return false
}
