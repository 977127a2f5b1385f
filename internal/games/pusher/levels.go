package pusher

type point struct{ x, y int }

// Level is the layout of one puzzle.
type Level struct {
	Start     point
	Goal      point
	Walls     []point
	Pushables []point
	TimerUps  []point
}

var levels = []Level{
	{
		Start: point{1, 1},
		Goal:  point{13, 13},
	},
	{
		Start: point{13, 13},
		Goal:  point{1, 1},
		Walls: []point{{2, 2}, {1, 2}, {2, 1}},
	},
	{
		Start: point{1, 1},
		Goal:  point{13, 13},
		Walls: []point{
			{0, 2}, {2, 2}, {1, 2}, {2, 1}, {4, 0}, {4, 1}, {4, 2},
			{12, 13}, {13, 14}, {14, 13},
		},
		Pushables: []point{{3, 2}},
	},
	{
		Start: point{13, 13},
		Goal:  point{1, 1},
		Walls: []point{
			{0, 2}, {2, 2}, {1, 2}, {2, 1}, {4, 0}, {4, 1}, {4, 2},
			{11, 14}, {12, 14}, {13, 14}, {14, 14}, {15, 14},
			{11, 13}, {15, 13}, {11, 12}, {15, 12}, {11, 11}, {15, 11},
			{11, 9}, {12, 9}, {13, 9},
		},
		Pushables: []point{{3, 3}, {12, 11}, {13, 11}, {14, 11}},
		TimerUps:  []point{{7, 7}},
	},
}

// Levels returns the number of levels.
func Levels() int { return len(levels) }
