package echo

// classicNotes is indexed by the shifted row, lowest note first.
var classicNotes = []string{
	"piano_a1", "piano_bb1", "piano_b1", "piano_c2",
	"piano_db2", "piano_d2", "piano_eb2", "piano_e2",
	"piano_f2", "piano_gb2", "piano_g2", "piano_ab2",
	"piano_a2", "piano_bb2", "piano_b2", "piano_c3",
}

var instruments = []string{"piano_", "l_piano_", "hchord_", "l_hchord_", "xylo_"}

var scales = [][]string{
	{"a4", "b4", "db5", "d5", "e5", "gb5", "ab5", "a5", "b5", "db6", "d6", "e6", "gb6", "ab6"},
	{"a4", "b4", "c5", "d5", "e5", "f5", "g5", "a5", "b5", "c6", "d6", "e6", "f6", "g6"},
	{"b4", "db5", "eb5", "e5", "gb5", "ab5", "bb5", "b5", "db6", "eb6", "e6", "gb6", "ab6", "bb6"},
	{"b4", "db5", "d5", "e5", "gb5", "g5", "a5", "b5", "db6", "d6", "e6", "gb6", "g6", "a6"},
	{"c4", "d4", "e4", "f4", "g4", "a4", "b4", "c5", "d5", "e5", "f5", "g5", "a5", "b5"},
	{"c4", "d4", "eb4", "f4", "g4", "ab4", "bb4", "c5", "d5", "eb5", "f5", "g5", "ab5", "bb5"},
}

var quotes = []string{
	"Everything happens for a reason.",
	"Even mistakes can teach lessons.",
	"The answer may not be as it seems.",
	"Do not be afraid to walk your own path.",
	"Do not be afraid to speak your own words.",
	"Mimicry can be useful, but not in excess.",
	"Seek the patterns of your opponent's words.",
	"There is more to a debate than memory.",
	"Repetition makes for a bad speaker.",
	"Pay attention to the color of your words.",
}
