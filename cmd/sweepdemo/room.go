package main

import "github.com/milk9111/sweep/tiles"

const tileSize = 32

// room is 40x22 tiles, which fills the base resolution.
var room = []string{
	"########################################",
	"#......................................#",
	"#......................................#",
	"#.......####...........................#",
	"#.......####...............^^^.........#",
	"#..........................###.........#",
	"#......................................#",
	"#...............#......................#",
	"#...............#..........#...........#",
	"#...............#..........#...........#",
	"#......^........#..........#...........#",
	"#......#........#..........#...........#",
	"#......#...................#...........#",
	"#......#...................#####.......#",
	"#......#...............................#",
	"#......................................#",
	"#..............######..................#",
	"#......................................#",
	"#.................................^....#",
	"#...#.............................#....#",
	"#...#..................^^^^.......#....#",
	"########################################",
}

func newRoom() tiles.Grid {
	return tiles.FromRows(tileSize, room...)
}
