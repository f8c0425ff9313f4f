package world

import (
	"sort"
	"strings"

	"github.com/oakhaven/emberquest/internal/entities"
)

type point struct {
	x, y int
}

var directionDeltas = map[entities.Direction]point{
	entities.North: {0, -1},
	entities.South: {0, 1},
	entities.East:  {1, 0},
	entities.West:  {-1, 0},
}

type edge struct {
	a, b point
}

func normalizeEdge(a, b point) edge {
	if b.y < a.y || (b.y == a.y && b.x < a.x) {
		a, b = b, a
	}
	return edge{a, b}
}

// RenderMap draws the discovered world as an ASCII grid centered on the
// player. Locations are laid out by walking exits outward from the player's
// position; undiscovered neighbors of known locations show as "?". A
// location that cannot be placed because another already claimed its cell
// is simply left off the map.
func (s *State) RenderMap(player *entities.Player) string {
	start := player.LocationID
	if _, ok := s.rooms[start]; !ok {
		return ""
	}

	positions := map[string]point{start: {0, 0}}
	occupied := map[point]string{{0, 0}: start}
	edges := map[edge]bool{}

	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if !player.Discovered[id] {
			continue // known to exist, but not yet visited
		}
		room, ok := s.rooms[id]
		if !ok {
			continue
		}
		at := positions[id]
		for _, dir := range []entities.Direction{entities.North, entities.South, entities.East, entities.West} {
			dest, ok := s.neighbor(room.Location, dir)
			if !ok {
				continue
			}
			delta := directionDeltas[dir]
			cell := point{at.x + delta.x, at.y + delta.y}
			if existing, placed := positions[dest]; placed {
				if existing == cell {
					edges[normalizeEdge(at, cell)] = true
				}
				continue
			}
			if _, taken := occupied[cell]; taken {
				continue
			}
			positions[dest] = cell
			occupied[cell] = dest
			edges[normalizeEdge(at, cell)] = true
			queue = append(queue, dest)
		}
	}

	return s.draw(player, positions, edges)
}

// neighbor resolves the destination in a direction, counting conditional
// exits so gated areas still appear as "?" once their neighbor is known.
func (s *State) neighbor(loc *entities.Location, dir entities.Direction) (string, bool) {
	if dest, ok := loc.Exits[dir]; ok {
		return dest, true
	}
	for _, exit := range loc.ConditionalExits {
		if exit.Direction == dir {
			return exit.DestinationID, true
		}
	}
	return "", false
}

func (s *State) draw(player *entities.Player, positions map[string]point, edges map[edge]bool) string {
	minX, minY, maxX, maxY := 0, 0, 0, 0
	for _, p := range positions {
		if p.x < minX {
			minX = p.x
		}
		if p.x > maxX {
			maxX = p.x
		}
		if p.y < minY {
			minY = p.y
		}
		if p.y > maxY {
			maxY = p.y
		}
	}

	// Each cell is 3 characters wide with a 1-character connector column,
	// and cell rows alternate with connector rows.
	width := (maxX-minX)*4 + 3
	cellByPoint := make(map[point]string, len(positions))
	for id, p := range positions {
		cellByPoint[p] = id
	}

	var lines []string
	for y := minY; y <= maxY; y++ {
		row := make([]byte, width)
		for i := range row {
			row[i] = ' '
		}
		for x := minX; x <= maxX; x++ {
			col := (x - minX) * 4
			id, ok := cellByPoint[point{x, y}]
			if !ok {
				continue
			}
			copy(row[col:], s.cellSymbol(player, id))
			if edges[normalizeEdge(point{x, y}, point{x + 1, y})] {
				row[col+3] = '-'
			}
		}
		lines = append(lines, strings.TrimRight(string(row), " "))

		if y == maxY {
			break
		}
		conn := make([]byte, width)
		for i := range conn {
			conn[i] = ' '
		}
		blank := true
		for x := minX; x <= maxX; x++ {
			if edges[normalizeEdge(point{x, y}, point{x, y + 1})] {
				conn[(x-minX)*4+1] = '|'
				blank = false
			}
		}
		if blank {
			lines = append(lines, "")
		} else {
			lines = append(lines, strings.TrimRight(string(conn), " "))
		}
	}

	lines = append(lines, "", "[P] you  [C] city  [W] wilds  [D] dungeon  [S] swamp  [V] volcanic  [R] room  ? unexplored")
	return strings.Join(lines, "\n")
}

func (s *State) cellSymbol(player *entities.Player, id string) string {
	if id == player.LocationID {
		return "[P]"
	}
	if !player.Discovered[id] {
		return " ? "
	}
	room, ok := s.rooms[id]
	if !ok {
		return " ? "
	}
	switch room.Location.Kind {
	case entities.LocationCity:
		return "[C]"
	case entities.LocationWilderness:
		return "[W]"
	case entities.LocationDungeon:
		return "[D]"
	case entities.LocationSwamp:
		return "[S]"
	case entities.LocationVolcanic:
		return "[V]"
	default:
		return "[R]"
	}
}

// DiscoveredNames lists the names of every discovered location, sorted,
// for the journal view.
func (s *State) DiscoveredNames(player *entities.Player) []string {
	var names []string
	for id := range player.Discovered {
		if room, ok := s.rooms[id]; ok {
			names = append(names, room.Location.Name)
		}
	}
	sort.Strings(names)
	return names
}
