package maze

// Path returns the shortest route through open cells from one cell to
// another, both ends included. It returns nil when either end is not open
// or no route exists.
func (g *Grid) Path(from, to Cell) []Cell {
	if g.State(from) != Open || g.State(to) != Open {
		return nil
	}

	queue := []Cell{from}
	cameFrom := map[Cell]Cell{from: from}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == to {
			var path []Cell
			for curr != from {
				path = append(path, curr)
				curr = cameFrom[curr]
			}
			path = append(path, from)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range orthogonal {
			next := curr.Add(d.Row, d.Col)
			if g.State(next) != Open {
				continue
			}
			if _, seen := cameFrom[next]; seen {
				continue
			}
			cameFrom[next] = curr
			queue = append(queue, next)
		}
	}
	return nil
}
