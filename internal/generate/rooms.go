package generate

import "cyber-rogue/internal/gamemap"

// placeRooms rejection-samples up to MaxRooms non-overlapping rooms from
// 2*MaxRooms attempts, carving each and tunnelling it to the previous one.
func placeRooms(g *gamemap.Grid, cfg Config) []gamemap.Rect {
	var rooms []gamemap.Rect
	span := cfg.RoomMax - cfg.RoomMin + 1
	for i := 0; i < cfg.MaxRooms*2 && len(rooms) < cfg.MaxRooms; i++ {
		w := intn(cfg.Rand, span) + cfg.RoomMin
		h := intn(cfg.Rand, span) + cfg.RoomMin
		x := intn(cfg.Rand, cfg.Width-w-2) + 1
		y := intn(cfg.Rand, cfg.Height-h-2) + 1
		room := gamemap.Rect{X: x, Y: y, W: w, H: h}

		if overlapsAny(room, rooms) {
			continue
		}
		g.CarveRoom(room)
		if len(rooms) > 0 {
			prev := rooms[len(rooms)-1]
			carveCorridor(g, prev.Center(), room.Center(), cfg)
		}
		rooms = append(rooms, room)
	}
	return rooms
}

func overlapsAny(r gamemap.Rect, rooms []gamemap.Rect) bool {
	for _, other := range rooms {
		if r.Intersects(other) {
			return true
		}
	}
	return false
}
