// Package feed streams live runs to websocket spectators.
package feed

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"cyber-rogue/assets"
	"cyber-rogue/internal/gamemap"
	"cyber-rogue/internal/state"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
	frameMessages  = 3
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Frame is one spectator update. Map holds one string per grid row, each
// cell drawn as the glyph the player currently sees there.
type Frame struct {
	Player     string           `json:"player"`
	Level      int              `json:"level"`
	Sector     string           `json:"sector"`
	Difficulty state.Difficulty `json:"difficulty"`
	Status     state.Status     `json:"status"`
	Health     int              `json:"health"`
	MaxHealth  int              `json:"maxHealth"`
	Score      int              `json:"score"`
	Credits    int              `json:"credits"`
	Messages   []string         `json:"messages"`
	Map        []string         `json:"map"`
}

// Snapshot builds the spectator frame for player's state s.
func Snapshot(player string, s *state.GameState) Frame {
	msgs := s.Log.Entries()
	f := Frame{
		Player:     player,
		Level:      s.Level,
		Sector:     assets.SectorName(s.Level),
		Difficulty: s.Difficulty,
		Status:     s.Status,
		Health:     s.Player.Health,
		MaxHealth:  s.Player.MaxHealth,
		Score:      s.Score(),
		Credits:    s.Player.Gold,
		Messages:   slices.Clone(msgs[:min(frameMessages, len(msgs))]),
	}
	if s.Grid != nil {
		f.Map = mapRows(s)
	}
	return f
}

func mapRows(s *state.GameState) []string {
	g := s.Grid
	theme := assets.Theme(s.Level)
	cells := make([]string, g.Cells())
	for i := range cells {
		p := g.PosOf(i)
		visible := s.Visible.Has(i)
		switch tile := g.At(p.X, p.Y); {
		case !visible && !s.Visited[i]:
			cells[i] = "  "
		case tile == gamemap.TileLockedDoor:
			cells[i] = assets.GlyphDoor
		case tile == gamemap.TileWall && visible:
			cells[i] = theme.Wall
		case tile == gamemap.TileWall:
			cells[i] = theme.DimWall
		case visible:
			cells[i] = theme.Floor
		default:
			cells[i] = theme.DimFloor
		}
	}
	put := func(p gamemap.Pos, glyph string) {
		if g.InBounds(p.X, p.Y) {
			cells[g.Index(p)] = glyph
		}
	}
	if s.Stairs != nil && s.StairsDiscovered && s.IsVisited(*s.Stairs) {
		put(*s.Stairs, assets.GlyphStairsDown)
	}
	for _, it := range s.Items {
		if s.IsVisible(it.Pos) {
			put(it.Pos, assets.ItemGlyph(it))
		}
	}
	for _, e := range s.Enemies {
		if s.IsVisible(e.Pos) {
			put(e.Pos, e.Glyph)
		}
	}
	put(s.Player.Pos, assets.GlyphPlayer)

	rows := make([]string, g.Height)
	for y := range rows {
		row := make([]byte, 0, g.Width*4)
		for x := 0; x < g.Width; x++ {
			row = append(row, cells[y*g.Width+x]...)
		}
		rows[y] = string(row)
	}
	return rows
}

// ─── hub ────────────────────────────────────────────────────────────────────

// Hub fans published runs out to connected spectators. It is safe for
// concurrent use by many game sessions.
type Hub struct {
	log logrus.FieldLogger

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  map[string][]byte
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	player string // empty watches every run
	send   chan []byte
}

// NewHub creates an empty hub.
func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		log:     log.WithField("component", "feed"),
		clients: make(map[*client]struct{}),
		latest:  make(map[string][]byte),
	}
}

// Publish sends player's new state to every spectator watching it. Slow
// spectators miss frames rather than stall the game.
func (h *Hub) Publish(player string, s *state.GameState) {
	msg, err := json.Marshal(Snapshot(player, s))
	if err != nil {
		h.log.WithError(err).Warn("encode frame failed")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest[player] = msg
	for c := range h.clients {
		if c.player != "" && c.player != player {
			continue
		}
		select {
		case c.send <- msg:
		default:
		}
	}
}

// Forget drops player's last frame once their session ends.
func (h *Hub) Forget(player string) {
	h.mu.Lock()
	delete(h.latest, player)
	h.mu.Unlock()
}

// Players lists the players with a live frame, sorted.
func (h *Hub) Players() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.latest))
	for p := range h.latest {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// ServeHTTP upgrades the request to a spectator connection. The optional
// "player" query parameter limits the stream to one run.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Debug("websocket upgrade failed")
		return
	}
	c := &client{hub: h, conn: conn, player: r.URL.Query().Get("player"), send: make(chan []byte, sendBuffer)}
	h.register(c)
	h.log.WithFields(logrus.Fields{"remote": r.RemoteAddr, "player": c.player}).Info("spectator connected")
	go c.writePump()
	c.readPump()
}

// ServePlayers writes the live player list as JSON.
func (h *Hub) ServePlayers(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Players()); err != nil {
		h.log.WithError(err).Debug("write player list failed")
	}
}

// register adds c and queues the latest frames it is watching.
func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	for player, msg := range h.latest {
		if c.player != "" && c.player != player {
			continue
		}
		select {
		case c.send <- msg:
		default:
		}
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump discards spectator input, keeping the read deadline alive so
// pongs and close frames are seen.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).Debug("spectator read failed")
			}
			return
		}
	}
}

// writePump sends queued frames and pings until the send channel closes.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.hub.log.WithError(err).Debug("spectator write failed")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
