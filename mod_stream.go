package lumen

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// StreamModule attaches a WebSocket presenter: every finished frame is
// broadcast as one JSON batch to all subscribed clients, and clients may
// write control messages back through the ControlState setters. This is the
// "external presentation layer" and "external signal producer" collaborators
// made concrete for demos and tests; the simulation core never depends on it.
//
// Requires ParticlesModule (for the PresenterSet) and ControlModule.
type StreamModule struct {
	// Addr to listen on (e.g. ":8080"). Empty means no listener is started;
	// mount the StreamServer resource's Handler() on an existing mux instead.
	Addr string

	// Every broadcasts only every Nth frame; zero means every frame.
	Every uint64
}

type framePayload struct {
	Type      string             `json:"type"`
	Frame     uint64             `json:"frame"`
	Count     int                `json:"count"`
	Instances []ParticleInstance `json:"instances"`
}

// controlMessage is the inbound wire format. Absent fields leave the
// corresponding control value untouched.
type controlMessage struct {
	Type      string      `json:"type"`
	Template  *string     `json:"template,omitempty"`
	Expansion *float32    `json:"expansion,omitempty"`
	Color     *[4]float32 `json:"color,omitempty"`
	ColorName *string     `json:"colorName,omitempty"`
	Anchor    *[3]float32 `json:"anchor,omitempty"`
}

type streamClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

// StreamServer fans frames out to WebSocket clients and applies their
// control messages. Slow clients drop frames rather than stalling the
// simulation.
type StreamServer struct {
	log      Logger
	ctl      *ControlState
	every    uint64
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*streamClient
}

func NewStreamServer(log Logger, ctl *ControlState, every uint64) *StreamServer {
	if log == nil {
		log = NewNopLogger()
	}
	if every == 0 {
		every = 1
	}
	return &StreamServer{
		log:   log,
		ctl:   ctl,
		every: every,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*streamClient),
	}
}

func (m StreamModule) Install(app *App, cmd *Commands) {
	set := resourceOf[PresenterSet](app)
	if set == nil {
		panic("StreamModule requires ParticlesModule")
	}

	server := NewStreamServer(app.Logger(), resourceOf[ControlState](app), m.Every)
	set.Attach(server)
	cmd.AddResources(server)

	if m.Addr != "" {
		go func() {
			if err := http.ListenAndServe(m.Addr, server.Handler()); err != nil {
				server.log.Errorf("stream: listener on %s failed: %v", m.Addr, err)
			}
		}()
		server.log.Infof("stream: listening on %s", m.Addr)
	}
}

// Handler upgrades HTTP requests into frame-stream subscriptions.
func (s *StreamServer) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Warnf("stream: upgrade failed: %v", err)
			return
		}

		client := &streamClient{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan []byte, 8),
			done: make(chan struct{}),
		}

		s.mu.Lock()
		s.clients[client.id] = client
		s.mu.Unlock()
		s.log.Infof("stream: client %s connected", client.id)

		go s.writeLoop(client)
		s.readLoop(client)
	})
}

// ClientCount reports the number of connected subscribers.
func (s *StreamServer) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// PresentFrame implements Presenter: one JSON batch per broadcast frame.
func (s *StreamServer) PresentFrame(frame uint64, instances []ParticleInstance) {
	if frame%s.every != 0 {
		return
	}

	s.mu.Lock()
	if len(s.clients) == 0 {
		s.mu.Unlock()
		return
	}
	targets := make([]*streamClient, 0, len(s.clients))
	for _, c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()

	payload, err := json.Marshal(framePayload{
		Type:      "frame",
		Frame:     frame,
		Count:     len(instances),
		Instances: instances,
	})
	if err != nil {
		s.log.Errorf("stream: frame encode failed: %v", err)
		return
	}

	for _, c := range targets {
		select {
		case c.send <- payload:
		default:
			// Client is behind; skip this frame for it.
		}
	}
}

func (s *StreamServer) writeLoop(c *streamClient) {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.drop(c, err)
				return
			}
		}
	}
}

func (s *StreamServer) readLoop(c *streamClient) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			s.drop(c, err)
			return
		}

		var msg controlMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Warnf("stream: client %s sent malformed message: %v", c.id, err)
			continue
		}
		if msg.Type == "control" {
			s.applyControl(msg)
		}
	}
}

// applyControl writes the present fields through the control setters. The
// producer side imposes no validation; the engine defends itself.
func (s *StreamServer) applyControl(msg controlMessage) {
	if s.ctl == nil {
		return
	}
	if msg.Template != nil {
		s.ctl.SetTemplate(TemplateId(*msg.Template))
	}
	if msg.Expansion != nil {
		s.ctl.SetExpansion(*msg.Expansion)
	}
	if msg.Color != nil {
		s.ctl.SetTargetColor(*msg.Color)
	} else if msg.ColorName != nil {
		s.ctl.SetTargetColor(NamedColor(*msg.ColorName))
	}
	if msg.Anchor != nil {
		a := *msg.Anchor
		s.ctl.SetAnchor(mgl32.Vec3{a[0], a[1], a[2]})
	}
}

func (s *StreamServer) drop(c *streamClient, err error) {
	s.mu.Lock()
	delete(s.clients, c.id)
	s.mu.Unlock()

	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
		s.log.Infof("stream: client %s disconnected: %v", c.id, err)
	})
}
