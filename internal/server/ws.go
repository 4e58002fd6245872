package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ayusman/vision3/internal/analysis"
)

// writeWait bounds how long a reply may take to reach the client.
const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Front end may be served from another origin
	},
}

// WSConfig bounds what a single client may send.
type WSConfig struct {
	// MaxMessageBytes closes the connection on larger messages (0: unlimited).
	MaxMessageBytes int64

	// RateLimit is the sustained number of frames per second answered per connection.
	// Posture frames beyond it are dropped unanswered; other messages get an ERROR
	// reply. 0 disables limiting.
	RateLimit float64
	Burst     int
}

// AnalyzeHandler answers posture and joint analysis messages over a WebSocket. Each
// frame received is answered on the same connection in arrival order.
type AnalyzeHandler struct {
	service *analysis.Service
	config  WSConfig
	logger  *zap.Logger
}

// NewAnalyzeHandler creates a new AnalyzeHandler backed by the given service.
func NewAnalyzeHandler(service *analysis.Service, config WSConfig, logger *zap.Logger) *AnalyzeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyzeHandler{service: service, config: config, logger: logger}
}

// newLimiter returns nil when rate limiting is disabled.
func (h *AnalyzeHandler) newLimiter() *rate.Limiter {
	if h.config.RateLimit <= 0 {
		return nil
	}
	burst := h.config.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(h.config.RateLimit), burst)
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.config.MaxMessageBytes > 0 {
		conn.SetReadLimit(h.config.MaxMessageBytes)
	}

	log := h.logger.With(zap.String("conn", uuid.NewString()))
	log.Info("client connected", zap.String("remote", r.RemoteAddr))

	limiter := h.newLimiter()
	var answered, dropped int

	defer func() {
		log.Info("client disconnected", zap.Int("answered", answered), zap.Int("dropped", dropped))
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		limited := limiter != nil && !limiter.Allow()

		var reply []byte
		if limited {
			dropped++
			var ok bool
			reply, ok = h.service.Reject(data, analysis.ErrRateLimited)
			log.Debug("frame over rate limit", zap.Int("dropped", dropped), zap.Bool("rejected", ok))
			if !ok {
				continue
			}
		} else {
			reply = h.service.Handle(r.Context(), data)
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			log.Warn("websocket write failed", zap.Error(err))
			return
		}
		if !limited {
			answered++
		}
	}
}
