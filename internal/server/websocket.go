package server

import (
	"net/http"
	"net/url"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

func (s *DevServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.allowedOrigins,
	})
	if err != nil {
		s.logger.Warn(r.Context(), err, "websocket upgrade failed")
		return
	}
	defer conn.CloseNow()

	events := s.registry.Watch()
	defer s.registry.UnWatch(events)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "server shutting down")
			return
		case event, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "registry closed")
				return
			}
			if err := wsjson.Write(ctx, conn, event); err != nil {
				return
			}
		}
	}
}

// checkOrigin validates the request origin: same-host requests and the
// configured allowed origins pass, anything else is rejected before the
// upgrade.
func (s *DevServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Host == r.Host {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if originURL.Host == allowed || origin == allowed {
			return true
		}
	}
	return false
}
