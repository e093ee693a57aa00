package networking

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// MessageHandler abstracts one websocket connection into channel-level
// message plumbing:
//   - GetReader is where inbound messages are produced UNTIL the socket is
//     closed, then the channel is CLOSED for you - never close it yourself.
//   - GetWriter is drained into the socket; closing it shuts the connection
//     down gracefully.
//
// Messages are websocket.TextMessage - the media protocol is JSON.
type MessageHandler interface {
	GetReader() chan<- []byte
	GetWriter() <-chan []byte
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust the origin check as needed
	},
}

func clientIPAddress(r *http.Request) string {
	// Prefer proxy headers when present.
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		return forwardedFor
	}
	return r.RemoteAddr
}

// NewWebsocketHandlerFunc upgrades each inbound request and bridges the
// connection to a fresh MessageHandler from createHandler.
func NewWebsocketHandlerFunc(createHandler func() MessageHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler := createHandler()
		log.Info().Str("client_ip", clientIPAddress(r)).Str("request_url", r.URL.String()).Msg("establishing websocket connection")

		defer func() { close(handler.GetReader()) }()

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer func() {
			if closeErr := ws.Close(); closeErr != nil {
				log.Debug().Err(closeErr).Msg("websocket close")
			}
		}()

		// Writer side runs on its own goroutine so slow consumers never
		// block reads.
		go func() {
			for {
				msg, ok := <-handler.GetWriter()
				if !ok {
					log.Info().Msg("writer channel closed, closing websocket gracefully")
					closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
					if err := ws.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
						log.Debug().Err(err).Msg("websocket graceful close write failed")
					}
					return
				}
				if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
					if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
						log.Info().Msg("too late to write message, websocket already closed")
					} else {
						log.Error().Err(err).Msg("websocket write failed")
					}
					// Keep draining until the producer closes the
					// channel - otherwise it blocks forever on a full
					// buffer once the peer is gone.
					for range handler.GetWriter() {
					}
					return
				}
			}
		}()

		for {
			_, msg, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
					log.Info().Msg("websocket closed normally by the other party")
				} else {
					log.Error().Err(err).Msg("websocket read failed")
				}
				// Nothing good ever follows a broken websocket read.
				return
			}
			handler.GetReader() <- msg
		}
	}
}
