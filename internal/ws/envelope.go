package ws

// envelope is the wire format of the WebSocket transport. Payload carries an
// opaque, already-serialized value.
type envelope struct {
	Type    string `json:"type"`
	Channel string `json:"channel,omitempty"`
	Payload []byte `json:"payload,omitempty"`
}

const (
	typeSubscribe = "subscribe"
	typePublish   = "publish"
	typePing      = "ping"
	typePong      = "pong"
)
