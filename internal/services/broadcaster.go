package services

// Broadcaster pushes an event to every connected realtime client. The
// websocket hub implements it; services stay unaware of the transport.
type Broadcaster interface {
	Broadcast(event string, payload any)
}
