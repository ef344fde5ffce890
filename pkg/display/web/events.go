package web

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	// Frame is a full frame: cache index (uint16) then frame data.
	Frame Type = iota
	// FrameSkip reports the number of identical frames (uint32) not
	// sent since the last frame.
	FrameSkip
	// FrameCache repeats the frame at a cache index (uint16).
	FrameCache
	// FrameCacheSync sends the whole frame cache to a new client, as
	// a sequence of length (uint16), index (uint16) and data.
	FrameCacheSync
	// FrameSync sends the latest frame to a new client.
	FrameSync
	// ClientInfo sends the client its ID and the frame settings.
	ClientInfo
	// ServerInfo reports the ID and latency (uint16, ms) of every
	// connected client.
	ServerInfo
)

// Flags sent in a ClientInfo message.
const (
	compressed uint8 = 1 << iota
)

// Closing is sent by a client that is about to disconnect. Every
// other client message is a joypad event, the button followed by 1
// for a press and 0 for a release.
const Closing = 255
