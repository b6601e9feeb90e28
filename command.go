package tambour

// Command word layout. The low byte holds the core action, the upper three
// bytes carry optional thread, needle and order metadata. Metadata values
// are stored incremented by one so that a zero byte means unset.
const (
	CommandMask uint32 = 0x0000_00FF
	ThreadMask  uint32 = 0x0000_FF00
	NeedleMask  uint32 = 0x00FF_0000
	OrderMask   uint32 = 0xFF00_0000
)

// Core actions.
const (
	STITCH uint32 = iota
	JUMP
	TRIM
	STOP
	END
	COLOR_CHANGE
	SEQUIN_MODE
	SEQUIN_EJECT
)

// Machine specific actions passed through by the transcoder.
const (
	NEEDLE_SET uint32 = 0x09
	SLOW       uint32 = 0x0B
	FAST       uint32 = 0x0C
)

// NoValue marks an unset metadata field in EncodeCommand and DecodeCommand.
const NoValue = -1

// Action returns the core action of a command word.
func Action(cmd uint32) uint32 {
	return cmd & CommandMask
}

// EncodeCommand packs an action together with its thread, needle and order
// metadata. Pass NoValue for fields that should stay unset.
func EncodeCommand(action uint32, thread, needle, order int) uint32 {
	cmd := action & CommandMask
	cmd |= packField(thread) << 8
	cmd |= packField(needle) << 16
	cmd |= packField(order) << 24
	return cmd
}

// DecodeCommand is the inverse of EncodeCommand.
func DecodeCommand(cmd uint32) (action uint32, thread, needle, order int) {
	action = cmd & CommandMask
	thread = unpackField((cmd & ThreadMask) >> 8)
	needle = unpackField((cmd & NeedleMask) >> 16)
	order = unpackField((cmd & OrderMask) >> 24)
	return
}

// WithNeedle replaces the needle field of a command word.
func WithNeedle(cmd uint32, needle int) uint32 {
	return cmd&^NeedleMask | packField(needle)<<16
}

func packField(v int) uint32 {
	if v < 0 || v > 0xFE {
		return 0
	}
	return uint32(v + 1)
}

func unpackField(v uint32) int {
	if v == 0 {
		return NoValue
	}
	return int(v) - 1
}

var commandNames = map[uint32]string{
	STITCH:       "STITCH",
	JUMP:         "JUMP",
	TRIM:         "TRIM",
	STOP:         "STOP",
	END:          "END",
	COLOR_CHANGE: "COLOR_CHANGE",
	SEQUIN_MODE:  "SEQUIN_MODE",
	SEQUIN_EJECT: "SEQUIN_EJECT",
	NEEDLE_SET:   "NEEDLE_SET",
	SLOW:         "SLOW",
	FAST:         "FAST",
}

// CommandName returns the name of the core action of cmd.
func CommandName(cmd uint32) string {
	if name, ok := commandNames[cmd&CommandMask]; ok {
		return name
	}
	return "UNKNOWN"
}
