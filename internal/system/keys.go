package system

// Key codes from linux/input-event-codes.h.
const (
	KeyEsc   uint16 = 1
	KeyQ     uint16 = 16
	KeyEnter uint16 = 28
	KeySpace uint16 = 57
	KeyF4    uint16 = 62
	KeyUp    uint16 = 103
	KeyLeft  uint16 = 105
	KeyRight uint16 = 106
	KeyDown  uint16 = 108
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}
