package safe

import (
	"RoomChat/logger"
)

// SafeGo starts a goroutine that recovers from panic, so that background work
// (presence mirroring, audit writes) can never take the gateway down.
func SafeGo(f func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("[SafeGo] panic recovered: %v", r)
			}
		}()
		f()
	}()
}
