package usecase

import "time"

// カートIDの採番。本番はcrypto/randベースのUUID（cmd/api側で注入）。
type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}
