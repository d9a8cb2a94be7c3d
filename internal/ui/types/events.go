package types

import (
	"snakeegg/internal/domain"
)

type UIEvent struct {
	Type    UIEventType
	Payload interface{}
}

type UIEventType int

const (
	UIEventNone UIEventType = iota
	UIEventStartGame
	UIEventRestartGame
	UIEventCloseGame
	UIEventApplyConfig
	UIEventToggleSound
	UIEventQuit
	UIEventShowConfig
	UIEventShowMenu
)

type ApplyConfigData struct {
	Config *domain.GameConfig
}
