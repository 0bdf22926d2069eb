package quests

import "linguaapi/internal/api"

type Handler struct {
	*api.Handler
}
