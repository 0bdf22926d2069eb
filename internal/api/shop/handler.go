package shop

import "linguaapi/internal/api"

type Handler struct {
	*api.Handler
}
