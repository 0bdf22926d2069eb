package plans

import "linguaapi/internal/api"

type Handler struct {
	*api.Handler
}
