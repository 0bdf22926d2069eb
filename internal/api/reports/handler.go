package reports

import "linguaapi/internal/api"

type Handler struct {
	*api.Handler
}
