package shop

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"linguaapi/internal/api"
	"linguaapi/pkg/shop"

	"github.com/redis/go-redis/v9"
)

const catalogCacheKey = "shop:catalog"

// GetCatalog serves the item catalog from a redis-cached JSON snapshot,
// rebuilding it from the active payment settings on a miss.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {

	ctx := r.Context()
	resParams := &api.ResParams{W: w, R: r}

	var items []shop.Item

	cached, err := h.RedisCli.Get(ctx, catalogCacheKey).Result()
	if err == nil {
		if err := json.Unmarshal([]byte(cached), &items); err != nil {
			resParams.Code = http.StatusInternalServerError
			resParams.Err = err
			h.Res(resParams)
			return
		}
		resParams.ResData = &struct {
			Items []shop.Item `json:"items"`
		}{Items: items}
		resParams.Code = http.StatusOK
		h.Res(resParams)
		return
	} else if !errors.Is(err, redis.Nil) {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	// cache miss, rebuild from settings
	settings, err := h.GetActiveSettings(ctx)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	items = shop.Catalog(settings)

	snapshot, err := json.Marshal(items)
	if err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}
	if err := h.RedisCli.Set(ctx, catalogCacheKey, snapshot, 5*time.Minute).Err(); err != nil {
		resParams.Code = http.StatusInternalServerError
		resParams.Err = err
		h.Res(resParams)
		return
	}

	resParams.ResData = &struct {
		Items []shop.Item `json:"items"`
	}{Items: items}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
