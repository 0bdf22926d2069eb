package user

import (
	"errors"
	"net/http"
	"time"

	"linguaapi/internal/api"
	"linguaapi/pkg/config"
	"linguaapi/pkg/schemas"
	"linguaapi/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func (h *Handler) GetUserData(w http.ResponseWriter, r *http.Request) {

	resParams := &api.ResParams{W: w, R: r}
	ctx := r.Context()

	authToken, err := utils.ValidateAuthToken(r)
	if err != nil {
		resParams.Err = err
		resParams.Code = http.StatusUnauthorized
		h.Res(resParams)
		return
	}

	uid, err := authToken.GetUidObjectId()
	if err != nil {
		resParams.Err = err
		resParams.Code = http.StatusInternalServerError
		h.Res(resParams)
		return
	}

	// refresh token if expiring soon
	authToken.Refresh()
	token, err := authToken.Sign()
	if err != nil {
		resParams.Err = err
		resParams.Code = http.StatusInternalServerError
		h.Res(resParams)
		return
	}

	// get user data, provisioning a document with starter balances on
	// first authenticated access
	var user schemas.User
	usersColl := h.MongoDB.Collection("users")
	err = usersColl.FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {

		settings, serr := h.GetActiveSettings(ctx)
		if serr != nil {
			resParams.Err = serr
			resParams.Code = http.StatusInternalServerError
			h.Res(resParams)
			return
		}

		user = schemas.User{
			Id:               uid,
			Ctime:            time.Now().UTC(),
			Username:         utils.NewUsername(),
			Role:             "user",
			Gems:             settings.Currencies.Gems.StarterBalance,
			Hearts:           settings.Currencies.Hearts.MaxHearts,
			MaxHearts:        settings.Currencies.Hearts.MaxHearts,
			CompletedLessons: []string{},
			QuestProgress:    []schemas.QuestProgress{},
		}
		if user.MaxHearts == 0 {
			user.MaxHearts = config.DEFAULT_MAX_HEARTS
			user.Hearts = config.DEFAULT_MAX_HEARTS
		}
		if _, ierr := usersColl.InsertOne(ctx, &user); ierr != nil && !mongo.IsDuplicateKeyError(ierr) {
			resParams.Err = ierr
			resParams.Code = http.StatusInternalServerError
			h.Res(resParams)
			return
		}

	} else if err != nil {
		resParams.Err = err
		resParams.Code = http.StatusInternalServerError
		h.Res(resParams)
		return
	}

	resParams.ResData = &struct {
		Token     string `json:"token"`
		Username  string `json:"username"`
		Locale    string `json:"locale"`
		Gems      int    `json:"gems"`
		Hearts    int    `json:"hearts"`
		MaxHearts int    `json:"maxHearts"`
		Xp        int    `json:"xp"`
		Streak    int    `json:"streak"`
		SubActive bool   `json:"subActive"`
	}{
		Token:     token,
		Username:  user.Username,
		Locale:    user.Locale,
		Gems:      user.Gems,
		Hearts:    user.Hearts,
		MaxHearts: user.MaxHearts,
		Xp:        user.Xp,
		Streak:    user.Streak,
		SubActive: user.Subscription.IsActive,
	}
	resParams.Code = http.StatusOK
	h.Res(resParams)

}
