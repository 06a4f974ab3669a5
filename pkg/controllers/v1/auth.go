package v1

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fintrack/backend/pkg/auth"
	"github.com/fintrack/backend/pkg/httputil"
	"github.com/fintrack/backend/pkg/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", co.Register)

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", co.Login)

	r.OPTIONS("/me", httputil.OptionsGet)
	r.GET("/me", auth.Authenticate(co.Tokens), GetMe)
}

// @Summary		Register
// @Description	Creates a new user and returns an access token for it
// @Tags			Authentication
// @Accept			json
// @Produce		json
// @Success		201		{object}	SessionResponse
// @Failure		400		{object}	SessionResponse
// @Failure		500		{object}	SessionResponse
// @Param			user	body		RegisterEditable	true	"User"
// @Router			/v1/auth/register [post]
func (co Controller) Register(c *gin.Context) {
	var editable RegisterEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	hash, err := auth.HashPassword(editable.Password)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	user := models.User{
		Name:         editable.Name,
		Email:        editable.Email,
		PasswordHash: hash,
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	co.respondSession(c, http.StatusCreated, user)
}

// @Summary		Log in
// @Description	Verifies the credentials, updates the trial state and returns an access token
// @Tags			Authentication
// @Accept			json
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		401			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			credentials	body		LoginEditable	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var editable LoginEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	email := strings.TrimSpace(editable.Email)
	if email == "" {
		e := errInvalidCredentials.Error()
		c.JSON(status(errInvalidCredentials), SessionResponse{
			Error: &e,
		})
		return
	}

	var user models.User
	err = models.DB.Where(&models.User{Email: email}).First(&user).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		err = errInvalidCredentials
	}

	if err == nil && auth.VerifyPassword(user.PasswordHash, editable.Password) != nil {
		err = errInvalidCredentials
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	user, err = co.refreshSubscription(c, user)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{
			Error: &e,
		})
		return
	}

	co.respondSession(c, http.StatusOK, user)
}

// @Summary		Current user
// @Description	Returns the authenticated user. This endpoint is available with an expired trial.
// @Tags			Authentication
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	UserResponse
// @Failure		403	{object}	UserResponse
// @Failure		500	{object}	UserResponse
// @Router			/v1/auth/me [get]
func GetMe(c *gin.Context) {
	user, err := authenticatedUser(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// RequireActiveSubscription aborts requests of users whose trial has expired.
//
// It must be used after auth.Authenticate.
func (co Controller) RequireActiveSubscription(c *gin.Context) {
	user, err := authenticatedUser(c)
	if err == nil {
		user, err = co.refreshSubscription(c, user)
	}

	if err == nil && user.SubscriptionStatus == models.SubscriptionExpired {
		err = errSubscriptionExpired
	}

	if err != nil {
		c.AbortWithStatusJSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Next()
}

// authenticatedUser loads the user the request was authenticated for.
func authenticatedUser(c *gin.Context) (models.User, error) {
	var user models.User
	err := models.DB.First(&user, auth.UserID(c)).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return user, errUserUnknown
	}

	return user, err
}

// refreshSubscription evaluates the trial policy for the user and
// persists a changed subscription status.
func (co Controller) refreshSubscription(c *gin.Context, user models.User) (models.User, error) {
	subscription := co.Trial.Evaluate(user, time.Now())
	if subscription == user.SubscriptionStatus {
		return user, nil
	}

	err := models.DB.Model(&user).Select("SubscriptionStatus").Updates(models.User{SubscriptionStatus: subscription}).Error
	if err != nil {
		return user, err
	}

	log.Info().Str("request-id", requestid.Get(c)).Uint("user", user.ID).Str("subscription", string(subscription)).Msg("subscription status changed")
	user.SubscriptionStatus = subscription
	return user, nil
}

// respondSession issues a token for the user and sends it together with the user.
func (co Controller) respondSession(c *gin.Context, code int, user models.User) {
	token, err := co.Tokens.Generate(user.ID, user.Email)
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{
			Error: &e,
		})
		return
	}

	c.JSON(code, SessionResponse{
		Data: &Session{
			Token: token,
			User:  newUser(user),
		},
	})
}
