// Package session keeps the per-user state of the web app on top of
// gin-contrib/sessions: the logged in user, flash messages, the random
// play game and the go-back URL.
package session

import (
	"encoding/gob"
	"fmt"

	"github.com/josetomecore/P6-Quiz/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
)

const (
	CookieName = "quiz_session"

	// ContextUserKey holds the *services.Identity resolved for the request.
	ContextUserKey = "user"

	keyUser    = "user"
	keyPool    = "pool"
	keyIndex   = "index"
	keyScore   = "score"
	keyBackURL = "back_url"
)

const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashError   = "error"
)

var flashLevels = []string{FlashSuccess, FlashInfo, FlashError}

func init() {
	gob.Register(services.Identity{})
	gob.Register([]uint{})
}

func NewStore(kind string, secret []byte) (sessions.Store, error) {
	var store sessions.Store
	switch kind {
	case "memory":
		store = memstore.NewStore(secret)
	case "cookie":
		store = cookie.NewStore(secret)
	default:
		return nil, fmt.Errorf("unsupported session store %q", kind)
	}
	store.Options(sessions.Options{Path: "/", HttpOnly: true, MaxAge: 4 * 60 * 60})
	return store, nil
}

func Middleware(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(CookieName, store)
}

func Save(c *gin.Context) error {
	return sessions.Default(c).Save()
}

// StoredUser is the user logged in through the login form, if any.
func StoredUser(c *gin.Context) *services.Identity {
	user, ok := sessions.Default(c).Get(keyUser).(services.Identity)
	if !ok {
		return nil
	}
	return &user
}

func SetUser(c *gin.Context, user services.Identity) {
	sessions.Default(c).Set(keyUser, user)
}

func ClearUser(c *gin.Context) {
	sessions.Default(c).Delete(keyUser)
}

// CurrentUser is the identity middleware resolved for this request,
// from the session or a bearer token.
func CurrentUser(c *gin.Context) *services.Identity {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*services.Identity); ok {
			return user
		}
	}
	return nil
}

func Flash(c *gin.Context, level, message string) {
	sessions.Default(c).AddFlash(message, level)
}

// Flashes pops all pending flash messages grouped by level.
func Flashes(c *gin.Context) map[string][]string {
	sess := sessions.Default(c)
	out := make(map[string][]string)
	for _, level := range flashLevels {
		for _, msg := range sess.Flashes(level) {
			if s, ok := msg.(string); ok {
				out[level] = append(out[level], s)
			}
		}
	}
	return out
}

func LoadGame(c *gin.Context) *services.GameState {
	sess := sessions.Default(c)
	state := &services.GameState{}
	if pool, ok := sess.Get(keyPool).([]uint); ok {
		state.Pool = pool
	}
	if index, ok := sess.Get(keyIndex).(int); ok {
		state.Index = index
	}
	if score, ok := sess.Get(keyScore).(int); ok {
		state.Score = score
	}
	return state
}

// SaveGame writes the game back and persists the session immediately so
// the next request sees the updated pool. Only quiz ids are stored, which
// keeps the game within a cookie store's size limit.
func SaveGame(c *gin.Context, state *services.GameState) error {
	sess := sessions.Default(c)
	sess.Set(keyPool, state.Pool)
	sess.Set(keyIndex, state.Index)
	sess.Set(keyScore, state.Score)
	return sess.Save()
}

func ClearGame(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Delete(keyPool)
	sess.Delete(keyIndex)
	sess.Delete(keyScore)
}

func SetBackURL(c *gin.Context, url string) {
	sessions.Default(c).Set(keyBackURL, url)
}

func BackURL(c *gin.Context) string {
	url, _ := sessions.Default(c).Get(keyBackURL).(string)
	return url
}
