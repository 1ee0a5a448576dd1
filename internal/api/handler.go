package api

import (
	"github.com/scoinhq/scoin-backend/internal/notify"
	"github.com/scoinhq/scoin-backend/internal/repos/items"
	"github.com/scoinhq/scoin-backend/internal/repos/symbols"
	"github.com/scoinhq/scoin-backend/internal/repos/users"
	"github.com/scoinhq/scoin-backend/internal/services/auth"
	"github.com/scoinhq/scoin-backend/internal/services/engine"
)

// Handler bundles the dependencies of the HTTP surface.
type Handler struct {
	engine     *engine.Engine
	auth       *auth.Service
	users      users.Users
	items      items.Items
	symbols    symbols.Symbols
	notifier   notify.Notifier
	uploadsDir string
}

func NewHandler(
	eng *engine.Engine,
	authSvc *auth.Service,
	usersRepo users.Users,
	itemsRepo items.Items,
	symbolsRepo symbols.Symbols,
	notifier notify.Notifier,
	uploadsDir string,
) *Handler {
	if notifier == nil {
		notifier = notify.Nop{}
	}

	return &Handler{
		engine:     eng,
		auth:       authSvc,
		users:      usersRepo,
		items:      itemsRepo,
		symbols:    symbolsRepo,
		notifier:   notifier,
		uploadsDir: uploadsDir,
	}
}

// userView is the user shape returned to clients; the password hash never
// leaves the server.
type userView struct {
	ID        int64  `json:"id"`
	Login     string `json:"login,omitempty"`
	Name      string `json:"name"`
	Balance   int64  `json:"balance"`
	IsAdmin   bool   `json:"is_admin"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
}

func viewOf(u *users.User) userView {
	return userView{
		ID:        u.ID,
		Login:     u.Login,
		Name:      u.Name,
		Balance:   u.Balance,
		IsAdmin:   u.IsAdmin,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
}
